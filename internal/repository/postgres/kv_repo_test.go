package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"inscricaoflow/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestKVRepository_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		key        string
		mock       func(mock sqlmock.Sqlmock)
		want       string
		wantErr    bool
		isNotFound bool
	}{
		{
			name: "success",
			key:  "inscricao:draft:ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value`).
					WithArgs("inscricao:draft:ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"quantity":3}`)))
			},
			want:    `{"quantity":3}`,
			wantErr: false,
		},
		{
			name: "not found",
			key:  "inscricao:draft:ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value`).
					WithArgs("inscricao:draft:ev-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr:    true,
			isNotFound: true,
		},
		{
			name: "db error",
			key:  "inscricao:draft:ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT value`).
					WithArgs("inscricao:draft:ev-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewKeyValueRepository(db)
			got, err := repo.Get(ctx, tt.key)
			if tt.wantErr {
				require.Error(t, err)
				if tt.isNotFound {
					require.True(t, errors.Is(err, domain.ErrNotFound))
				}
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, string(got))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestKVRepository_Set(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "upsert success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO wizard_store`).
					WithArgs("inscricao:draft:ev-1", []byte(`{"step":2}`), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: false,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO wizard_store`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewKeyValueRepository(db)
			err = repo.Set(ctx, "inscricao:draft:ev-1", []byte(`{"step":2}`))
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestKVRepository_Remove(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM wizard_store WHERE key = \$1`).
					WithArgs("receipts:downloaded:ord-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: false,
		},
		{
			name: "absent key is not an error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM wizard_store WHERE key = \$1`).
					WithArgs("receipts:downloaded:ord-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: false,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM wizard_store WHERE key = \$1`).
					WithArgs("receipts:downloaded:ord-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewKeyValueRepository(db)
			err = repo.Remove(ctx, "receipts:downloaded:ord-1")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
