package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"inscricaoflow/internal/domain"
)

// ReceiptDownloader saves a paid order's receipts to disk exactly once,
// guarded by a per-order flag in the key-value store.
type ReceiptDownloader struct {
	client domain.InscriptionClient
	store  domain.KeyValueStore
	dir    string
	logger *slog.Logger
}

// NewReceiptDownloader builds a downloader writing PDFs under dir.
func NewReceiptDownloader(client domain.InscriptionClient, store domain.KeyValueStore, dir string, logger *slog.Logger) *ReceiptDownloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptDownloader{
		client: client,
		store:  store,
		dir:    dir,
		logger: logger,
	}
}

// AutoDownload fetches every receipt of the order into the target directory.
// Orders already flagged as downloaded are skipped; the flag is only written
// after all receipts succeeded, so a partial failure is retried next time.
// Usable as a PaidHook.
func (d *ReceiptDownloader) AutoDownload(ctx context.Context, order *domain.Order) error {
	if order == nil || len(order.Receipts) == 0 {
		return nil
	}
	key := domain.ReceiptsDownloadedKey(order.OrderID)
	if d.store != nil {
		if _, err := d.store.Get(ctx, key); err == nil {
			d.logger.Debug("receipts already downloaded", "order_id", order.OrderID)
			return nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			d.logger.Warn("receipt flag lookup failed", "order_id", order.OrderID, "error", err)
		}
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create receipt directory: %w", err)
	}
	for _, receipt := range order.Receipts {
		data, err := d.client.DownloadReceipt(ctx, receipt.ReceiptURL)
		if err != nil {
			return fmt.Errorf("failed to download receipt %s: %w", receipt.RegistrationID, err)
		}
		path := filepath.Join(d.dir, "recibo-"+receipt.RegistrationID+".pdf")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write receipt %s: %w", receipt.RegistrationID, err)
		}
		d.logger.Info("receipt saved", "order_id", order.OrderID, "registration_id", receipt.RegistrationID, "path", path)
	}

	if d.store != nil {
		if err := d.store.Set(ctx, key, []byte(`true`)); err != nil {
			d.logger.Warn("failed to flag receipts as downloaded", "order_id", order.OrderID, "error", err)
		}
	}
	return nil
}
