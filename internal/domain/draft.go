package domain

import (
	"context"
	"time"
)

// Draft is the wizard's in-progress registration state, persisted as one
// JSON blob so an interrupted session can resume where it stopped.
type Draft struct {
	BuyerCPF      string        `json:"buyerCpf"`
	DistrictID    string        `json:"districtId"`
	ChurchID      string        `json:"churchId"`
	Quantity      int           `json:"quantity"`
	People        []Person      `json:"people"`
	Step          int           `json:"step"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	SavedAt       time.Time     `json:"savedAt"`
}

// DraftKey is the storage key for an event's wizard draft.
func DraftKey(eventID string) string {
	return "inscricao:draft:" + eventID
}

// ReceiptsDownloadedKey is the storage key flagging that an order's receipts
// were already auto-downloaded.
func ReceiptsDownloadedKey(orderID string) string {
	return "receipts:downloaded:" + orderID
}

// KeyValueStore is a small persistent key-value contract used for drafts and
// download flags. Get returns ErrNotFound for absent keys; Remove of an
// absent key is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
