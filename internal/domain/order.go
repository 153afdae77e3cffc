package domain

import "time"

// PaymentStatus is the lifecycle state of an order.
type PaymentStatus string

const (
	StatusDraft          PaymentStatus = "DRAFT"
	StatusPendingPayment PaymentStatus = "PENDING_PAYMENT"
	StatusPaid           PaymentStatus = "PAID"
	StatusCanceled       PaymentStatus = "CANCELED"
	StatusRefunded       PaymentStatus = "REFUNDED"
	StatusCheckedIn      PaymentStatus = "CHECKED_IN"
)

// Terminal reports whether polling should stop at this status.
func (s PaymentStatus) Terminal() bool {
	return s == StatusPaid || s == StatusCanceled
}

// Label returns the pt-BR display name for the status.
func (s PaymentStatus) Label() string {
	switch s {
	case StatusDraft:
		return "Rascunho"
	case StatusPendingPayment:
		return "Pendente"
	case StatusPaid:
		return "Pago"
	case StatusCanceled:
		return "Cancelada"
	case StatusRefunded:
		return "Estornada"
	case StatusCheckedIn:
		return "Check-in realizado"
	}
	return string(s)
}

// OrderParticipant is a registration inside an order with its own status.
type OrderParticipant struct {
	ID       string        `json:"id"`
	FullName string        `json:"fullName"`
	Status   PaymentStatus `json:"status"`
}

// Receipt points at a downloadable registration receipt.
type Receipt struct {
	RegistrationID string `json:"registrationId"`
	FullName       string `json:"fullName"`
	ReceiptURL     string `json:"receiptUrl"`
}

// PixQR carries the Pix copia-e-cola payload for an order.
type PixQR struct {
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64,omitempty"`
}

// Order is the payment view of a created registration batch, as returned by
// the payment-status endpoint.
type Order struct {
	OrderID          string             `json:"orderId"`
	Status           PaymentStatus      `json:"status"`
	StatusDetail     string             `json:"statusDetail,omitempty"`
	TotalCents       int64              `json:"totalCents"`
	ParticipantCount int                `json:"participantCount,omitempty"`
	PaymentMethod    PaymentMethod      `json:"paymentMethod"`
	PaidAt           *time.Time         `json:"paidAt,omitempty"`
	Participants     []OrderParticipant `json:"participants,omitempty"`
	PixQR            *PixQR             `json:"pixQrData,omitempty"`
	InitPoint        string             `json:"initPoint,omitempty"`
	Receipts         []Receipt          `json:"receipts,omitempty"`
	IsManual         bool               `json:"isManual,omitempty"`
	IsFree           bool               `json:"isFree,omitempty"`
}

// PendingParticipants returns the participants not yet paid.
func (o *Order) PendingParticipants() []OrderParticipant {
	var out []OrderParticipant
	for _, p := range o.Participants {
		if p.Status != StatusPaid {
			out = append(out, p)
		}
	}
	return out
}

// PendingOrderRegistration is a registration listed under a pending order.
type PendingOrderRegistration struct {
	RegistrationID string `json:"registrationId"`
	FullName       string `json:"fullName"`
}

// PendingOrder is an unpaid order found for a buyer CPF at the start of the
// flow.
type PendingOrder struct {
	OrderID       string                     `json:"orderId"`
	TotalCents    int64                      `json:"totalCents"`
	ExpiresAt     time.Time                  `json:"expiresAt"`
	Registrations []PendingOrderRegistration `json:"registrations"`
}

// BatchOrder is the result of creating a registration batch.
type BatchOrder struct {
	OrderID         string   `json:"orderId"`
	RegistrationIDs []string `json:"registrationIds"`
	Payment         *Order   `json:"payment,omitempty"`
}
