package domain

import (
	"sort"
	"time"
)

// PaymentMethod identifies how an order is settled.
type PaymentMethod string

const (
	PaymentPixMP            PaymentMethod = "PIX_MP"
	PaymentCash             PaymentMethod = "CASH"
	PaymentCardFull         PaymentMethod = "CARD_FULL"
	PaymentCardInstallments PaymentMethod = "CARD_INSTALLMENTS"
)

// AllPaymentMethods lists every supported method, in display order.
var AllPaymentMethods = []PaymentMethod{
	PaymentPixMP,
	PaymentCash,
	PaymentCardFull,
	PaymentCardInstallments,
}

// IsManual reports whether the method is settled outside the automated
// gateway and therefore requires manual confirmation by the treasury.
func (m PaymentMethod) IsManual() bool {
	switch m {
	case PaymentCash, PaymentCardFull, PaymentCardInstallments:
		return true
	}
	return false
}

// Label returns the pt-BR display name for the method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentPixMP:
		return "PIX (Mercado Pago)"
	case PaymentCash:
		return "Dinheiro"
	case PaymentCardFull:
		return "Cartao a vista"
	case PaymentCardInstallments:
		return "Cartao parcelado"
	}
	if m == "" {
		return "Desconhecido"
	}
	return string(m)
}

// Lot is a time-windowed price tier for event registration.
type Lot struct {
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
	StartsAt   time.Time `json:"startsAt"`
}

// Event describes a registrable event as served by the backend.
type Event struct {
	ID             string          `json:"id"`
	Slug           string          `json:"slug"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Banner         string          `json:"banner,omitempty"`
	Location       string          `json:"location"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	IsFree         bool            `json:"isFree"`
	PriceCents     int64           `json:"priceCents"`
	Lots           []Lot           `json:"lots,omitempty"`
	PaymentMethods []PaymentMethod `json:"paymentMethods,omitempty"`
	MinAgeYears    int             `json:"minAgeYears,omitempty"`
}

// CurrentLot returns the active price lot at the given instant: among lots
// already started, the one with the latest start. Nil when no lot is active.
func (e *Event) CurrentLot(now time.Time) *Lot {
	var current *Lot
	for i := range e.Lots {
		lot := &e.Lots[i]
		if lot.StartsAt.After(now) {
			continue
		}
		if current == nil || lot.StartsAt.After(current.StartsAt) {
			current = lot
		}
	}
	return current
}

// NextLot returns the earliest lot whose start is still in the future.
func (e *Event) NextLot(now time.Time) *Lot {
	var upcoming []*Lot
	for i := range e.Lots {
		if e.Lots[i].StartsAt.After(now) {
			upcoming = append(upcoming, &e.Lots[i])
		}
	}
	if len(upcoming) == 0 {
		return nil
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].StartsAt.Before(upcoming[j].StartsAt)
	})
	return upcoming[0]
}

// CurrentPriceCents returns the price per registration at the given instant:
// zero for free events, the current lot price when a lot is active, the base
// price otherwise.
func (e *Event) CurrentPriceCents(now time.Time) int64 {
	if e.IsFree {
		return 0
	}
	if lot := e.CurrentLot(now); lot != nil {
		return lot.PriceCents
	}
	return e.PriceCents
}

// RegistrationOpen reports whether registrations are accepted at the given
// instant. Free events are always open; paid events require an active lot.
func (e *Event) RegistrationOpen(now time.Time) bool {
	if e.IsFree {
		return true
	}
	return e.CurrentLot(now) != nil
}

// AllowedPaymentMethods returns the methods the event accepts, defaulting to
// every supported method when the event does not restrict them.
func (e *Event) AllowedPaymentMethods() []PaymentMethod {
	if len(e.PaymentMethods) == 0 {
		out := make([]PaymentMethod, len(AllPaymentMethods))
		copy(out, AllPaymentMethods)
		return out
	}
	out := make([]PaymentMethod, len(e.PaymentMethods))
	copy(out, e.PaymentMethods)
	return out
}
