package domain

import "context"

// CheckResult is the availability answer for one CPF within an event.
type CheckResult struct {
	ExistsInEvent bool     `json:"existsInEvent"`
	Profile       *Profile `json:"profile,omitempty"`
}

// InscriptionClient is the contract with the external inscriptions backend.
// Implementations must translate HTTP 404 into ErrNotFound and HTTP 409 on
// batch creation into *ConflictError.
type InscriptionClient interface {
	EventBySlug(ctx context.Context, slug string) (*Event, error)
	Districts(ctx context.Context) ([]District, error)
	Churches(ctx context.Context) ([]Church, error)
	// DirectorChurch looks up the district/church suggestion for a director
	// CPF. Returns ErrNotFound when the CPF is not a known director.
	DirectorChurch(ctx context.Context, cpf string) (*SuggestedChurch, error)
	// StartInscription registers intent to buy and returns any unpaid orders
	// already held by the buyer CPF for the event.
	StartInscription(ctx context.Context, eventID, buyerCPF string) ([]PendingOrder, error)
	CheckCPF(ctx context.Context, eventID, cpf string) (CheckResult, error)
	CreateBatch(ctx context.Context, eventID, buyerCPF string, method PaymentMethod, people []Person) (*BatchOrder, error)
	PaymentByOrder(ctx context.Context, orderID string) (*Order, error)
	// DownloadReceipt fetches a receipt document by its URL.
	DownloadReceipt(ctx context.Context, url string) ([]byte, error)
}

// Viewer is the authenticated actor driving the wizard, when any. A nil
// Viewer means an anonymous public user.
type Viewer struct {
	UserID string
	Email  string
	Roles  []string
}

// IsAdmin reports whether the viewer carries the admin role. Manual payment
// methods are offered to admins only.
func (v *Viewer) IsAdmin() bool {
	if v == nil {
		return false
	}
	for _, r := range v.Roles {
		if r == "admin" {
			return true
		}
	}
	return false
}

// TokenVerifier validates a viewer token and extracts its identity.
type TokenVerifier interface {
	Verify(token string) (*Viewer, error)
}

// Mailer sends a single email message.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template into its subject,
// HTML body, and text body.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}
