// Package wizard implements the multi-step batch-registration flow: buyer
// CPF lookup, district/church selection, participant collection with CPF
// validation, review, submission, and the handoff to payment polling.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"inscricaoflow/internal/cpf"
	"inscricaoflow/internal/domain"
	"inscricaoflow/internal/format"
)

// Step indices. Progression is forward-only; jump-backs happen only for
// conflict recovery and re-validation.
const (
	StepCPF          = 0
	StepUnit         = 1
	StepParticipants = 2
	StepReview       = 3
	StepPayment      = 4
)

const (
	minQuantity = 1
	maxQuantity = 10
)

// ErrLocked is returned by participant field setters while the participant's
// CPF has not yet passed the format, uniqueness, and availability checks.
var ErrLocked = errors.New("participant locked until CPF is verified")

// StatusPoller follows an order's payment status after submission.
type StatusPoller interface {
	Start(ctx context.Context, orderID string)
	Stop()
}

// Config wires the wizard's collaborators.
type Config struct {
	Event   *domain.Event
	Catalog *domain.Catalog
	Client  domain.InscriptionClient
	Store   domain.KeyValueStore
	Poller  StatusPoller
	Viewer  *domain.Viewer
	Logger  *slog.Logger
	Now     func() time.Time
}

// Wizard owns the registration flow state for one event. It is not safe for
// concurrent use; drive it from a single goroutine.
type Wizard struct {
	event   *domain.Event
	catalog *domain.Catalog
	client  domain.InscriptionClient
	store   domain.KeyValueStore
	poller  StatusPoller
	viewer  *domain.Viewer
	logger  *slog.Logger
	now     func() time.Time

	step int

	buyerCPF      string
	buyerCPFError string
	pendingOrders []domain.PendingOrder

	districtID    string
	churchID      string
	districtError string
	churchError   string
	quantity      int

	people    []domain.Person
	cpfErrors []string

	globalError      string
	globalErrorIsCPF bool

	focusParticipant int
	focusBuyer       bool

	paymentMethod domain.PaymentMethod
	submitError   string
	submitting    bool

	checks *availabilityCache

	persistEnabled bool
	completed      bool
	order          *domain.Order
}

// New builds a wizard for the event and rehydrates any stored draft.
func New(ctx context.Context, cfg Config) (*Wizard, error) {
	if cfg.Event == nil {
		return nil, errors.New("wizard: event is required")
	}
	if cfg.Client == nil {
		return nil, errors.New("wizard: inscription client is required")
	}
	if cfg.Catalog == nil {
		cfg.Catalog = &domain.Catalog{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	w := &Wizard{
		event:            cfg.Event,
		catalog:          cfg.Catalog,
		client:           cfg.Client,
		store:            cfg.Store,
		poller:           cfg.Poller,
		viewer:           cfg.Viewer,
		logger:           cfg.Logger,
		now:              cfg.Now,
		quantity:         minQuantity,
		focusParticipant: -1,
		checks:           newAvailabilityCache(cfg.Event.ID),
		persistEnabled:   cfg.Store != nil,
	}
	w.loadDraft(ctx)
	return w, nil
}

// Close releases the payment poller, if any.
func (w *Wizard) Close() {
	if w.poller != nil {
		w.poller.Stop()
	}
}

// Step returns the current step index.
func (w *Wizard) Step() int { return w.step }

// Completed reports whether a free-event submission already finished.
func (w *Wizard) Completed() bool { return w.completed }

// Order returns the payment view of the submitted batch, when any.
func (w *Wizard) Order() *domain.Order { return w.order }

// BuyerCPF returns the buyer CPF as displayed (masked).
func (w *Wizard) BuyerCPF() string { return w.buyerCPF }

// BuyerCPFError returns the inline buyer CPF message, empty when valid.
func (w *Wizard) BuyerCPFError() string { return w.buyerCPFError }

// PendingOrders lists unpaid orders found for the buyer CPF.
func (w *Wizard) PendingOrders() []domain.PendingOrder { return w.pendingOrders }

// DistrictID returns the batch-level district selection.
func (w *Wizard) DistrictID() string { return w.districtID }

// ChurchID returns the batch-level church selection.
func (w *Wizard) ChurchID() string { return w.churchID }

// DistrictError returns the inline district message.
func (w *Wizard) DistrictError() string { return w.districtError }

// ChurchError returns the inline church message.
func (w *Wizard) ChurchError() string { return w.churchError }

// Quantity returns the participant count, always within [1, 10].
func (w *Wizard) Quantity() int { return w.quantity }

// People returns the participants being registered.
func (w *Wizard) People() []domain.Person { return w.people }

// CPFErrors returns the per-participant CPF messages, indexed like People.
func (w *Wizard) CPFErrors() []string { return w.cpfErrors }

// GlobalError returns the banner message shown above the participants step.
func (w *Wizard) GlobalError() string { return w.globalError }

// SubmitError returns the last submission failure message.
func (w *Wizard) SubmitError() string { return w.submitError }

// Submitting reports whether a submission is in flight.
func (w *Wizard) Submitting() bool { return w.submitting }

// FocusedParticipant returns the participant index that should receive focus,
// or -1 when none.
func (w *Wizard) FocusedParticipant() int { return w.focusParticipant }

// BuyerFocused reports whether the buyer CPF field should receive focus.
func (w *Wizard) BuyerFocused() bool { return w.focusBuyer }

// PaymentMethod returns the selected payment method.
func (w *Wizard) PaymentMethod() domain.PaymentMethod { return w.paymentMethod }

// SubmitBuyerCPF validates the buyer CPF, fetches pending orders, applies
// the director church suggestion when available, and advances to the unit
// step. Validation failures stay on step 0 with an inline message.
func (w *Wizard) SubmitBuyerCPF(ctx context.Context, raw string) error {
	w.buyerCPF = cpf.Format(raw)
	w.focusBuyer = false
	if !cpf.Validate(w.buyerCPF) {
		w.buyerCPFError = msgInvalidCPF
		w.focusBuyer = true
		return nil
	}
	w.buyerCPFError = ""
	digits := cpf.Normalize(w.buyerCPF)

	pending, err := w.client.StartInscription(ctx, w.event.ID, digits)
	if err != nil {
		w.logger.Warn("start inscription failed", "error", err)
		w.buyerCPFError = msgVerifyFailed
		return nil
	}
	w.pendingOrders = pending

	w.applyDirectorSuggestion(ctx, digits)

	w.setStep(StepUnit)
	w.persistDraft(ctx)
	return nil
}

// applyDirectorSuggestion pre-selects district/church for known directors.
// A 404 means the CPF is not a director and is silently ignored.
func (w *Wizard) applyDirectorSuggestion(ctx context.Context, digits string) {
	suggestion, err := w.client.DirectorChurch(ctx, digits)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			w.logger.Debug("director lookup failed", "error", err)
		}
		return
	}
	if suggestion == nil {
		return
	}
	if w.catalog.HasDistrict(suggestion.DistrictID) {
		w.districtID = suggestion.DistrictID
		if w.catalog.ChurchInDistrict(suggestion.ChurchID, suggestion.DistrictID) {
			w.churchID = suggestion.ChurchID
		}
	}
}

// SetQuantity sets the participant count, clamped to [1, 10].
func (w *Wizard) SetQuantity(ctx context.Context, q int) {
	w.quantity = clampQuantity(q)
	w.persistDraft(ctx)
}

// IncrementQuantity raises the participant count by one, capped at 10.
func (w *Wizard) IncrementQuantity(ctx context.Context) {
	w.SetQuantity(ctx, w.quantity+1)
}

// DecrementQuantity lowers the participant count by one, floored at 1.
func (w *Wizard) DecrementQuantity(ctx context.Context) {
	w.SetQuantity(ctx, w.quantity-1)
}

func clampQuantity(q int) int {
	if q < minQuantity {
		return minQuantity
	}
	if q > maxQuantity {
		return maxQuantity
	}
	return q
}

// SelectDistrict sets the batch district. The church selection is reset when
// it no longer belongs to the district; from the participants step onward,
// participant districts are back-filled.
func (w *Wizard) SelectDistrict(ctx context.Context, id string) {
	w.districtID = id
	w.districtError = ""
	if w.churchID != "" && !w.catalog.ChurchInDistrict(w.churchID, id) {
		w.churchID = ""
	}
	if w.step >= StepParticipants {
		for i := range w.people {
			w.people[i].DistrictID = id
			w.ensurePersonChurch(&w.people[i])
		}
	}
	w.persistDraft(ctx)
}

// SelectChurch sets the batch church and back-fills participants still on the
// batch district.
func (w *Wizard) SelectChurch(ctx context.Context, id string) {
	w.churchID = id
	w.churchError = ""
	if w.step >= StepParticipants {
		for i := range w.people {
			if w.people[i].DistrictID == w.districtID {
				w.people[i].ChurchID = id
			}
		}
	}
	w.persistDraft(ctx)
}

// ConfirmUnit validates the unit selection, initializes the participant
// slots defaulted to the batch district/church, and advances to step 2.
func (w *Wizard) ConfirmUnit(ctx context.Context) error {
	w.districtError = ""
	w.churchError = ""
	if w.districtID == "" || !w.catalog.HasDistrict(w.districtID) {
		w.districtError = msgSelectDistrict
	}
	if w.churchID == "" || !w.catalog.ChurchInDistrict(w.churchID, w.districtID) {
		w.churchError = msgSelectChurch
	}
	if w.districtError != "" || w.churchError != "" {
		return nil
	}
	w.quantity = clampQuantity(w.quantity)

	w.people = make([]domain.Person, w.quantity)
	for i := range w.people {
		w.people[i].DistrictID = w.districtID
		w.people[i].ChurchID = w.churchID
	}
	w.cpfErrors = make([]string, w.quantity)
	w.focusParticipant = -1

	w.setStep(StepParticipants)
	w.persistDraft(ctx)
	return nil
}

// SetParticipantCPF records a keystroke-level CPF edit: reformats the value,
// purges stale availability cache entries for the old and new digit strings,
// refreshes the format error, and recomputes duplicate flags.
func (w *Wizard) SetParticipantCPF(ctx context.Context, i int, raw string) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	oldDigits := cpf.Normalize(w.people[i].CPF)
	w.people[i].CPF = cpf.Format(raw)
	newDigits := cpf.Normalize(w.people[i].CPF)

	w.checks.Purge(oldDigits)
	w.checks.Purge(newDigits)

	w.cpfErrors[i] = ""
	if len(newDigits) == 11 && !cpf.Validate(newDigits) {
		w.cpfErrors[i] = msgInvalidCPF
	}
	w.updateDuplicateErrors()
	w.updateGlobalError()
	w.persistDraft(ctx)
	return nil
}

// ConfirmParticipantCPF runs the remote availability check for participant i,
// typically on field blur. Format-invalid and duplicated CPFs are skipped.
func (w *Wizard) ConfirmParticipantCPF(ctx context.Context, i int) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	digits := cpf.Normalize(w.people[i].CPF)
	if len(digits) != 11 || !cpf.Validate(digits) {
		return nil
	}
	if w.cpfErrors[i] == msgDuplicateCPF {
		return nil
	}

	result, ok := w.checks.Lookup(digits)
	if !ok {
		remote, err := w.client.CheckCPF(ctx, w.event.ID, digits)
		if err != nil {
			w.logger.Warn("cpf availability check failed", "error", err)
			w.cpfErrors[i] = msgRemoteCheck
			w.updateGlobalError()
			return nil
		}
		w.checks.Store(digits, remote)
		result = remote
	}

	if result.ExistsInEvent {
		w.cpfErrors[i] = registeredMessage(result.Profile)
		w.focusParticipant = i
	} else {
		w.cpfErrors[i] = ""
		if w.focusParticipant == i {
			w.focusParticipant = -1
		}
		w.applyProfile(i, result.Profile)
	}
	w.updateGlobalError()
	w.persistDraft(ctx)
	return nil
}

// applyProfile pre-fills empty participant fields from a known registrant
// profile. District/church are only taken when consistent with the catalog.
func (w *Wizard) applyProfile(i int, profile *domain.Profile) {
	if profile == nil {
		return
	}
	p := &w.people[i]
	if p.FullName == "" {
		p.FullName = profile.FullName
	}
	if p.BirthDate == "" {
		p.BirthDate = profile.BirthDate
	}
	if p.Gender == "" && domain.ValidGender(profile.Gender) {
		p.Gender = profile.Gender
	}
	if profile.DistrictID != "" && w.catalog.HasDistrict(profile.DistrictID) {
		if profile.ChurchID != "" && w.catalog.ChurchInDistrict(profile.ChurchID, profile.DistrictID) {
			p.DistrictID = profile.DistrictID
			p.ChurchID = profile.ChurchID
		}
	}
	if p.PhotoURL == "" {
		p.PhotoURL = profile.PhotoURL
	}
}

// ParticipantLocked reports whether participant i's non-CPF fields are still
// read-only. Unlocking requires a valid, unique CPF confirmed available.
func (w *Wizard) ParticipantLocked(i int) bool {
	if i < 0 || i >= len(w.people) {
		return true
	}
	digits := cpf.Normalize(w.people[i].CPF)
	if len(digits) != 11 || !cpf.Validate(digits) {
		return true
	}
	if w.cpfErrors[i] != "" {
		return true
	}
	result, ok := w.checks.Lookup(digits)
	return !ok || result.ExistsInEvent
}

// SetParticipantName sets the participant's full name.
func (w *Wizard) SetParticipantName(ctx context.Context, i int, name string) error {
	return w.setField(ctx, i, func(p *domain.Person) { p.FullName = name })
}

// SetParticipantBirthDate sets the participant's ISO birth date.
func (w *Wizard) SetParticipantBirthDate(ctx context.Context, i int, birthDate string) error {
	return w.setField(ctx, i, func(p *domain.Person) { p.BirthDate = birthDate })
}

// SetParticipantGender sets the participant's gender.
func (w *Wizard) SetParticipantGender(ctx context.Context, i int, g domain.Gender) error {
	if !domain.ValidGender(g) {
		return fmt.Errorf("invalid gender %q", g)
	}
	return w.setField(ctx, i, func(p *domain.Person) { p.Gender = g })
}

// SetParticipantDistrict overrides the participant's district.
func (w *Wizard) SetParticipantDistrict(ctx context.Context, i int, districtID string) error {
	return w.setField(ctx, i, func(p *domain.Person) {
		p.DistrictID = districtID
		w.ensurePersonChurch(p)
	})
}

// SetParticipantChurch overrides the participant's church.
func (w *Wizard) SetParticipantChurch(ctx context.Context, i int, churchID string) error {
	return w.setField(ctx, i, func(p *domain.Person) { p.ChurchID = churchID })
}

func (w *Wizard) setField(ctx context.Context, i int, mutate func(*domain.Person)) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if w.ParticipantLocked(i) {
		return ErrLocked
	}
	mutate(&w.people[i])
	w.persistDraft(ctx)
	return nil
}

// ensurePersonChurch drops a church selection that does not belong to the
// person's district, falling back to the batch church when it fits.
func (w *Wizard) ensurePersonChurch(p *domain.Person) {
	if p.ChurchID != "" && w.catalog.ChurchInDistrict(p.ChurchID, p.DistrictID) {
		return
	}
	if w.catalog.ChurchInDistrict(w.churchID, p.DistrictID) {
		p.ChurchID = w.churchID
		return
	}
	p.ChurchID = ""
}

func (w *Wizard) checkIndex(i int) error {
	if i < 0 || i >= len(w.people) {
		return fmt.Errorf("participant index %d out of range", i)
	}
	return nil
}

// GoToReview re-validates every participant (format, duplicates, remote
// availability, required fields) and advances to the review step. The first
// invalid participant receives focus.
func (w *Wizard) GoToReview(ctx context.Context) error {
	if w.step != StepParticipants {
		return fmt.Errorf("cannot review from step %d", w.step)
	}
	if !w.validateParticipantCPFs(ctx) {
		return nil
	}
	if !w.validateRequiredFields() {
		return nil
	}

	if !w.event.IsFree && w.paymentMethod == "" {
		if options := w.PaymentOptions(); len(options) > 0 {
			w.paymentMethod = options[0]
		}
	}
	w.setStep(StepReview)
	w.persistDraft(ctx)
	return nil
}

// validateParticipantCPFs runs the full synchronous and remote CPF checks.
// Returns false, with errors and focus set, when any participant fails.
func (w *Wizard) validateParticipantCPFs(ctx context.Context) bool {
	for i := range w.people {
		digits := cpf.Normalize(w.people[i].CPF)
		if len(digits) != 11 || !cpf.Validate(digits) {
			w.cpfErrors[i] = msgInvalidCPF
		}
	}
	duplicates := w.updateDuplicateErrors()

	for i := range w.people {
		if w.cpfErrors[i] != "" && !isRegisteredError(w.cpfErrors[i]) && w.cpfErrors[i] != msgRemoteCheck {
			continue
		}
		if duplicates[i] {
			continue
		}
		if err := w.ConfirmParticipantCPF(ctx, i); err != nil {
			return false
		}
	}

	for i, msg := range w.cpfErrors {
		if msg != "" {
			w.focusParticipant = i
			w.updateGlobalError()
			return false
		}
	}
	return true
}

// validateRequiredFields checks mandatory participant data and the event's
// minimum age, raising a non-CPF banner when something is missing.
func (w *Wizard) validateRequiredFields() bool {
	if len(w.people) == 0 {
		w.setBanner(msgAtLeastOne, false)
		return false
	}
	for i := range w.people {
		if w.people[i].MissingRequired() {
			w.focusParticipant = i
			w.setBanner(msgFillRequired, false)
			return false
		}
		if w.event.MinAgeYears > 0 {
			age, ok := domain.AgeYears(w.people[i].BirthDate, w.now())
			if !ok || age < w.event.MinAgeYears {
				w.focusParticipant = i
				w.setBanner(msgUnderMinAge, false)
				return false
			}
		}
	}
	return true
}

// PaymentOptions returns the methods offered to this viewer: the event's
// allowed methods, minus manual methods for non-admin viewers. Free events
// have no payment options.
func (w *Wizard) PaymentOptions() []domain.PaymentMethod {
	if w.event.IsFree {
		return nil
	}
	var out []domain.PaymentMethod
	for _, m := range w.event.AllowedPaymentMethods() {
		if m.IsManual() && !w.viewer.IsAdmin() {
			continue
		}
		out = append(out, m)
	}
	return out
}

// SelectPaymentMethod picks a payment method, auto-correcting selections
// outside the allowed set to the first available option.
func (w *Wizard) SelectPaymentMethod(ctx context.Context, m domain.PaymentMethod) {
	options := w.PaymentOptions()
	for _, allowed := range options {
		if m == allowed {
			w.paymentMethod = m
			w.persistDraft(ctx)
			return
		}
	}
	if len(options) > 0 {
		w.paymentMethod = options[0]
	} else {
		w.paymentMethod = ""
	}
	w.persistDraft(ctx)
}

// Submit re-validates the whole draft and creates the registration batch.
// Free events complete immediately; paid events advance to the payment step
// and start polling. A 409 conflict jumps back to the participants step with
// the offending CPF flagged, keeping all entered data.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.submitting {
		return nil
	}
	w.submitError = ""

	if !cpf.Validate(w.buyerCPF) {
		w.setStep(StepCPF)
		w.buyerCPFError = msgInvalidCPF
		w.focusBuyer = true
		w.persistDraft(ctx)
		return nil
	}
	if w.districtID == "" || w.churchID == "" {
		w.setStep(StepUnit)
		if w.districtID == "" {
			w.districtError = msgSelectDistrict
		}
		if w.churchID == "" {
			w.churchError = msgSelectChurch
		}
		w.persistDraft(ctx)
		return nil
	}
	if !w.validateSubmission(ctx) {
		// validateSubmission already left the wizard on the participants
		// step with errors and focus set.
		w.persistDraft(ctx)
		return nil
	}

	method := w.paymentMethod
	if !w.event.IsFree && method == "" {
		if options := w.PaymentOptions(); len(options) > 0 {
			method = options[0]
			w.paymentMethod = method
		}
	}

	people := make([]domain.Person, len(w.people))
	copy(people, w.people)
	for i := range people {
		people[i].CPF = cpf.Normalize(people[i].CPF)
	}

	w.submitting = true
	defer func() { w.submitting = false }()

	batch, err := w.client.CreateBatch(ctx, w.event.ID, cpf.Normalize(w.buyerCPF), method, people)
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			w.handleConflict(ctx, conflict)
			return nil
		}
		w.logger.Warn("batch creation failed", "error", err)
		w.submitError = msgCreateFailed
		w.persistDraft(ctx)
		return nil
	}

	w.order = batch.Payment
	if w.order == nil {
		w.order = &domain.Order{
			OrderID:       batch.OrderID,
			Status:        domain.StatusPendingPayment,
			PaymentMethod: method,
			IsFree:        w.event.IsFree,
		}
	}

	// The submission succeeded; the draft is spent either way.
	w.disablePersistence(ctx)

	if w.event.IsFree {
		w.completed = true
		return nil
	}

	w.setStep(StepPayment)
	if w.poller != nil {
		w.poller.Start(ctx, batch.OrderID)
	}
	return nil
}

// validateSubmission reruns the participants-step validation just before the
// batch call.
func (w *Wizard) validateSubmission(ctx context.Context) bool {
	prev := w.step
	w.step = StepParticipants
	ok := w.validateParticipantCPFs(ctx) && w.validateRequiredFields()
	if ok {
		w.step = prev
	}
	return ok
}

// handleConflict recovers from an HTTP 409 on batch creation: the conflicting
// CPF is extracted from the server message, cached as registered, and its
// participant flagged and focused back on the participants step.
func (w *Wizard) handleConflict(ctx context.Context, conflict *domain.ConflictError) {
	w.setStep(StepParticipants)
	digits := lastCPFDigits(conflict.Message)
	if digits != "" {
		w.checks.Store(digits, domain.CheckResult{ExistsInEvent: true})
		for i := range w.people {
			if cpf.Normalize(w.people[i].CPF) == digits {
				w.cpfErrors[i] = msgRegisteredCPF
				w.focusParticipant = i
				break
			}
		}
	}
	w.updateGlobalError()
	w.persistDraft(ctx)
}

// lastCPFDigits extracts the trailing 11-digit run from a server message.
func lastCPFDigits(message string) string {
	digits := cpf.Normalize(message)
	if len(digits) < 11 {
		return ""
	}
	return digits[len(digits)-11:]
}

// setStep moves to a new step, clearing the banner when leaving the
// participants step and releasing stale focus.
func (w *Wizard) setStep(step int) {
	if w.step == StepParticipants && step != StepParticipants {
		w.clearBanner()
	}
	w.focusParticipant = -1
	w.focusBuyer = false
	w.step = step
}

// ReviewLine is one participant row of the review summary.
type ReviewLine struct {
	FullName string
	CPF      string
	Church   string
	District string
}

// ReviewSummary is the read-only recap shown before submission.
type ReviewSummary struct {
	BuyerCPF      string
	DistrictName  string
	ChurchName    string
	Quantity      int
	Participants  []ReviewLine
	UnitPrice     string
	Total         string
	TotalCents    int64
	PaymentMethod string
	IsFree        bool
}

// Review builds the submission recap with pt-BR formatted prices.
func (w *Wizard) Review() ReviewSummary {
	unit := w.event.CurrentPriceCents(w.now())
	total := unit * int64(len(w.people))
	summary := ReviewSummary{
		BuyerCPF:      w.buyerCPF,
		DistrictName:  w.catalog.DistrictName(w.districtID),
		ChurchName:    w.catalog.ChurchName(w.churchID),
		Quantity:      len(w.people),
		UnitPrice:     format.Currency(unit),
		Total:         format.Currency(total),
		TotalCents:    total,
		PaymentMethod: w.paymentMethod.Label(),
		IsFree:        w.event.IsFree,
	}
	for _, p := range w.people {
		summary.Participants = append(summary.Participants, ReviewLine{
			FullName: p.FullName,
			CPF:      cpf.Format(p.CPF),
			Church:   w.catalog.ChurchName(p.ChurchID),
			District: w.catalog.DistrictName(p.DistrictID),
		})
	}
	return summary
}

// disablePersistence turns draft saving off and removes any stored draft.
func (w *Wizard) disablePersistence(ctx context.Context) {
	w.persistEnabled = false
	if w.store == nil {
		return
	}
	if err := w.store.Remove(ctx, domain.DraftKey(w.event.ID)); err != nil {
		w.logger.Warn("failed to remove stored draft", "error", err)
	}
}

// persistDraft writes the current draft, or removes it once persistence has
// been disabled. Storage failures degrade to in-memory operation.
func (w *Wizard) persistDraft(ctx context.Context) {
	if w.store == nil {
		return
	}
	key := domain.DraftKey(w.event.ID)
	if !w.persistEnabled {
		if err := w.store.Remove(ctx, key); err != nil {
			w.logger.Warn("failed to remove stored draft", "error", err)
		}
		return
	}
	draft := domain.Draft{
		BuyerCPF:      w.buyerCPF,
		DistrictID:    w.districtID,
		ChurchID:      w.churchID,
		Quantity:      w.quantity,
		People:        w.people,
		Step:          w.step,
		PaymentMethod: w.paymentMethod,
		SavedAt:       w.now(),
	}
	data, err := json.Marshal(draft)
	if err != nil {
		w.logger.Warn("failed to encode draft", "error", err)
		return
	}
	if err := w.store.Set(ctx, key, data); err != nil {
		w.logger.Warn("failed to persist draft", "error", err)
	}
}

// loadDraft rehydrates a stored draft, if any. Parse failures are logged and
// the wizard starts fresh.
func (w *Wizard) loadDraft(ctx context.Context) {
	if w.store == nil {
		return
	}
	data, err := w.store.Get(ctx, domain.DraftKey(w.event.ID))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			w.logger.Warn("failed to read stored draft", "error", err)
		}
		return
	}
	var draft domain.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		w.logger.Warn("stored draft is not parseable, starting fresh", "error", err)
		return
	}
	w.buyerCPF = draft.BuyerCPF
	w.districtID = draft.DistrictID
	w.churchID = draft.ChurchID
	w.quantity = clampQuantity(draft.Quantity)
	w.people = draft.People
	w.cpfErrors = make([]string, len(w.people))
	w.paymentMethod = draft.PaymentMethod
	if draft.Step >= StepCPF && draft.Step <= StepReview {
		w.step = draft.Step
	}
	w.updateDuplicateErrors()
}
