// Package payments follows a submitted order until a terminal payment
// status, downloading receipts and notifying the treasury on success.
package payments

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"inscricaoflow/internal/adapters/pix"
	"inscricaoflow/internal/domain"
)

// DefaultInterval is the payment-status polling period.
const DefaultInterval = 5 * time.Second

// PaidHook runs after an order reaches PAID.
type PaidHook func(ctx context.Context, order *domain.Order) error

// PollerConfig wires the poller's collaborators. NewTicker is injectable for
// tests; nil uses a real time.Ticker.
type PollerConfig struct {
	Client    domain.InscriptionClient
	Logger    *slog.Logger
	Interval  time.Duration
	NewTicker func(d time.Duration) (<-chan time.Time, func())
	OnUpdate  func(order *domain.Order)
	OnPaid    []PaidHook
}

// Poller periodically fetches an order's payment status until it reaches
// PAID or CANCELED. Start is idempotent (a prior run is stopped first), and
// so is Stop.
type Poller struct {
	client    domain.InscriptionClient
	logger    *slog.Logger
	interval  time.Duration
	newTicker func(d time.Duration) (<-chan time.Time, func())
	onUpdate  func(order *domain.Order)
	onPaid    []PaidHook

	mu   sync.Mutex
	stop chan struct{}
}

// NewPoller builds a poller from config.
func NewPoller(cfg PollerConfig) *Poller {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.NewTicker == nil {
		cfg.NewTicker = func(d time.Duration) (<-chan time.Time, func()) {
			ticker := time.NewTicker(d)
			return ticker.C, ticker.Stop
		}
	}
	return &Poller{
		client:    cfg.Client,
		logger:    cfg.Logger,
		interval:  cfg.Interval,
		newTicker: cfg.NewTicker,
		onUpdate:  cfg.OnUpdate,
		onPaid:    cfg.OnPaid,
	}
}

// Start begins polling the order. Any previous run is stopped first.
func (p *Poller) Start(ctx context.Context, orderID string) {
	p.mu.Lock()
	p.stopLocked()
	stop := make(chan struct{})
	p.stop = stop
	p.mu.Unlock()

	go p.run(ctx, orderID, stop)
}

// Stop halts polling. Safe to call repeatedly and on a never-started poller.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Poller) stopLocked() {
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}

// finish closes this run's stop channel unless a newer run replaced it.
func (p *Poller) finish(stop chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop == stop {
		close(p.stop)
		p.stop = nil
	}
}

// ensurePixImage renders the copia-e-cola payload into the base64 QR image
// when the backend sends only the textual payload.
func (p *Poller) ensurePixImage(order *domain.Order) {
	if order.PixQR == nil || order.PixQR.QRCode == "" || order.PixQR.QRCodeBase64 != "" {
		return
	}
	img, err := pix.QRBase64(order.PixQR.QRCode, 0)
	if err != nil {
		p.logger.Warn("failed to render pix qr image", "order_id", order.OrderID, "error", err)
		return
	}
	order.PixQR.QRCodeBase64 = img
}

func (p *Poller) run(ctx context.Context, orderID string, stop chan struct{}) {
	tick, cancel := p.newTicker(p.interval)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-tick:
			order, err := p.client.PaymentByOrder(ctx, orderID)
			if err != nil {
				p.logger.Warn("payment status fetch failed", "order_id", orderID, "error", err)
				continue
			}
			// A stop that raced the fetch wins; the stale response is dropped.
			select {
			case <-stop:
				return
			default:
			}
			p.ensurePixImage(order)
			if p.onUpdate != nil {
				p.onUpdate(order)
			}
			if !order.Status.Terminal() {
				continue
			}
			if order.Status == domain.StatusPaid {
				for _, hook := range p.onPaid {
					if err := hook(ctx, order); err != nil {
						p.logger.Warn("paid hook failed", "order_id", orderID, "error", err)
					}
				}
			}
			p.finish(stop)
			return
		}
	}
}
