package membership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/premiumhub/pkg/logger"
)

// RenewalKind classifies how a payment changed a membership.
type RenewalKind string

const (
	KindNew           RenewalKind = "new"
	KindEarlyRenewal  RenewalKind = "early_renewal"
	KindLapsedRenewal RenewalKind = "lapsed_renewal"
)

// Result describes an applied payment.
type Result struct {
	Record   Record
	Kind     RenewalKind
	Base     Date
	Previous *Record
}

// Engine owns the membership lifecycle: applying payments and scanning for
// members to remind. It is safe for concurrent use.
type Engine struct {
	store    Store
	notifier Notifier
	gateway  PaymentGateway
	ledger   Ledger
	now      Clock
	cfg      Config
	log      *slog.Logger
	metrics  *Metrics
	locks    *keyLock
}

// Option configures an Engine.
type Option func(*Engine)

// WithLedger enables duplicate-delivery protection.
func WithLedger(l Ledger) Option {
	return func(e *Engine) { e.ledger = l }
}

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.now = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMetrics records engine activity.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine wires an Engine. Panics if a required collaborator is nil.
func NewEngine(store Store, notifier Notifier, gateway PaymentGateway, cfg Config, opts ...Option) *Engine {
	if store == nil {
		panic("membership: Store is required")
	}
	if notifier == nil {
		panic("membership: Notifier is required")
	}
	if gateway == nil {
		panic("membership: PaymentGateway is required")
	}

	def := DefaultConfig()
	if cfg.PeriodDays <= 0 {
		cfg.PeriodDays = def.PeriodDays
	}
	if cfg.ReminderWindowDays <= 0 {
		cfg.ReminderWindowDays = def.ReminderWindowDays
	}
	if cfg.ScanConcurrency <= 0 {
		cfg.ScanConcurrency = def.ScanConcurrency
	}
	if cfg.Currency == "" {
		cfg.Currency = def.Currency
	}

	e := &Engine{
		store:    store,
		notifier: notifier,
		gateway:  gateway,
		now:      timeNowUTC,
		cfg:      cfg,
		log:      logger.Discard(),
		locks:    newKeyLock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(logger.Component("membership"))
	return e
}

// ApplyPayment extends the membership of ev.MemberID by one period.
//
// The payment time is ev.ReceivedAt, or the engine clock when unset.
// Active members (expiry today or later) are extended from their current
// expiry; new and lapsed members from today. The record is persisted before
// any message is sent, so a persistence error means no confirmation.
// Message failures are logged and do not fail the call.
func (e *Engine) ApplyPayment(ctx context.Context, ev PaymentEvent) (Result, error) {
	if ev.MemberID == "" {
		e.metrics.paymentRejected("missing_member")
		return Result{}, ErrMissingMemberID
	}

	log := e.log.With(logger.MemberID(ev.MemberID), logger.PaymentRef(ev.PaymentRef))

	unlock := e.locks.Lock(ev.MemberID)
	defer unlock()

	key := ev.idempotencyKey()
	if e.ledger != nil && key != "" {
		seen, err := e.ledger.Seen(ctx, key)
		switch {
		case err != nil:
			// Acknowledged deliveries are not retried, so applying is safer than dropping.
			log.WarnContext(ctx, "idempotency ledger unavailable, applying payment", logger.Error(err))
		case seen:
			e.metrics.paymentRejected("duplicate")
			return Result{}, ErrDuplicateEvent
		}
	}

	now := ev.ReceivedAt
	if now.IsZero() {
		now = e.now()
	}
	now = now.UTC()
	today := DateOf(now)

	prev, err := e.store.Get(ctx, ev.MemberID)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		e.metrics.paymentRejected("store_read")
		return Result{}, errors.Join(ErrStoreRead, err)
	}
	if errors.Is(err, ErrRecordNotFound) {
		prev = nil
	}

	kind, base := KindNew, today
	switch {
	case prev == nil:
	case prev.Expiry.IsZero() || prev.Lapsed(now):
		kind = KindLapsedRenewal
	default:
		kind, base = KindEarlyRenewal, prev.Expiry
	}

	rec := Record{
		MemberID:       ev.MemberID,
		JoinedAt:       now,
		Expiry:         base.AddDays(e.cfg.PeriodDays),
		LastPaymentRef: ev.PaymentRef,
	}
	if err := e.store.Upsert(ctx, &rec); err != nil {
		e.metrics.paymentRejected("persist")
		return Result{}, errors.Join(ErrPersistFailed, err)
	}
	e.metrics.paymentApplied(string(kind))
	log.InfoContext(ctx, "payment applied",
		slog.String("kind", string(kind)),
		logger.Expiry(rec.Expiry.String()),
	)

	if e.ledger != nil && key != "" {
		if err := e.ledger.Mark(ctx, key); err != nil {
			log.WarnContext(ctx, "failed to record payment in ledger", logger.Error(err))
		}
	}

	if err := e.notifier.SendMessage(ctx, ev.MemberID, confirmationText(rec.Expiry, e.cfg.GroupLink)); err != nil {
		log.ErrorContext(ctx, "failed to send payment confirmation", logger.Error(err))
	}

	if kind == KindEarlyRenewal {
		e.notifyAdmin(ctx, "early_renewal", earlyRenewalText(ev.MemberID, rec.Expiry))
	}

	return Result{Record: rec, Kind: kind, Base: base, Previous: prev}, nil
}

// CreatePaymentLink asks the gateway for a fresh link carrying memberID in its notes.
func (e *Engine) CreatePaymentLink(ctx context.Context, memberID string) (*PaymentLink, error) {
	if memberID == "" {
		return nil, ErrMissingMemberID
	}

	link, err := e.gateway.CreatePaymentLink(ctx, PaymentLinkRequest{
		MemberID:    memberID,
		AmountMinor: e.cfg.AmountMinor,
		Currency:    e.cfg.Currency,
		Description: e.cfg.Description,
		ReferenceID: fmt.Sprintf("tg%s%d", memberID, e.now().Unix()),
		Notes:       map[string]string{"telegram_id": memberID},
	})
	if err != nil {
		return nil, errors.Join(ErrGateway, err)
	}
	return link, nil
}

func (e *Engine) notifyAdmin(ctx context.Context, kind, text string) {
	if e.cfg.AdminChatID == "" {
		return
	}
	if err := e.notifier.SendMessage(ctx, e.cfg.AdminChatID, text); err != nil {
		e.log.ErrorContext(ctx, "failed to notify admin", slog.String("kind", kind), logger.Error(err))
		return
	}
	e.metrics.adminNotice(kind)
}
