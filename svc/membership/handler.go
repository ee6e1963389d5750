package membership

import (
	"context"
	"crypto/subtle"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/premiumhub/pkg/logger"
	"github.com/dmitrymomot/premiumhub/pkg/razorpay"
	"github.com/dmitrymomot/premiumhub/pkg/webhook"
)

const (
	maxWebhookBody = 1 << 20

	// EventIDHeader carries the provider's delivery id.
	EventIDHeader = "X-Razorpay-Event-Id"
	// TriggerTokenHeader authenticates the reminder trigger.
	TriggerTokenHeader = "X-Internal-Token"
)

type lifecycle interface {
	ApplyPayment(ctx context.Context, ev PaymentEvent) (Result, error)
	Scan(ctx context.Context) (ScanReport, error)
}

// Handler exposes the payment webhook and the reminder trigger over HTTP.
type Handler struct {
	engine       lifecycle
	auth         *webhook.Authenticator
	triggerToken string
	now          Clock
	log          *slog.Logger
	deadLetter   *slog.Logger
}

// NewHandler builds the HTTP surface for engine.
func NewHandler(engine lifecycle, cfg Config, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("membership_http"))
	return &Handler{
		engine:       engine,
		auth:         webhook.NewAuthenticator(cfg.WebhookSecret, cfg.SignatureHeader),
		triggerToken: cfg.TriggerToken,
		now:          Clock(timeNowUTC),
		log:          log,
		deadLetter:   log.With(logger.Component("dead_letter")),
	}
}

// Routes mounts the handlers on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/webhooks/razorpay", h.PaymentWebhook)
	r.Get("/internal/reminders/run", h.RunReminders)
	r.Post("/internal/reminders/run", h.RunReminders)
}

// PaymentWebhook authenticates the raw body, then applies payment_link.paid
// events. Only authentication failures change the status code; every other
// outcome is acknowledged with 200 so the provider does not retry.
func (h *Handler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		h.log.WarnContext(ctx, "failed to read webhook body", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.auth.Authenticate(r, body); err != nil {
		h.log.WarnContext(ctx, "webhook authentication failed", logger.Error(err))
		status := webhook.StatusCode(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	h.handleEvent(ctx, r.Header.Get(EventIDHeader), body)
	writeOK(w)
}

func (h *Handler) handleEvent(ctx context.Context, eventID string, body []byte) {
	ev, err := razorpay.ParseEvent(body)
	if err != nil {
		h.deadLetter.ErrorContext(ctx, "malformed webhook event",
			logger.Error(err),
			slog.String("event_id", eventID),
			slog.String("body", string(body)),
		)
		return
	}

	log := h.log.With(logger.EventType(ev.Event), slog.String("event_id", eventID))
	if ev.Event != razorpay.EventPaymentLinkPaid {
		log.DebugContext(ctx, "ignoring webhook event")
		return
	}

	res, err := h.engine.ApplyPayment(ctx, PaymentEvent{
		EventID:    eventID,
		MemberID:   ev.MemberID(),
		PaymentRef: ev.PaymentRef(),
		ReceivedAt: h.now(),
	})
	switch {
	case err == nil:
		log.InfoContext(ctx, "membership extended",
			logger.MemberID(res.Record.MemberID),
			logger.Expiry(res.Record.Expiry.String()),
		)
	case errors.Is(err, ErrMissingMemberID):
		h.deadLetter.ErrorContext(ctx, "paid event without member id",
			logger.PaymentRef(ev.PaymentRef()),
			slog.String("event_id", eventID),
			slog.String("body", string(body)),
		)
	case errors.Is(err, ErrDuplicateEvent):
		log.InfoContext(ctx, "duplicate payment event ignored", logger.PaymentRef(ev.PaymentRef()))
	default:
		log.ErrorContext(ctx, "failed to apply payment",
			logger.MemberID(ev.MemberID()),
			logger.PaymentRef(ev.PaymentRef()),
			logger.Error(err),
		)
	}
}

// RunReminders runs a reminder scan synchronously and to completion even if
// the caller disconnects. When a trigger token is configured the request must
// carry it in X-Internal-Token.
func (h *Handler) RunReminders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.triggerToken != "" {
		got := r.Header.Get(TriggerTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.triggerToken)) != 1 {
			h.log.WarnContext(ctx, "rejected reminder trigger")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
	}

	// The caller going away must not cut a scan short halfway through the members.
	if _, err := h.engine.Scan(context.WithoutCancel(ctx)); err != nil {
		h.log.ErrorContext(ctx, "reminder scan failed", logger.Error(err))
	}
	writeOK(w)
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
