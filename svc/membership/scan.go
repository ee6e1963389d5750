package membership

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/premiumhub/pkg/logger"
)

// ScanReport summarises one reminder scan.
type ScanReport struct {
	Scanned          int
	Reminded         int
	ReminderFailures int
	ExpiringToday    int
	Lapsed           int
	Malformed        int
}

type scanTally struct {
	mu sync.Mutex
	ScanReport
}

func (t *scanTally) add(f func(r *ScanReport)) {
	t.mu.Lock()
	f(&t.ScanReport)
	t.mu.Unlock()
}

// Scan walks every record once. Members inside the reminder window get a
// fresh payment link and a reminder; records expiring today raise one admin
// notice. Per-member failures are logged and never stop the scan. Records are
// not modified, and running Scan twice sends reminders twice.
func (e *Engine) Scan(ctx context.Context) (ScanReport, error) {
	start := e.now()
	var tally scanTally

	var g errgroup.Group
	g.SetLimit(e.cfg.ScanConcurrency)

	walkErr := e.store.All(ctx, func(rec Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		tally.add(func(r *ScanReport) { r.Scanned++ })
		g.Go(func() error {
			e.scanRecord(ctx, rec, start, &tally)
			return nil
		})
		return nil
	})
	_ = g.Wait()

	report := tally.ScanReport
	elapsed := e.now().Sub(start)
	e.metrics.observeScan(elapsed)

	log := e.log.With(
		logger.Count("scanned", report.Scanned),
		logger.Count("reminded", report.Reminded),
		logger.Count("failures", report.ReminderFailures),
		logger.Count("expiring_today", report.ExpiringToday),
		logger.Count("malformed", report.Malformed),
		logger.Duration(elapsed),
	)
	if walkErr != nil {
		log.ErrorContext(ctx, "reminder scan aborted", logger.Error(walkErr))
		return report, errors.Join(ErrScanAborted, walkErr)
	}
	log.InfoContext(ctx, "reminder scan finished")
	return report, nil
}

func (e *Engine) scanRecord(ctx context.Context, rec Record, now time.Time, tally *scanTally) {
	log := e.log.With(logger.MemberID(rec.MemberID))

	if !rec.Valid() {
		tally.add(func(r *ScanReport) { r.Malformed++ })
		e.metrics.reminderFailed("record")
		log.WarnContext(ctx, "skipping malformed membership record")
		return
	}

	days := rec.DaysLeft(now)
	switch {
	case days < 0:
		tally.add(func(r *ScanReport) { r.Lapsed++ })
	case days == 0:
		tally.add(func(r *ScanReport) { r.ExpiringToday++ })
		e.notifyAdmin(ctx, "expires_today", expiresTodayText(rec.MemberID, rec.Expiry))
	case days <= e.cfg.ReminderWindowDays:
		if e.remind(ctx, rec, days) {
			tally.add(func(r *ScanReport) { r.Reminded++ })
		} else {
			tally.add(func(r *ScanReport) { r.ReminderFailures++ })
		}
	}
}

func (e *Engine) remind(ctx context.Context, rec Record, days int) bool {
	log := e.log.With(logger.MemberID(rec.MemberID), logger.DaysLeft(days))

	link, err := e.CreatePaymentLink(ctx, rec.MemberID)
	if err != nil {
		e.metrics.reminderFailed("gateway")
		log.ErrorContext(ctx, "failed to create renewal link", logger.Error(err))
		return false
	}
	if link.ShortURL == "" {
		e.metrics.reminderFailed("gateway")
		log.ErrorContext(ctx, "renewal link has no url", logger.PaymentRef(link.ID))
		return false
	}

	if err := e.notifier.SendMessage(ctx, rec.MemberID, reminderText(rec.Expiry, days, link.ShortURL)); err != nil {
		e.metrics.reminderFailed("notify")
		log.ErrorContext(ctx, "failed to send reminder", logger.Error(err))
		return false
	}

	e.metrics.reminderSent()
	log.InfoContext(ctx, "reminder sent", logger.Expiry(rec.Expiry.String()))
	return true
}
