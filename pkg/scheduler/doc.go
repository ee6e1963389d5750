// Package scheduler runs named jobs on periodic schedules.
//
//	s := scheduler.New(scheduler.WithLogger(log))
//	_ = s.Add("membership.scan", scheduler.DailyAt(9, 0), func(ctx context.Context) error {
//		_, err := engine.Scan(ctx)
//		return err
//	})
//	err := s.Run(ctx) // blocks until ctx is cancelled
//
// Schedules are evaluated against the injected Clock, and waits go through
// an injectable AfterFunc so tests can fire ticks immediately.
package scheduler
