// Package httpserver runs an http.Server bound to a context.
//
// Run blocks until the context is cancelled and then performs a graceful
// shutdown bounded by Config.ShutdownTimeout. Signal handling is left to the
// caller (typically signal.NotifyContext in main). LivenessHandler and
// ReadinessHandler back the /healthz and /readyz endpoints.
package httpserver
