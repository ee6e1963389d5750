package requestid

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	// Header is the canonical request id header, echoed on every response.
	Header = "X-Request-ID"

	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

type contextKey struct{}

// WithContext stores id in ctx.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// LoggerExtractor returns a logger.ContextExtractor compatible function
// that attaches request_id to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}

// Middleware attaches a request id to every request.
//
// The id is taken from the first valid value among X-Request-ID and any
// extra headers (for example a provider's delivery id), otherwise a new
// UUID is generated.
func Middleware(extraHeaders ...string) func(http.Handler) http.Handler {
	headers := append([]string{Header}, extraHeaders...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			for _, h := range headers {
				if v := r.Header.Get(h); isValid(v) {
					id = v
					break
				}
			}
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

func isValid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
