package pkgrouter

import (
	"net/http"

	"github.com/shandysiswandi/godna/internal/pkg/pkglog"
)

// Generator generates correlation ids.
type Generator interface {
	Generate() string
}

const (
	// HeaderCorrelationID is echoed on every response.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted when a proxy set it instead.
	HeaderRequestID = "X-Request-ID"
	// HeaderSessionID carries the dashboard session created at login.
	HeaderSessionID = "X-Session-ID"
)

// SessionID returns the cleaned session header of r, or "".
func SessionID(r *http.Request) string {
	return headerID(r, HeaderSessionID)
}

// middlewareContextIDs stores the correlation and session ids in the request
// context so every log line of the request carries them.
func middlewareContextIDs(gen Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cid := headerID(r, HeaderCorrelationID, HeaderRequestID)
			if cid == "" && gen != nil {
				cid = gen.Generate()
			}
			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				ctx = pkglog.SetCorrelationID(ctx, cid)
			}

			if sid := SessionID(r); sid != "" {
				ctx = pkglog.SetSessionID(ctx, sid)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
