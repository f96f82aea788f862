package pkgrouter

import (
	"net/http"
	"strings"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain wraps h so that mws run in the order given, first one outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

const maxHeaderIDLen = 128

// headerID cleans an id taken from a request header. Values carrying line
// breaks are rejected and long values are cut to maxHeaderIDLen.
func headerID(r *http.Request, names ...string) string {
	for _, name := range names {
		v := strings.TrimSpace(r.Header.Get(name))
		if v == "" || strings.ContainsAny(v, "\r\n") {
			continue
		}
		if len(v) > maxHeaderIDLen {
			v = v[:maxHeaderIDLen]
		}
		return v
	}
	return ""
}
