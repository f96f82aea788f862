package pkgrouter

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

const maxLoggedBody = 16 * 1024

// redactedKeys are header names and JSON fields whose values never reach the
// logs. Session ids are not secret here: every record carries one.
//
//nolint:gochecknoglobals // read-only lookup table
var redactedKeys = map[string]struct{}{
	"password":      {},
	"email":         {},
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
}

func redacted(key string) bool {
	_, ok := redactedKeys[strings.ToLower(key)]
	return ok
}

func redactHeaders(h http.Header) http.Header {
	out := h.Clone()
	for key := range out {
		if redacted(key) {
			out.Set(key, "***")
		}
	}
	return out
}

func redactValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if redacted(k) {
				out[k] = "***"
				continue
			}
			out[k] = redactValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = redactValue(item)
		}
		return out
	default:
		return v
	}
}

// responseRecorder keeps the status, size and a capped copy of JSON bodies.
// Attachments are counted but not captured.
type responseRecorder struct {
	http.ResponseWriter
	status    int
	size      int
	body      bytes.Buffer
	truncated bool
}

func (rec *responseRecorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *responseRecorder) Write(p []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	if rec.attachment() == "" {
		rec.capture(p)
	}

	n, err := rec.ResponseWriter.Write(p)
	rec.size += n
	return n, err
}

func (rec *responseRecorder) capture(p []byte) {
	room := maxLoggedBody - rec.body.Len()
	if room <= 0 {
		rec.truncated = rec.truncated || len(p) > 0
		return
	}
	if len(p) > room {
		p = p[:room]
		rec.truncated = true
	}
	rec.body.Write(p)
}

func (rec *responseRecorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *responseRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// attachment returns the download filename once a file response set it.
func (rec *responseRecorder) attachment() string {
	disposition := rec.Header().Get("Content-Disposition")
	if disposition == "" {
		return ""
	}
	kind, params, err := mime.ParseMediaType(disposition)
	if err != nil || kind != "attachment" {
		return ""
	}
	return params["filename"]
}

func (rec *responseRecorder) statusCode() int {
	if rec.status == 0 {
		return http.StatusOK
	}
	return rec.status
}

func (rec *responseRecorder) loggedBody() any {
	if name := rec.attachment(); name != "" {
		return map[string]any{
			"attachment":   name,
			"content_type": rec.Header().Get("Content-Type"),
		}
	}

	body := summarizeBody(rec.body.Bytes())
	if rec.truncated {
		return map[string]any{"body": body, "truncated": true}
	}
	return body
}

// matchedRoutePath returns the registered pattern (/views/:view) rather than
// the raw path, so one route logs under one name.
func matchedRoutePath(r *http.Request) string {
	if pattern, ok := r.Context().Value(routeKey{}).(string); ok && pattern != "" {
		return pattern
	}
	return r.URL.Path
}

// replayBody serves the bytes already read for logging, then the rest of the
// original body.
type replayBody struct {
	io.Reader
	io.Closer
}

// requestBody peeks at most maxLoggedBody bytes of r.Body for logging and
// puts them back in front of the unread remainder. Larger bodies are only
// described, never parsed, so a cut-off JSON field cannot escape redaction.
// Multipart uploads are never read: FASTA files are described by their
// declared length.
func requestBody(r *http.Request) any {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")) //nolint:errcheck // empty on failure
	if mediaType == "multipart/form-data" {
		return map[string]any{"multipart": true, "content_length": r.ContentLength}
	}

	head, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
	r.Body = replayBody{Reader: io.MultiReader(bytes.NewReader(head), r.Body), Closer: r.Body}
	if err != nil {
		return "<unreadable body>"
	}
	if len(head) > maxLoggedBody {
		return map[string]any{"truncated": true, "content_length": r.ContentLength}
	}
	return summarizeBody(head)
}

func summarizeBody(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err == nil {
		return redactValue(decoded)
	}
	if !utf8.Valid(raw) {
		return "<binary body omitted>"
	}
	if len(raw) > maxLoggedBody {
		return string(raw[:maxLoggedBody]) + "...(truncated)"
	}
	return string(raw)
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func middlewareLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := matchedRoutePath(r)

		// Only pay for reading the body when the line is written.
		if slog.Default().Enabled(r.Context(), slog.LevelDebug) {
			slog.DebugContext(r.Context(), "request received",
				"method", r.Method,
				"route", route,
				"query", r.URL.RawQuery,
				"headers", redactHeaders(r.Header),
				"body", requestBody(r),
			)
		}

		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.statusCode()
		slog.Log(r.Context(), levelFor(status), "response sent",
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"bytes", rec.size,
			"latency_ms", time.Since(start).Milliseconds(),
			"body", rec.loggedBody(),
		)
	})
}
