package pkgrouter

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/godna/internal/pkg/pkgerror"
)

// Handler returns the payload to encode, or an error mapped through pkgerror.
//
// A payload implementing File is sent as an attachment. Otherwise it is
// wrapped in the {message, data, meta} envelope; the optional StatusCode,
// Message and Meta methods on the payload customize that envelope.
type Handler func(ctx context.Context, r *http.Request) (any, error)

// File is a payload sent as a download instead of the JSON envelope.
type File interface {
	Filename() string
	ContentType() string
	Bytes() []byte
}

type (
	statusCoder interface{ StatusCode() int }
	messager    interface{ Message() string }
	metaer      interface{ Meta() map[string]any }
)

type errorResponse struct {
	Message string `json:"message"`
}

type successResponse struct {
	Message string         `json:"message"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Router serves httprouter routes behind the recover, context id and
// logging middleware.
type Router struct {
	hr  *httprouter.Router
	mws []Middleware
}

// NewRouter builds the router; gen supplies correlation ids for requests
// that arrive without one.
func NewRouter(gen Generator) *Router {
	ro := &Router{
		hr: &httprouter.Router{
			RedirectTrailingSlash:  true,
			RedirectFixedPath:      true,
			HandleMethodNotAllowed: true,
			HandleOPTIONS:          true,
			NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, errorResponse{Message: "endpoint not found"}, http.StatusNotFound)
			}),
			MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, errorResponse{Message: "method not allowed"}, http.StatusMethodNotAllowed)
			}),
		},
		mws: []Middleware{
			middlewareRecoverer,
			middlewareContextIDs(gen),
			middlewareLogging,
		},
	}

	ro.GET("/", func(context.Context, *http.Request) (any, error) {
		return message("godna marine DNA dashboard"), nil
	})
	ro.GET("/health", func(context.Context, *http.Request) (any, error) {
		return message("server is running well"), nil
	})

	return ro
}

type routeKey struct{}

// message is a payload-free response carrying only its envelope message.
type message string

func (m message) Message() string { return string(m) }

func (r *Router) GET(path string, h Handler) {
	r.Handle(http.MethodGet, path, r.adapt(h))
}

func (r *Router) POST(path string, h Handler) {
	r.Handle(http.MethodPost, path, r.adapt(h))
}

// Handle registers a plain http.Handler (the /metrics exporter, say) behind
// the same middleware. The route pattern is stored in the request context
// for the logs.
func (r *Router) Handle(method, path string, h http.Handler) {
	chained := Chain(h, r.mws...)
	r.hr.Handler(method, path, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := context.WithValue(req.Context(), routeKey{}, path)
		chained.ServeHTTP(w, req.WithContext(ctx))
	}))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

func (r *Router) adapt(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		resp, err := h(ctx, req)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		writeResponse(ctx, w, resp)
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	perr := pkgerror.From(err)
	if perr.Type() == pkgerror.TypeServer {
		slog.ErrorContext(ctx, "request failed", "error", err)
	}

	writeJSON(w, errorResponse{Message: perr.Msg()}, perr.StatusCode())
}

func writeResponse(ctx context.Context, w http.ResponseWriter, resp any) {
	if f, ok := resp.(File); ok {
		writeFile(ctx, w, f)
		return
	}

	code := http.StatusOK
	if sc, ok := resp.(statusCoder); ok {
		code = sc.StatusCode()
	}
	if resp == nil || code == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	env := successResponse{Message: "request has been successfully", Data: resp}
	if m, ok := resp.(messager); ok {
		env.Message = m.Message()
	}
	if m, ok := resp.(metaer); ok {
		env.Meta = m.Meta()
	}
	if _, ok := resp.(message); ok {
		env.Data = nil
	}

	writeJSON(w, env, code)
}

func writeFile(ctx context.Context, w http.ResponseWriter, f File) {
	body := f.Bytes()

	h := w.Header()
	h.Set("Content-Type", f.ContentType())
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Filename()}))
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(body); err != nil {
		slog.ErrorContext(ctx, "failed to write file response", "filename", f.Filename(), "error", err)
	}
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode json response", "error", err)
	}
}
