package middleware

import (
	"bytes"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/uval"
	"github.com/dmitrymomot/uval/pkg/logger"
)

// DefaultMaxBodySize is the largest page Setup rewrites. Larger pages are
// served unchanged.
const DefaultMaxBodySize = 4 << 20

// Option configures the Setup middleware.
type Option func(*options)

type options struct {
	log         *slog.Logger
	maxBodySize int
}

// WithLogger sets the logger for setup failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMaxBodySize limits the size of pages that are rewritten.
func WithMaxBodySize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// Setup returns middleware running v.SetupHTML on HTML responses.
func Setup(v *uval.Validation, opts ...Option) func(http.Handler) http.Handler {
	o := options{log: logger.Discard(), maxBodySize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			bw := &bufferedWriter{ResponseWriter: w, limit: o.maxBodySize}
			next.ServeHTTP(bw, r)
			if !bw.decided && bw.status != 0 {
				bw.ResponseWriter.WriteHeader(bw.status)
			}
			if !bw.buffering {
				return
			}

			body := bw.buf.Bytes()
			if len(body) == 0 {
				bw.flushOriginal()
				return
			}
			var out bytes.Buffer
			out.Grow(len(body) + len(body)/4)
			if err := v.SetupHTML(r.Context(), bytes.NewReader(body), &out); err != nil {
				o.log.ErrorContext(r.Context(), "page setup failed, serving original markup",
					logger.Component("middleware"),
					slog.String("path", r.URL.Path),
					logger.Error(err),
				)
				bw.flushOriginal()
				return
			}
			bw.send(out.Bytes())
		})
	}
}

// bufferedWriter decides on the first write whether the response is an HTML
// page to rewrite. Everything else is passed straight to the client.
type bufferedWriter struct {
	http.ResponseWriter

	limit     int
	decided   bool
	buffering bool
	status    int
	buf       bytes.Buffer
}

func (w *bufferedWriter) WriteHeader(status int) {
	switch {
	case w.decided:
		if !w.buffering {
			w.ResponseWriter.WriteHeader(status)
		}
	case w.Header().Get("Content-Type") == "":
		// wait for the body to sniff the content type
		if w.status == 0 {
			w.status = status
		}
	default:
		w.decide(status, nil)
	}
}

func (w *bufferedWriter) Write(p []byte) (int, error) {
	if !w.decided {
		status := w.status
		if status == 0 {
			status = http.StatusOK
		}
		w.decide(status, p)
	}
	if !w.buffering {
		return w.ResponseWriter.Write(p)
	}
	if w.buf.Len()+len(p) > w.limit {
		w.spill()
		return w.ResponseWriter.Write(p)
	}
	return w.buf.Write(p)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *bufferedWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *bufferedWriter) decide(status int, first []byte) {
	w.decided = true
	w.status = status

	h := w.Header()
	if h.Get("Content-Type") == "" && first != nil {
		h.Set("Content-Type", http.DetectContentType(first))
	}
	w.buffering = rewritable(status, h)
	if !w.buffering {
		w.ResponseWriter.WriteHeader(status)
	}
}

// spill gives up on rewriting and sends what was buffered so far.
func (w *bufferedWriter) spill() {
	w.buffering = false
	w.ResponseWriter.WriteHeader(w.status)
	_, _ = w.ResponseWriter.Write(w.buf.Bytes())
	w.buf.Reset()
}

func (w *bufferedWriter) flushOriginal() {
	w.send(w.buf.Bytes())
}

func (w *bufferedWriter) send(body []byte) {
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.ResponseWriter.WriteHeader(w.status)
	_, _ = w.ResponseWriter.Write(body)
}

func rewritable(status int, h http.Header) bool {
	switch {
	case status < http.StatusOK:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	case status == http.StatusPartialContent:
		// a byte range of the page cannot be parsed as a document
		return false
	}
	if h.Get("Content-Encoding") != "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(h.Get("Content-Type"))
	return err == nil && mediaType == "text/html"
}
