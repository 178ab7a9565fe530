package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
	"github.com/secmon-lab/fieldswitch/pkg/utils/safe"
)

const defaultTitle = "Location search"

type Server struct {
	router    *chi.Mux
	title     string
	assetsDir string
}

type Options func(*Server)

// WithTitle sets the page title of the search form
func WithTitle(title string) Options {
	return func(s *Server) {
		s.title = title
	}
}

// WithAssetsDir serves the WebAssembly bundle from dir under /assets and
// makes the search page load it
func WithAssetsDir(dir string) Options {
	return func(s *Server) {
		s.assetsDir = dir
	}
}

func New(search SearchUseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		title:  defaultTitle,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthHandler)
	r.Get("/api/property-list", propertyListHandler(search))

	if s.assetsDir != "" {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(s.assetsDir))))
	}

	r.Get("/", searchPageHandler(search, s.title, s.assetsDir != ""))

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	safe.Write(r.Context(), w, []byte("ok"))
}
