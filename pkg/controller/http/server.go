package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/swasthya-lab/swasthya/pkg/usecase"
	"github.com/swasthya-lab/swasthya/pkg/utils/logging"
)

// maxUploadSize bounds document uploads (32 MiB)
const maxUploadSize = 32 << 20

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", rootHandler)

	r.Route("/upload", func(r chi.Router) {
		r.Post("/prescription", s.uploadPrescriptionHandler)
		r.Post("/report", s.uploadReportHandler)
	})

	r.Route("/add", func(r chi.Router) {
		r.Post("/vitals", s.addVitalsHandler)
		r.Post("/vaccination", s.addVaccinationHandler)
	})

	r.Post("/ask", s.askHandler)
	r.Get("/trend/weight", s.weightTrendHandler)
	r.Get("/memory/all", s.memoryAllHandler)

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

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
