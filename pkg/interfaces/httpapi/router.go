package httpapi

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rentalops/rentcore/pkg/application/services/coverage"
	"github.com/rentalops/rentcore/pkg/application/services/diff"
	"github.com/rentalops/rentcore/pkg/infrastructure/api"
	"github.com/rentalops/rentcore/pkg/infrastructure/config"
)

// Server exposes the reconciliation engine over HTTP for view layers that
// prefer not to link the library directly.
type Server struct {
	cfg      *config.Config
	client   *api.Client
	diff     *diff.Service
	coverage *coverage.Service
	log      *zap.Logger
}

// NewServer wires a facade server from config.
func NewServer(cfg *config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		client:   api.NewClient(cfg.APIBaseURL, time.Duration(cfg.TimeoutSeconds)*time.Second, log),
		diff:     diff.NewService(),
		coverage: coverage.NewService(),
		log:      log,
	}
}

// NewRouter builds the facade's route table.
func NewRouter(s *Server) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.healthHandler).Methods("GET")
	r.HandleFunc("/eventi/{id:[0-9]+}/diff", s.eventDiffHandler).Methods("GET")
	r.HandleFunc("/calendario/mese", s.monthCoverageHandler).Methods("GET")
	r.HandleFunc("/magazzino/{materialID:[0-9]+}/stock", s.stockHandler).Methods("GET")

	return r
}

// Run serves the facade until the listener fails.
func (s *Server) Run() error {
	router := NewRouter(s)
	s.log.Info("facade listening", zap.String("addr", s.cfg.Listen))

	srv := &http.Server{
		Addr:         s.cfg.Listen,
		Handler:      handlers.LoggingHandler(os.Stdout, router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}
