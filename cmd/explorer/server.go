package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roll2roll/roll2roll/core"
)

// Server exposes read-only JSON views of roll2roll's account state plus a
// Prometheus /metrics endpoint, split into a router (this file) and a
// service (service.go) on top of go-chi, matching the rest of this
// module's HTTP stack.
type Server struct {
	router     chi.Router
	httpServer *http.Server
}

// NewServer constructs the router and HTTP server. reload is called before
// every request to pick up state written by the CLI or crankd.
func NewServer(addr string, svc *explorerService, reload func() error) *Server {
	s := &Server{router: chi.NewRouter()}

	s.router.Use(middleware.Recoverer)
	s.router.Use(loggingMiddleware)
	s.router.Use(reloadMiddleware(reload))

	s.router.Get("/api/config", s.handleConfig(svc))
	s.router.Get("/api/degen-config", s.handleDegenConfig(svc))
	s.router.Get("/api/rounds/{roundID}", s.handleRound(svc))
	s.router.Get("/api/rounds/{roundID}/participants/{user}", s.handleParticipant(svc))
	s.router.Get("/api/rounds/{roundID}/degen-claim/{winner}", s.handleDegenClaim(svc))
	s.router.Handle("/metrics", promhttp.Handler())

	s.httpServer = &http.Server{Addr: addr, Handler: s.router}
	return s
}

// Start blocks serving HTTP until the listener fails.
func (s *Server) Start() error { return s.httpServer.ListenAndServe() }

func (s *Server) handleConfig(svc *explorerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := svc.config()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, cfg)
	}
}

func (s *Server) handleDegenConfig(svc *explorerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dc, err := svc.degenConfig()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, dc)
	}
}

func (s *Server) handleRound(svc *explorerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roundID, err := parseRoundID(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rd, err := svc.round(roundID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, svc.roundSummary(rd))
	}
}

func (s *Server) handleParticipant(svc *explorerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roundID, err := parseRoundID(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		user, err := core.PubkeyFromBase58(chi.URLParam(r, "user"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p, err := svc.participant(roundID, user)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, p)
	}
}

func (s *Server) handleDegenClaim(svc *explorerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roundID, err := parseRoundID(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		winner, err := core.PubkeyFromBase58(chi.URLParam(r, "winner"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		claim, err := svc.degenClaim(roundID, winner)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, claim)
	}
}

func parseRoundID(r *http.Request) (uint64, error) {
	return parseU64Param(chi.URLParam(r, "roundID"))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if _, ok := core.CodeOf(err); ok {
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
}
