package server

import (
	"encoding/json"
	"net/http"

	"github.com/goevery/coderelay/internal/handler"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type RESTServer struct {
	logger        *zap.Logger
	originChecker *OriginChecker

	healthHandler *handler.HealthHandler
}

func NewRESTServer(
	logger *zap.Logger,
	originChecker *OriginChecker,
	healthHandler *handler.HealthHandler,
) *RESTServer {
	return &RESTServer{
		logger,
		originChecker,
		healthHandler,
	}
}

func (s *RESTServer) Register(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		s.writeCORSHeaders(w, r)

		if r.Method == http.MethodOptions {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(s.healthHandler.Handle())
		if err != nil {
			s.logger.Error("failed to encode health response", zap.Error(err))
		}
	}).Methods(http.MethodGet, http.MethodOptions)
}

func (s *RESTServer) writeCORSHeaders(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" || !s.originChecker.Allowed(origin) {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Add("Vary", "Origin")
}
