package main

import (
	"net/http"

	"github.com/gorilla/mux"
)

// setupRoutes configures all HTTP routes and route-level middleware.
func (s *server) setupRoutes() *mux.Router {
	router := mux.NewRouter()

	router.Use(s.rateLimitMiddleware)

	router.HandleFunc("/hello", helloHandler).Methods("GET")
	router.HandleFunc("/world", worldHandler).Methods("GET")
	router.HandleFunc("/complex", s.complexHandler).Methods("GET")

	// Health check endpoints
	router.HandleFunc("/health", s.healthHandler).Methods("GET")
	router.HandleFunc("/ready", s.readyHandler).Methods("GET")

	// Prometheus metrics
	metrics := s.collector.handler()
	router.Handle("/metrics", metrics).Methods("GET")
	router.Handle("/metrics/", metrics).Methods("GET")

	return router
}

// handler returns the full request pipeline. The interceptors wrap the router
// rather than being registered on it so that unmatched routes (404/405) are
// measured and logged as well.
func (s *server) handler() http.Handler {
	var h http.Handler = s.setupRoutes()
	h = s.loggingMiddleware(h)
	h = requestIDMiddleware(h)
	h = s.instrumentMiddleware(h)
	return h
}
