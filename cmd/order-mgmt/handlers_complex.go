package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Outcome labels of the simulated dependencies.
const (
	dbStatusOK       = "0"
	dbSQLStateOK     = "0"
	dbStatusFailed   = "1001"
	dbSQLStateFailed = "HY000"
	extStatusOK      = "200"
	extStatusFailed  = "500"
)

const complexSuccessMsg = "Success!"

// callParams are the simulation knobs of one dependency call.
type callParams struct {
	delay      time.Duration
	shouldFail bool
}

// paramError reports a query parameter that could not be parsed.
type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid value %q for parameter %s", e.value, e.name)
}

// complexHandler calls the database and then the audit service. The first
// failure short-circuits the rest and is returned as a 503.
func (s *server) complexHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	db, err := s.parseCallParams(q, "db_sleep", "is_db_error")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	srv, err := s.parseCallParams(q, "srv_sleep", "is_srv_error")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.workWithDB(r.Context(), db); err != nil {
		s.unavailable(w, r, err)
		return
	}
	if err := s.workWithThirdParty(r.Context(), srv); err != nil {
		s.unavailable(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(complexSuccessMsg))
}

func (s *server) workWithDB(ctx context.Context, p callParams) error {
	start := time.Now()
	err := callDatabase(ctx, p.delay, p.shouldFail)
	latency := time.Since(start).Seconds()
	if err != nil {
		s.collector.observeDatabase(dbStatusFailed, dbSQLStateFailed, latency)
		return err
	}
	s.collector.observeDatabase(dbStatusOK, dbSQLStateOK, latency)
	return nil
}

func (s *server) workWithThirdParty(ctx context.Context, p callParams) error {
	start := time.Now()
	err := callExternal(ctx, p.delay, p.shouldFail)
	latency := time.Since(start).Seconds()
	if err != nil {
		s.collector.observeExternal(extStatusFailed, latency)
		return err
	}
	s.collector.observeExternal(extStatusOK, latency)
	return nil
}

func (s *server) unavailable(w http.ResponseWriter, r *http.Request, err error) {
	var depErr *DependencyError
	if errors.As(err, &depErr) {
		s.logger.Warn("simulated dependency failed",
			zap.String("dependency", depErr.What),
			zap.String("request_id", requestIDFrom(r.Context())))
	} else {
		s.logger.Info("dependency call interrupted",
			zap.Error(err),
			zap.String("request_id", requestIDFrom(r.Context())))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte(err.Error()))
}

// parseCallParams reads a delay in seconds and a failure flag from q. Missing
// parameters default to no delay and success; negative delays mean no delay.
func (s *server) parseCallParams(q url.Values, sleepKey, errorKey string) (callParams, error) {
	var p callParams

	if raw := q.Get(sleepKey); raw != "" {
		secs, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
			return p, &paramError{name: sleepKey, value: raw}
		}
		limit := s.cfg.MaxSimulatedDelay
		if limit <= 0 {
			limit = time.Duration(math.MaxInt64)
		}
		switch {
		case secs <= 0:
		case secs >= limit.Seconds():
			p.delay = limit
		default:
			p.delay = time.Duration(secs * float64(time.Second))
		}
	}

	if raw := q.Get(errorKey); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return p, &paramError{name: errorKey, value: raw}
		}
		p.shouldFail = b
	}
	return p, nil
}
