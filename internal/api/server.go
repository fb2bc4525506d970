package api

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rgehrsitz/herdemi/internal/config"
	"github.com/rgehrsitz/herdemi/internal/domain"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const (
	maxLineageHorizon = 600
	defaultHorizon    = 60
)

// Server exposes the calculator over HTTP.
type Server struct {
	Engine  *calculation.CalculationEngine
	Parser  *config.InputParser
	Logger  zerolog.Logger
	Version string

	now func() time.Time
}

// NewServer builds a server around engine; a nil engine gets a fresh one.
func NewServer(engine *calculation.CalculationEngine, logger zerolog.Logger, version string) *Server {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return &Server{
		Engine:  engine,
		Parser:  config.NewInputParser(),
		Logger:  logger,
		Version: version,
		now:     time.Now,
	}
}

// Handler routes requests to the endpoint handlers.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := s.now()
	requestID := uuid.NewString()
	ctx.SetUserValue("requestId", requestID)
	ctx.Response.Header.Set("X-Request-ID", requestID)

	path := string(ctx.Path())
	switch path {
	case "/healthz":
		s.route(ctx, fasthttp.MethodGet, s.handleHealth)
	case "/v1/simulate":
		s.route(ctx, fasthttp.MethodPost, s.handleSimulate)
	case "/v1/acf":
		s.route(ctx, fasthttp.MethodPost, s.handleACF)
	case "/v1/lineage":
		s.route(ctx, fasthttp.MethodGet, s.handleLineage)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "Unknown path: "+path, nil)
	}

	s.Logger.Info().
		Str("requestId", requestID).
		Str("method", string(ctx.Method())).
		Str("path", path).
		Int("status", ctx.Response.StatusCode()).
		Dur("duration", s.now().Sub(start)).
		Msg("request")
}

func (s *Server) route(ctx *fasthttp.RequestCtx, method string, h func(*fasthttp.RequestCtx) (any, error)) {
	if string(ctx.Method()) != method {
		ctx.Response.Header.Set("Allow", method)
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	start := s.now()
	result, err := h(ctx)
	if err != nil {
		var ve *config.ValidationError
		var re *requestError
		switch {
		case errors.As(err, &ve):
			s.writeError(ctx, fasthttp.StatusUnprocessableEntity, "Invalid input", ve.Fields)
		case errors.As(err, &re):
			s.writeError(ctx, fasthttp.StatusBadRequest, re.msg, nil)
		case errors.Is(err, calculation.ErrUnsupportedACFTenure):
			s.writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error(), nil)
		default:
			s.Logger.Error().Err(err).Str("requestId", requestIDOf(ctx)).Msg("request failed")
			s.writeError(ctx, fasthttp.StatusInternalServerError, "Internal error", nil)
		}
		return
	}

	done := s.now()
	s.writeJSON(ctx, fasthttp.StatusOK, Response{
		Metadata: Metadata{
			RequestID:   requestIDOf(ctx),
			StartedAt:   start.UTC().Format(time.RFC3339Nano),
			CompletedAt: done.UTC().Format(time.RFC3339Nano),
			DurationMs:  done.Sub(start).Milliseconds(),
		},
		Result: result,
	})
}

type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error { return &requestError{msg: msg} }

func (s *Server) handleHealth(_ *fasthttp.RequestCtx) (any, error) {
	return map[string]string{"status": "ok", "version": s.Version}, nil
}

func (s *Server) handleSimulate(ctx *fasthttp.RequestCtx) (any, error) {
	var req SimulateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		return nil, badRequest("Invalid request body: " + err.Error())
	}
	if err := s.Parser.ValidateInput(&req.SimulationInput); err != nil {
		return nil, err
	}

	res := s.Engine.Simulate(req.SimulationInput)
	out := *res
	if !req.IncludeMonthly {
		out.MonthlyRows = nil
	}
	return out, nil
}

func (s *Server) handleACF(ctx *fasthttp.RequestCtx) (any, error) {
	var req ACFRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		return nil, badRequest("Invalid request body: " + err.Error())
	}
	plan := domain.ACFPlan{UnitCount: req.UnitCount, TenureMonths: req.TenureMonths}
	if err := s.Parser.ValidateACFPlan(&plan); err != nil {
		return nil, err
	}
	return calculation.GenerateACF(req.UnitCount, req.TenureMonths)
}

func (s *Server) handleLineage(ctx *fasthttp.RequestCtx) (any, error) {
	args := ctx.QueryArgs()
	horizon, err := intArg(args, "horizon", defaultHorizon)
	if err != nil {
		return nil, err
	}
	units, err := intArg(args, "units", 1)
	if err != nil {
		return nil, err
	}
	if horizon < 1 || horizon > maxLineageHorizon {
		return nil, badRequest("horizon must be between 1 and " + strconv.Itoa(maxLineageHorizon))
	}
	if units < 0 {
		return nil, badRequest("units cannot be negative")
	}

	lineage := calculation.GenerateLineage(horizon)
	return LineageResult{
		Horizon:        horizon,
		Units:          units,
		Births:         lineage.Births,
		AnimalsPerUnit: calculation.AdultsPerUnit + len(lineage.Births),
		OffspringValue: calculation.OffspringValue(lineage),
		HerdValue:      calculation.HerdAssetValue(lineage, units),
	}, nil
}

func intArg(args *fasthttp.Args, name string, def int) (int, error) {
	if !args.Has(name) {
		return def, nil
	}
	n, err := strconv.Atoi(string(args.Peek(name)))
	if err != nil {
		return 0, badRequest("invalid " + name + ": " + string(args.Peek(name)))
	}
	return n, nil
}

func requestIDOf(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("requestId").(string)
	return id
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string, fields map[string]string) {
	s.writeJSON(ctx, status, ErrorResponse{
		RequestID: requestIDOf(ctx),
		Status:    status,
		Message:   message,
		Fields:    fields,
	})
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.Logger.Error().Err(err).Msg("failed to encode response")
		ctx.Error(`{"message":"Internal error"}`, fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler:      s.Handler,
		Name:         "herdemi",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.Logger.Info().Msg("shutting down")
		return srv.Shutdown()
	}
}
