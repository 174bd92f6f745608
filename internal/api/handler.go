package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/piwi3910/LabelSheet/internal/engine"
	"github.com/piwi3910/LabelSheet/internal/export"
	"github.com/piwi3910/LabelSheet/internal/input"
	"github.com/piwi3910/LabelSheet/internal/model"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// maxBodyBytes bounds request bodies read by the plan and render handlers.
const maxBodyBytes = 4 << 20

// Handler turns HTTP requests into sheet plans and rendered documents.
type Handler struct {
	base           model.LayoutSettings
	maxIdentifiers int
	logger         *zap.Logger

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMaxIdentifiers caps the identifiers accepted per request. Zero or less disables the cap.
func WithMaxIdentifiers(n int) HandlerOption {
	return func(h *Handler) {
		h.maxIdentifiers = n
	}
}

// WithHandlerLogger sets the logger passed to each Planner.
func WithHandlerLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler constructs a Handler whose plans start from base.
func NewHandler(base model.LayoutSettings, opts ...HandlerOption) *Handler {
	h := &Handler{
		base:   base,
		logger: zap.NewNop(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	req, plan, ok := h.buildPlan(w, r)
	if !ok {
		return
	}

	resp := planResponse{
		Plan:     plan,
		Summary:  export.Summarize(plan),
		Estimate: model.EstimatePaper(plan, req.SpoilagePercent, req.PricePerSheet),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	req, plan, ok := h.buildPlan(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	var err error
	filename := "labels.pdf"
	if req.Report {
		filename = "layout-report.pdf"
		err = export.WriteReport(&buf, plan)
	} else {
		err = export.WritePDF(&buf, plan, req.settings)
	}
	if err != nil {
		if errors.Is(err, export.ErrEmptyPlan) {
			writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		writeInternalError(w, fmt.Errorf("render pdf: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Plan-ID", plan.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// buildPlan decodes a plan request and runs the planner. It writes the error
// response itself and returns ok=false when the request is unusable.
func (h *Handler) buildPlan(w http.ResponseWriter, r *http.Request) (planRequest, model.SheetPlan, bool) {
	var req planRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return req, model.SheetPlan{}, false
	}

	settings := h.base
	if len(req.Settings) > 0 {
		if err := json.Unmarshal(req.Settings, &settings); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid settings", err.Error())
			return req, model.SheetPlan{}, false
		}
	}
	req.settings = settings.Normalize()

	ids := req.identifiers()
	if len(ids) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", input.ErrNoIdentifiers.Error(),
			"send identifiers as an array or as comma/newline separated raw text")
		return req, model.SheetPlan{}, false
	}
	if h.maxIdentifiers > 0 && len(ids) > h.maxIdentifiers {
		writeError(w, http.StatusBadRequest, "Too many identifiers",
			fmt.Sprintf("got %d identifiers, the limit is %d", len(ids), h.maxIdentifiers),
			"split the batch into several requests")
		return req, model.SheetPlan{}, false
	}

	logger := h.logger.With(zap.String("request_id", requestIDFromContext(r.Context())))
	plan := engine.New(req.settings, engine.WithLogger(logger)).Plan(ids)
	return req, plan, true
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type planRequest struct {
	Identifiers     []string        `json:"identifiers"`
	Raw             string          `json:"raw"`
	Settings        json.RawMessage `json:"settings"`
	SpoilagePercent float64         `json:"spoilage_percent"`
	PricePerSheet   float64         `json:"price_per_sheet"`
	Report          bool            `json:"report"`

	settings model.LayoutSettings
}

// identifiers merges the array and raw forms, sanitized, array first.
func (req planRequest) identifiers() []string {
	ids := make([]string, 0, len(req.Identifiers))
	for _, id := range req.Identifiers {
		if clean := input.Sanitize(id); clean != "" {
			ids = append(ids, clean)
		}
	}
	return append(ids, input.ParseIdentifiers(req.Raw)...)
}

type planResponse struct {
	Plan     model.SheetPlan     `json:"plan"`
	Summary  export.Summary      `json:"summary"`
	Estimate model.PaperEstimate `json:"estimate"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
