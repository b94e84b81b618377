package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/phongzhu/e-elyon/pkg/core/services"
	"github.com/phongzhu/e-elyon/pkg/core/staffing"
	"github.com/phongzhu/e-elyon/pkg/db"
)

// Handler serves the staffing API over a store.
type Handler struct {
	Store       db.Database
	Evaluator   *staffing.Evaluator
	Log         *zap.Logger
	SlotOptions services.SaveSlotsOptions
}

// NewHandler constructs a Handler.
func NewHandler(store db.Database, evaluator *staffing.Evaluator, logger *zap.Logger, slotOptions services.SaveSlotsOptions) *Handler {
	return &Handler{
		Store:       store,
		Evaluator:   evaluator,
		Log:         logger,
		SlotOptions: slotOptions,
	}
}

// Routes returns a router with every staffing endpoint mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.ServeHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks/{taskID}/slots", func(r chi.Router) {
			r.Get("/", h.ListSlots)
			r.Put("/", h.SaveSlots)
			r.Get("/{slotID}/candidates", h.ListCandidates)
			r.Put("/{slotID}/assignments", h.ReconcileAssignments)
		})
		r.Post("/profiles", h.BuildProfiles)
		r.Post("/eligibility", h.EvaluateEligibility)
	})

	return r
}

type errorResponse struct {
	Error string `json:"error"`
	// Quota rejections carry their limits so the UI can say how many to untick
	Limit     int `json:"limit,omitempty"`
	Requested int `json:"requested,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto HTTP statuses:
// validation 422, quota 409, missing task/slot 404, everything else 502.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var quota *staffing.QuotaExceededError
	var validation *staffing.ValidationError

	switch {
	case errors.As(err, &quota):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:     quota.Error(),
			Limit:     quota.Limit,
			Requested: quota.Requested,
		})
	case errors.As(err, &validation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: validation.Error()})
	case errors.Is(err, db.ErrTaskNotFound), errors.Is(err, staffing.ErrSlotNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		h.Log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &staffing.ValidationError{Message: "invalid request body: " + err.Error()}
	}
	return nil
}
