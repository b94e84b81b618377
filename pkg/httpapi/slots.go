package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phongzhu/e-elyon/pkg/core/services"
	"github.com/phongzhu/e-elyon/pkg/core/staffing"
)

type saveSlotsRequest struct {
	Slots []staffing.SlotDraft `json:"slots"`
}

type reconcileRequest struct {
	MemberIDs []string `json:"memberIds"`
}

type reconcileResponse struct {
	SlotID    string   `json:"slotId"`
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Unchanged bool     `json:"unchanged"`
}

// ListSlots handles GET /api/tasks/{taskID}/slots.
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	summaries, err := services.ListRoleSlots(r.Context(), h.Store, h.Log, taskID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// SaveSlots handles PUT /api/tasks/{taskID}/slots with body {"slots":[{"roleName","qtyRequired"}]}.
func (h *Handler) SaveSlots(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	var req saveSlotsRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	slots, err := services.SaveRoleSlots(r.Context(), h.Store, h.Log, taskID, req.Slots, h.SlotOptions)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, slots)
}

// ListCandidates handles GET /api/tasks/{taskID}/slots/{slotID}/candidates.
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	slotID := chi.URLParam(r, "slotID")

	candidates, err := services.ListCandidates(r.Context(), h.Store, h.Evaluator, h.Log, taskID, slotID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}

// ReconcileAssignments handles PUT /api/tasks/{taskID}/slots/{slotID}/assignments with
// body {"memberIds":[...]}, the full desired membership of the slot.
func (h *Handler) ReconcileAssignments(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	slotID := chi.URLParam(r, "slotID")

	var req reconcileRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := services.ReconcileSlotAssignment(r.Context(), h.Store, h.Log, taskID, slotID, req.MemberIDs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reconcileResponse{
		SlotID:    result.Slot.ID,
		Added:     result.Delta.ToAdd,
		Removed:   result.Delta.ToRemove,
		Unchanged: result.Delta.Empty(),
	})
}
