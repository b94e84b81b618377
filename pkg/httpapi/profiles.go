package httpapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/phongzhu/e-elyon/pkg/core/services"
	"github.com/phongzhu/e-elyon/pkg/core/staffing"
)

type profilesRequest struct {
	MinistryIDs []string `json:"ministryIds"`
	MemberIDs   []string `json:"memberIds"`
}

type eligibilityRequest struct {
	RoleName string                  `json:"roleName"`
	Profile  *staffing.MemberProfile `json:"profile"`
	Start    time.Time               `json:"start"`
	End      time.Time               `json:"end"`
}

// BuildProfiles handles POST /api/profiles. Profiles are returned as a list ordered by
// ministry then member.
func (h *Handler) BuildProfiles(w http.ResponseWriter, r *http.Request) {
	var req profilesRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	profiles, err := services.BuildMemberProfiles(r.Context(), h.Store, h.Log, req.MinistryIDs, req.MemberIDs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	list := make([]*staffing.MemberProfile, 0, len(profiles))
	for _, p := range profiles {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].MinistryID != list[j].MinistryID {
			return list[i].MinistryID < list[j].MinistryID
		}
		return list[i].MemberID < list[j].MemberID
	})

	writeJSON(w, http.StatusOK, list)
}

// EvaluateEligibility handles POST /api/eligibility for a single profile and role.
func (h *Handler) EvaluateEligibility(w http.ResponseWriter, r *http.Request) {
	var req eligibilityRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result := h.Evaluator.Evaluate(req.RoleName, req.Profile, staffing.TaskWindow{Start: req.Start, End: req.End})
	writeJSON(w, http.StatusOK, result)
}
