package httpadapter

import (
	"net/http"
)

// handleAddMilestone appends a milestone; fundingLevel is in ether.
func (h *Handler) handleAddMilestone(w http.ResponseWriter, r *http.Request) {
	var req milestoneRequest
	id, who, err := h.target(r, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	level, err := ether("fundingLevel", req.FundingLevel)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.svc.AddMilestone(r.Context(), id, who, level, req.Description); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// handleGetMilestones lists milestones with a reached flag computed against
// the amount collected so far.
func (h *Handler) handleGetMilestones(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newMilestoneViews(c.Milestones, c))
}
