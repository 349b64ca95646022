package httpadapter

import (
	"net/http"
)

// handleGetPayouts lists the refunds and withdrawals a campaign has queued
// together with their settlement status.
func (h *Handler) handleGetPayouts(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	list, err := h.svc.GetPayouts(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newPayoutViews(list))
}
