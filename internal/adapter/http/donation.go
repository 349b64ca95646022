package httpadapter

import (
	"net/http"
)

// handleDonate records a donation from the caller. The body carries the
// amount in ether. Responds 201 with the updated campaign.
func (h *Handler) handleDonate(w http.ResponseWriter, r *http.Request) {
	var req donateRequest
	id, donor, err := h.target(r, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	amount, err := ether("amount", req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	c, err := h.svc.Donate(r.Context(), id, donor, amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, newCampaignView(c))
}

func (h *Handler) handleGetDonations(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	list, err := h.svc.GetDonations(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newDonationViews(list))
}

// handleRefund returns the contributions of a failed campaign and lists
// the payouts queued for settlement.
func (h *Handler) handleRefund(w http.ResponseWriter, r *http.Request) {
	id, who, err := h.target(r, nil)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	payouts, err := h.svc.Refund(r.Context(), id, who)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newPayoutViews(payouts))
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	id, who, err := h.target(r, nil)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	payout, err := h.svc.Withdraw(r.Context(), id, who)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newPayoutView(payout))
}
