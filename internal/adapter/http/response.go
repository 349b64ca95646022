package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"crowdfund/internal/core/domain"
)

type campaignView struct {
	ID              int64           `json:"id"`
	Owner           string          `json:"owner"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Image           string          `json:"image"`
	Target          string          `json:"target"`
	Deadline        time.Time       `json:"deadline"`
	AmountCollected string          `json:"amountCollected"`
	State           domain.State    `json:"state"`
	Withdrawn       bool            `json:"withdrawn"`
	Donations       []donationView  `json:"donations,omitempty"`
	Milestones      []milestoneView `json:"milestones,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type donationView struct {
	Donor     string    `json:"donor"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

type milestoneView struct {
	FundingLevel string    `json:"fundingLevel"`
	Description  string    `json:"description"`
	Reached      bool      `json:"reached"`
	CreatedAt    time.Time `json:"createdAt"`
}

type payoutView struct {
	ID         string              `json:"id"`
	CampaignID int64               `json:"campaignId"`
	Kind       domain.PayoutKind   `json:"kind"`
	Recipient  string              `json:"recipient"`
	Amount     string              `json:"amount"`
	Status     domain.PayoutStatus `json:"status"`
	TxHash     string              `json:"txHash,omitempty"`
	Reason     string              `json:"reason,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

type errorView struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func newCampaignView(c *domain.Campaign) campaignView {
	v := campaignView{
		ID:              c.ID,
		Owner:           c.Owner.Hex(),
		Title:           c.Title,
		Description:     c.Description,
		Category:        c.Category,
		Image:           c.Image,
		Target:          domain.FormatEther(c.Target),
		Deadline:        c.Deadline,
		AmountCollected: domain.FormatEther(c.AmountCollected),
		State:           c.State,
		Withdrawn:       c.Withdrawn,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
	if len(c.Donations) > 0 {
		v.Donations = newDonationViews(c.Donations)
	}
	if len(c.Milestones) > 0 {
		v.Milestones = newMilestoneViews(c.Milestones, c)
	}
	return v
}

func newDonationViews(list []domain.Donation) []donationView {
	out := make([]donationView, 0, len(list))
	for _, d := range list {
		out = append(out, donationView{Donor: d.Donor.Hex(), Amount: domain.FormatEther(d.Amount), CreatedAt: d.CreatedAt})
	}
	return out
}

func newMilestoneViews(list []domain.Milestone, c *domain.Campaign) []milestoneView {
	out := make([]milestoneView, 0, len(list))
	for _, m := range list {
		out = append(out, milestoneView{
			FundingLevel: domain.FormatEther(m.FundingLevel),
			Description:  m.Description,
			Reached:      m.Reached(c.AmountCollected),
			CreatedAt:    m.CreatedAt,
		})
	}
	return out
}

func newPayoutView(p domain.Payout) payoutView {
	return payoutView{
		ID:         p.ID.String(),
		CampaignID: p.CampaignID,
		Kind:       p.Kind,
		Recipient:  p.Recipient.Hex(),
		Amount:     domain.FormatEther(p.Amount),
		Status:     p.Status,
		TxHash:     p.TxHash,
		Reason:     p.Reason,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func newPayoutViews(list []domain.Payout) []payoutView {
	out := make([]payoutView, 0, len(list))
	for _, p := range list {
		out = append(out, newPayoutView(p))
	}
	return out
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// encoding should rarely fail; the status is already sent
		logger.Error("encode response error", slog.Any("error", err))
	}
}

// statusOf maps a domain error kind to an HTTP status code.
func statusOf(kind string) int {
	switch kind {
	case "NotFound":
		return http.StatusNotFound
	case "NotOwner":
		return http.StatusForbidden
	case "InvalidDeadline", "InvalidAmount":
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

// writeError renders err as {"error": kind, "message": text}. Errors that
// are not guard failures are logged and hidden behind a 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errMissingAccount):
		writeJSON(w, h.logger, http.StatusUnauthorized, errorView{Error: "Unauthorized", Message: err.Error()})
		return
	case errors.Is(err, errBadRequest):
		writeJSON(w, h.logger, http.StatusBadRequest, errorView{Error: "BadRequest", Message: err.Error()})
		return
	}

	kind := domain.Kind(err)
	if kind == "" {
		h.logger.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		writeJSON(w, h.logger, http.StatusInternalServerError, errorView{Error: "Internal", Message: "internal error"})
		return
	}
	writeJSON(w, h.logger, statusOf(kind), errorView{Error: kind, Message: err.Error()})
}
