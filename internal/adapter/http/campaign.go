package httpadapter

import (
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
)

// handleCreateCampaign stores a new campaign. The owner defaults to the
// caller when the body does not name one. Responds 201 with the new id.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	var (
		owner = r.Header.Get(AccountHeader)
		err   error
	)
	if req.Owner != "" {
		owner = req.Owner
	}
	draft := domain.Draft{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Deadline:    req.Deadline,
	}
	if draft.Owner, err = parseAddress(owner, errMissingAccount); err != nil {
		h.writeError(w, r, err)
		return
	}
	if draft.Target, err = ether("target", req.Target); err != nil {
		h.writeError(w, r, err)
		return
	}

	id, err := h.svc.CreateCampaign(r.Context(), draft)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, map[string]int64{"id": id})
}

// handleListCampaigns returns every campaign, or those of ?owner= only.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	var filter port.CampaignFilter
	if s := r.URL.Query().Get("owner"); s != "" {
		owner, err := parseAddress(s, fmt.Errorf("%w: invalid owner", errBadRequest))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		filter.Owner = &owner
	}

	list, err := h.svc.ListCampaigns(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]campaignView, 0, len(list))
	for i := range list {
		out = append(out, newCampaignView(&list[i]))
	}
	writeJSON(w, h.logger, http.StatusOK, out)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, h.logger, http.StatusOK, newCampaignView(c))
}

func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req updateCampaignRequest
	h.ownerAction(w, r, &req, func(id int64, who common.Address) error {
		return h.svc.UpdateCampaign(r.Context(), id, who, domain.Changes{
			Title:       req.Title,
			Description: req.Description,
			Image:       req.Image,
			Deadline:    req.Deadline,
		})
	})
}

func (h *Handler) handleAdjustGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	h.ownerAction(w, r, &req, func(id int64, who common.Address) error {
		target, err := ether("target", req.Target)
		if err != nil {
			return err
		}
		return h.svc.AdjustGoal(r.Context(), id, who, target)
	})
}

// handleChangeState moves the campaign to the state named in the body.
func (h *Handler) handleChangeState(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	h.ownerAction(w, r, &req, func(id int64, who common.Address) error {
		state, err := domain.ParseState(req.State)
		if err != nil {
			return err
		}
		return h.svc.ChangeState(r.Context(), id, who, state)
	})
}

func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	h.ownerAction(w, r, nil, func(id int64, who common.Address) error {
		return h.svc.Resume(r.Context(), id, who)
	})
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	h.ownerAction(w, r, nil, func(id int64, who common.Address) error {
		return h.svc.Complete(r.Context(), id, who)
	})
}

// ownerAction parses the id, the caller and, when body is not nil, the JSON
// body before running fn. Success responds 204.
func (h *Handler) ownerAction(w http.ResponseWriter, r *http.Request, body any, fn func(id int64, who common.Address) error) {
	id, who, err := h.target(r, body)
	if err == nil {
		err = fn(id, who)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// target parses the common parts of a mutating request.
func (h *Handler) target(r *http.Request, body any) (int64, common.Address, error) {
	id, err := campaignID(r)
	if err != nil {
		return 0, common.Address{}, err
	}
	who, err := caller(r)
	if err != nil {
		return 0, common.Address{}, err
	}
	if body != nil {
		if err = decode(r, body); err != nil {
			return 0, common.Address{}, err
		}
	}
	return id, who, nil
}
