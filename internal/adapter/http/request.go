package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"crowdfund/internal/core/domain"
)

var (
	errMissingAccount = errors.New("missing or invalid " + AccountHeader + " header")
	errBadRequest     = errors.New("bad request")
)

type createCampaignRequest struct {
	Owner       string    `json:"owner"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Target      string    `json:"target"`
	Deadline    time.Time `json:"deadline"`
}

type updateCampaignRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Deadline    time.Time `json:"deadline"`
}

type goalRequest struct {
	Target string `json:"target"`
}

type stateRequest struct {
	State string `json:"state"`
}

type donateRequest struct {
	Amount string `json:"amount"`
}

type milestoneRequest struct {
	FundingLevel string `json:"fundingLevel"`
	Description  string `json:"description"`
}

// decode reads a JSON body into dst, rejecting unknown fields.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	return nil
}

// caller returns the wallet address in the account header.
func caller(r *http.Request) (common.Address, error) {
	return parseAddress(r.Header.Get(AccountHeader), errMissingAccount)
}

func parseAddress(s string, sentinel error) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, sentinel
	}
	return common.HexToAddress(s), nil
}

func campaignID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: invalid campaign id", errBadRequest)
	}
	return id, nil
}

// ether converts an ether denominated request field into wei.
func ether(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %s is required", errBadRequest, field)
	}
	wei, err := domain.ParseEther(s)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("%w: %s: %v", errBadRequest, field, err)
	}
	return wei, nil
}
