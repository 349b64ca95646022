package domain

import "errors"

// Guard failures returned by campaign operations. Every error is terminal
// for the call that produced it; nothing here is transient, so callers
// should surface them directly instead of retrying.
var (
	ErrNotFound          = errors.New("campaign not found")
	ErrInvalidDeadline   = errors.New("the deadline should be a date in the future")
	ErrNotOwner          = errors.New("only the campaign owner can perform this action")
	ErrAlreadyFunded     = errors.New("cannot change a campaign after receiving donations")
	ErrCampaignPaused    = errors.New("cannot donate to a campaign that is not active")
	ErrDeadlinePassed    = errors.New("the campaign deadline has passed")
	ErrInvalidTransition = errors.New("invalid campaign state transition")
	ErrGoalNotMet        = errors.New("the campaign target has not been reached")

	ErrInvalidAmount      = errors.New("amount must be a positive whole number of wei")
	ErrDeadlineNotReached = errors.New("the campaign deadline has not passed yet")
	ErrGoalReached        = errors.New("the campaign target has been reached")
	ErrAlreadyWithdrawn   = errors.New("campaign funds were already withdrawn")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrNotFound, "NotFound"},
	{ErrInvalidDeadline, "InvalidDeadline"},
	{ErrNotOwner, "NotOwner"},
	{ErrAlreadyFunded, "AlreadyFunded"},
	{ErrCampaignPaused, "CampaignPaused"},
	{ErrDeadlinePassed, "DeadlinePassed"},
	{ErrInvalidTransition, "InvalidTransition"},
	{ErrGoalNotMet, "GoalNotMet"},
	{ErrInvalidAmount, "InvalidAmount"},
	{ErrDeadlineNotReached, "DeadlineNotReached"},
	{ErrGoalReached, "GoalReached"},
	{ErrAlreadyWithdrawn, "AlreadyWithdrawn"},
}

// Kind returns the stable name of the guard error wrapped by err, or an
// empty string when err is not one of the domain errors.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}
