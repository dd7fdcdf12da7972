package domain

import "errors"

// Workflow error kinds. Each failure mode is a distinct sentinel so callers
// can branch with errors.Is and render precise user-facing messages.
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrIneligibleState     = errors.New("application is not in an eligible state for this operation")
	ErrSelfApproval        = errors.New("board members cannot vote on their own application")
	ErrDuplicateVote       = errors.New("board member has already cast an active vote on this application")
	ErrValidation          = errors.New("invalid input")
	ErrUnauthorized        = errors.New("actor is not allowed to perform this operation")
	ErrPreconditionFailed  = errors.New("store precondition failed")
	ErrStoreInconsistency  = errors.New("store state is inconsistent with the attempted operation")
)
