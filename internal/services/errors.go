package services

import (
	"errors"

	"freelancer-dao/internal/ledger"
)

// Domain errors. Each one rejects the whole operation with no partial
// effect; callers must change inputs or wait before retrying.
var (
	ErrInsufficientFunds       = ledger.ErrInsufficientFunds
	ErrNoFreelancersAvailable  = errors.New("no freelancers available in category")
	ErrVotingClosed            = errors.New("voting window has closed")
	ErrVoterNotActive          = errors.New("voter is not an active freelancer")
	ErrCandidateNotActive      = errors.New("candidate is not an active freelancer")
	ErrCandidateUnderqualified = errors.New("candidate stake below minimum for category")
	ErrNoVotingPower           = errors.New("voter has no voting power in category")
	ErrNotInProgress           = errors.New("project is not in progress")
	ErrProjectNotFound         = errors.New("project not found")
	ErrProjectNotOpen          = errors.New("project is not open for voting")
	ErrUnauthorized            = errors.New("caller is not authorized")
	ErrFeeTooHigh              = errors.New("fee exceeds maximum basis points")
	ErrInvalidParameters       = errors.New("invalid parameters")
)
