package contract

import "coopvest_dao/sdk"

// Failure symbols surfaced through sdk.Revert. Off-chain tooling matches on
// these, so they are part of the contract's public surface and never change.
const (
	symUnauthorized       = "unauthorized"
	symInvalidState       = "invalid_state"
	symInvalidAmount      = "invalid_amount"
	symDeadlinePassed     = "deadline_passed"
	symDeadlineNotReached = "deadline_not_reached"
	symDuplicateVote      = "duplicate_vote"
	symNoStake            = "no_stake"
	symAlreadyClaimed     = "already_claimed"
	symNothingToClaim     = "nothing_to_claim"
	symNothingToWithdraw  = "nothing_to_withdraw"
	symNothingToSweep     = "nothing_to_sweep"
	symNoGracePeriod      = "no_grace_period"
	symTransferFailed     = "transfer_failed"
	symConsistency        = "consistency_violation"
	symNotFound           = "not_found"
	symReentrancy         = "reentrancy"
	symPaused             = "paused"
	symBadPayload         = "bad_payload"
)

// ContractError pairs a stable symbol with a human detail naming the
// violated condition. Internal operations return these; the export layer
// translates them into host reverts.
type ContractError struct {
	Symbol string
	Detail string
}

func (e *ContractError) Error() string {
	return e.Symbol + ": " + e.Detail
}

func contractErr(symbol, detail string) *ContractError {
	return &ContractError{Symbol: symbol, Detail: detail}
}

func errUnauthorized(detail string) *ContractError {
	return contractErr(symUnauthorized, detail)
}

func errInvalidState(detail string) *ContractError {
	return contractErr(symInvalidState, detail)
}

func errInvalidAmount(detail string) *ContractError {
	return contractErr(symInvalidAmount, detail)
}

func errTransferFailed(detail string) *ContractError {
	return contractErr(symTransferFailed, detail)
}

func errNotFound(detail string) *ContractError {
	return contractErr(symNotFound, detail)
}

// errBadPayload covers malformed non-numeric input: bad addresses, unknown
// enum tokens, strings out of bounds. invalid_amount stays reserved for
// numeric violations.
func errBadPayload(detail string) *ContractError {
	return contractErr(symBadPayload, detail)
}

// errConsistency marks a latent accounting bug. It must never trigger in
// correct operation; the export layer logs it at maximum severity before
// aborting the call.
func errConsistency(detail string) *ContractError {
	return contractErr(symConsistency, detail)
}

// revertOnError maps an internal error onto the host failure surface.
// Consistency violations abort hard, everything else reverts with its symbol.
func revertOnError(err error) {
	if err == nil {
		return
	}
	if ce, ok := err.(*ContractError); ok {
		if ce.Symbol == symConsistency {
			emitConsistencyViolation(ce.Detail)
			sdk.Abort(ce.Detail)
		}
		sdk.Revert(ce.Detail, ce.Symbol)
	}
	sdk.Revert(err.Error(), symBadPayload)
}
