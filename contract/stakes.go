package contract

import "coopvest_dao/sdk"

// Stake ledger rules: one record per (investment, participant), immutable
// after creation except for the single zeroing event on withdrawal. Up-votes
// move real custody, down-votes are free signals recorded with amount zero.

// castVote registers a participant's stake on a proposed investment.
// Inbound custody follows pull-confirm-then-credit: the draw happens first
// and the ledger only records what the host confirmed.
func castVote(caller sdk.Address, args *CastVoteArgs, now int64) error {
	if !membership.IsVerifiedMember(caller) {
		return errUnauthorized("only verified members may vote")
	}
	inv, err := loadInvestment(args.InvestmentID)
	if err != nil {
		return err
	}
	if inv.Status != StatusProposed {
		return errInvalidState("voting is only open on proposed investments")
	}
	if now > inv.Deadline {
		return contractErr(symDeadlinePassed, "voting deadline already passed")
	}
	if _, ok := loadStakeRecord(args.InvestmentID, caller); ok {
		return contractErr(symDuplicateVote, "participant already voted on this investment")
	}

	switch args.Direction {
	case DirectionUp:
		if args.Amount <= 0 {
			return errInvalidAmount("up-votes require a positive stake amount")
		}
		if err := treasury.Pull(caller, args.Amount); err != nil {
			return errTransferFailed("stake draw failed: " + err.Error())
		}
		saveStakeRecord(&StakeRecord{
			InvestmentID: args.InvestmentID,
			Participant:  caller,
			Amount:       args.Amount,
			Direction:    DirectionUp,
			CreatedAt:    now,
		})
		inv.UpvotedAmount += args.Amount
		saveInvestment(inv)
		addLockedStake(args.Amount)
		emitVoteCast(args.InvestmentID, AddressToString(caller), DirectionUp, args.Amount)
		appendAudit(AddressToString(caller), "vote-up", args.InvestmentID, args.Amount)
	case DirectionDown:
		if args.Amount != 0 {
			return errInvalidAmount("down-votes carry no stake amount")
		}
		saveStakeRecord(&StakeRecord{
			InvestmentID: args.InvestmentID,
			Participant:  caller,
			Direction:    DirectionDown,
			CreatedAt:    now,
		})
		inv.DownvoteCount++
		saveInvestment(inv)
		emitVoteCast(args.InvestmentID, AddressToString(caller), DirectionDown, 0)
		appendAudit(AddressToString(caller), "vote-down", args.InvestmentID, 0)
	default:
		return errInvalidAmount("unknown vote direction")
	}
	return nil
}

// withdrawStake refunds an up-voter from an expired investment. Outbound
// custody commits first: the record is zeroed and the totals shrunk before
// the transfer runs, so a re-entrant call sees nothing left to take.
func withdrawStake(caller sdk.Address, investmentID uint64) error {
	inv, err := loadInvestment(investmentID)
	if err != nil {
		return err
	}
	if inv.Status != StatusExpired {
		return errInvalidState("stake withdrawal is only open on expired investments")
	}
	rec, ok := loadStakeRecord(investmentID, caller)
	if !ok || rec.Amount <= 0 {
		return contractErr(symNothingToWithdraw, "no withdrawable stake for participant")
	}

	amount := rec.Amount
	rec.Amount = 0
	saveStakeRecord(rec)
	inv.UpvotedAmount -= amount
	if inv.UpvotedAmount < 0 {
		return errConsistency("upvoted total went negative on withdrawal")
	}
	saveInvestment(inv)
	if err := subLockedStake(amount); err != nil {
		return err
	}
	if err := treasury.Push(caller, amount); err != nil {
		return errTransferFailed("stake refund failed: " + err.Error())
	}
	emitStakeWithdrawn(investmentID, AddressToString(caller), amount)
	appendAudit(AddressToString(caller), "withdraw", investmentID, amount)
	return nil
}
