package contract

import (
	"math/bits"

	"coopvest_dao/sdk"
)

// Yield engine: deposits credit custody, claims pay out floor-rounded
// pro-rata shares, sweeps clear post-grace residue. All three keep the
// conservation ledger (locked yield) in lockstep with the host balance.

// mulDivFloor computes floor(a*b/c) through a 128-bit intermediate so large
// pools cannot overflow int64 math.
func mulDivFloor(a, b, c Amount) (Amount, error) {
	if c <= 0 {
		return 0, errConsistency("pro-rata divisor must be positive")
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi >= uint64(c) {
		return 0, errConsistency("pro-rata share overflows the amount range")
	}
	q, _ := bits.Div64(hi, lo, uint64(c))
	return Amount(q), nil
}

// depositYield pulls returns from the finance operator into custody and
// credits the investment's generated total.
func depositYield(caller sdk.Address, args *DepositYieldArgs, now int64) error {
	if !authority.HasCapability(caller, RoleManageFinance) {
		return errUnauthorized("manage-finance capability required to deposit yield")
	}
	inv, err := loadInvestment(args.InvestmentID)
	if err != nil {
		return err
	}
	if inv.Status != StatusFunded {
		return errInvalidState("yield deposits are only open on funded investments")
	}
	if args.Amount <= 0 {
		return errInvalidAmount("deposit amount must be positive")
	}
	if len(args.ReportRef) > MaxReportRefLength {
		return errBadPayload("report reference exceeds maximum length")
	}
	if err := treasury.Pull(caller, args.Amount); err != nil {
		return errTransferFailed("yield draw failed: " + err.Error())
	}

	inv.YieldGenerated += args.Amount
	saveInvestment(inv)
	rec := loadYieldRecord(args.InvestmentID)
	rec.Deposited += args.Amount
	rec.LastDepositAt = now
	if args.ReportRef != "" {
		rec.ReportRef = args.ReportRef
	}
	saveYieldRecord(rec)
	addLockedYield(args.Amount)
	emitYieldDeposited(args.InvestmentID, AddressToString(caller), args.Amount)
	appendAudit(AddressToString(caller), "deposit", args.InvestmentID, args.Amount)
	return nil
}

// claimEntitlement is the share formula: floor(stake * generated / upvoted),
// computed fresh against current totals at claim time. Late deposits raise
// later claims; they never reopen settled ones.
func claimEntitlement(inv *Investment, rec *StakeRecord) (Amount, error) {
	if rec.Amount <= 0 || inv.UpvotedAmount <= 0 || inv.YieldGenerated <= 0 {
		return 0, nil
	}
	return mulDivFloor(rec.Amount, inv.YieldGenerated, inv.UpvotedAmount)
}

// claimYield pays a staker their pro-rata share exactly once. Claim rights
// attach to the stake record, so former members keep theirs. Commit runs
// before the transfer; a re-entrant second claim sees Claimed already set.
func claimYield(caller sdk.Address, investmentID uint64) (Amount, error) {
	inv, err := loadInvestment(investmentID)
	if err != nil {
		return 0, err
	}
	rec, ok := loadStakeRecord(investmentID, caller)
	if !ok || rec.Direction != DirectionUp {
		return 0, contractErr(symNoStake, "no up-vote stake recorded for participant")
	}
	if inv.Status != StatusFunded {
		return 0, errInvalidState("claims are only open on funded investments")
	}
	if rec.Claimed {
		return 0, contractErr(symAlreadyClaimed, "stake already claimed its share")
	}
	entitlement, err := claimEntitlement(inv, rec)
	if err != nil {
		return 0, err
	}
	if entitlement <= 0 {
		return 0, contractErr(symNothingToClaim, "entitlement rounds to zero")
	}
	// A post-grace sweep marks unclaimed shares distributed. A lagging staker
	// then finds nothing left, or only the slice from deposits made after the
	// sweep; capping at the undistributed balance keeps distributed within
	// generated either way.
	undistributed := inv.YieldGenerated - inv.YieldDistributed
	if undistributed <= 0 {
		return 0, contractErr(symNothingToClaim, "unclaimed share was swept after the grace period")
	}
	if entitlement > undistributed {
		entitlement = undistributed
	}

	rec.Claimed = true
	rec.ClaimedAmount = entitlement
	saveStakeRecord(rec)
	inv.YieldDistributed += entitlement
	saveInvestment(inv)
	yrec := loadYieldRecord(investmentID)
	yrec.Distributed += entitlement
	saveYieldRecord(yrec)
	if err := subLockedYield(entitlement); err != nil {
		return 0, err
	}
	if err := treasury.Push(caller, entitlement); err != nil {
		return 0, errTransferFailed("yield payout failed: " + err.Error())
	}
	emitYieldClaimed(investmentID, AddressToString(caller), entitlement)
	appendAudit(AddressToString(caller), "claim", investmentID, entitlement)
	return entitlement, nil
}

// sweepUnclaimed moves floor-rounding residue and never-claimed shares out of
// custody once the grace period after the last deposit has run out. Marking
// the residue distributed is what lets a stalled pool eventually close.
func sweepUnclaimed(caller sdk.Address, args *SweepArgs, now int64) (Amount, error) {
	if !authority.HasCapability(caller, RoleAdministerMembers) {
		return 0, errUnauthorized("administer-members capability required to sweep")
	}
	inv, err := loadInvestment(args.InvestmentID)
	if err != nil {
		return 0, err
	}
	if inv.Status != StatusFunded && inv.Status != StatusClosed {
		return 0, errInvalidState("sweeps are only open on funded or closed investments")
	}
	if !args.Recipient.IsValid() {
		return 0, errBadPayload("sweep recipient address is not valid")
	}
	yrec := loadYieldRecord(args.InvestmentID)
	remaining := yrec.Remaining()
	if remaining <= 0 {
		return 0, contractErr(symNothingToSweep, "no undistributed yield remains")
	}
	if yrec.LastDepositAt == 0 || now < yrec.LastDepositAt+GracePeriodSecs {
		return 0, contractErr(symNoGracePeriod, "grace period after last deposit not elapsed")
	}

	yrec.Distributed += remaining
	saveYieldRecord(yrec)
	inv.YieldDistributed += remaining
	saveInvestment(inv)
	if err := subLockedYield(remaining); err != nil {
		return 0, err
	}
	if err := treasury.Push(args.Recipient, remaining); err != nil {
		return 0, errTransferFailed("sweep payout failed: " + err.Error())
	}
	emitYieldSwept(args.InvestmentID, AddressToString(args.Recipient), remaining)
	appendAudit(AddressToString(caller), "sweep", args.InvestmentID, remaining)
	return remaining, nil
}
