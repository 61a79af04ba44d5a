package contract

import "coopvest_dao/sdk"

// The lifecycle machine: Proposed -> Funded -> Closed, with Proposed ->
// Expired as the failure exit. Every transition is an explicit privileged
// call; nothing flips on the clock alone.

// createInvestment validates the proposal fields and files the record under
// the proposed index. Requires the propose-investment capability.
func createInvestment(caller sdk.Address, args *CreateInvestmentArgs, now int64) (uint64, error) {
	if !authority.HasCapability(caller, RoleProposeInvestment) {
		return 0, errUnauthorized("propose-investment capability required")
	}
	if args.Name == "" {
		return 0, errBadPayload("investment name must not be empty")
	}
	if len(args.Name) > MaxNameLength {
		return 0, errBadPayload("investment name exceeds maximum length")
	}
	if len(args.Category) > MaxCategoryLength {
		return 0, errBadPayload("category exceeds maximum length")
	}
	if args.FundingTarget <= 0 {
		return 0, errInvalidAmount("funding target must be positive")
	}
	if args.ExpectedYieldPct > MaxYieldHintPct {
		return 0, errInvalidAmount("expected yield hint exceeds 100 percent")
	}
	if args.Grade == GradeUnspecified {
		return 0, errBadPayload("unknown risk grade")
	}
	if args.DeadlineDays < MinDeadlineDays || args.DeadlineDays > MaxDeadlineDays {
		return 0, errInvalidAmount("deadline days out of range")
	}

	id := nextInvestmentID()
	inv := &Investment{
		ID:               id,
		Name:             args.Name,
		Category:         args.Category,
		Status:           StatusProposed,
		FundingTarget:    args.FundingTarget,
		ExpectedYieldPct: args.ExpectedYieldPct,
		Grade:            args.Grade,
		Deadline:         now + int64(args.DeadlineDays)*daySecs,
		Creator:          caller,
		CreatedAt:        now,
		Tx:               getTxID(),
	}
	saveInvestment(inv)
	moveStatusIndex(id, StatusUnspecified, StatusProposed)
	emitInvestmentCreated(id, AddressToString(caller), inv.FundingTarget)
	appendAudit(AddressToString(caller), "create", id, inv.FundingTarget)
	return id, nil
}

// fundInvestment promotes a proposal whose upvoted stake reached the target
// before the deadline ran out.
func fundInvestment(caller sdk.Address, investmentID uint64, now int64) error {
	if !authority.HasCapability(caller, RoleActivateInvestment) {
		return errUnauthorized("activate-investment capability required")
	}
	inv, err := loadInvestment(investmentID)
	if err != nil {
		return err
	}
	if inv.Status != StatusProposed {
		return errInvalidState("only proposed investments can be funded")
	}
	if inv.UpvotedAmount < inv.FundingTarget {
		return errInvalidState("funding target not met")
	}
	if now > inv.Deadline {
		return contractErr(symDeadlinePassed, "voting deadline already passed")
	}
	inv.Status = StatusFunded
	saveInvestment(inv)
	moveStatusIndex(investmentID, StatusProposed, StatusFunded)
	emitInvestmentFunded(investmentID, AddressToString(caller), inv.UpvotedAmount)
	appendAudit(AddressToString(caller), "fund", investmentID, inv.UpvotedAmount)
	return nil
}

// expireInvestment retires a proposal that missed its target. Only valid
// after the deadline, and only while the target is still unmet; staked
// amounts become withdrawable once the record lands in Expired.
func expireInvestment(caller sdk.Address, investmentID uint64, now int64) error {
	if !authority.HasCapability(caller, RoleActivateInvestment) {
		return errUnauthorized("activate-investment capability required")
	}
	inv, err := loadInvestment(investmentID)
	if err != nil {
		return err
	}
	if inv.Status != StatusProposed {
		return errInvalidState("only proposed investments can expire")
	}
	if inv.UpvotedAmount >= inv.FundingTarget {
		return errInvalidState("funding target was met, fund instead")
	}
	if now <= inv.Deadline {
		return contractErr(symDeadlineNotReached, "voting deadline not yet reached")
	}
	inv.Status = StatusExpired
	saveInvestment(inv)
	moveStatusIndex(investmentID, StatusProposed, StatusExpired)
	emitInvestmentExpired(investmentID, AddressToString(caller))
	appendAudit(AddressToString(caller), "expire", investmentID, 0)
	return nil
}

// extendDeadline pushes the voting window out for low-risk proposals.
// Grades C and D never extend, and each proposal extends at most three times.
func extendDeadline(caller sdk.Address, args *ExtendDeadlineArgs) error {
	if !authority.HasCapability(caller, RoleActivateInvestment) {
		return errUnauthorized("activate-investment capability required")
	}
	inv, err := loadInvestment(args.InvestmentID)
	if err != nil {
		return err
	}
	if inv.Status != StatusProposed {
		return errInvalidState("only proposed investments can extend their deadline")
	}
	if inv.Grade != GradeA && inv.Grade != GradeB {
		return errInvalidState("only grade A and B investments may extend")
	}
	if inv.ExtensionCount >= MaxExtensionCount {
		return errInvalidState("extension limit reached")
	}
	if args.ExtraDays < MinExtensionDays || args.ExtraDays > MaxExtensionDays {
		return errInvalidAmount("extension days out of range")
	}
	inv.Deadline += int64(args.ExtraDays) * daySecs
	inv.ExtensionCount++
	saveInvestment(inv)
	emitDeadlineExtended(args.InvestmentID, AddressToString(caller), inv.Deadline)
	appendAudit(AddressToString(caller), "extend", args.InvestmentID, 0)
	return nil
}

// closeInvestment finalizes a funded investment once every deposited unit of
// yield has left custody through claims or a sweep.
func closeInvestment(caller sdk.Address, investmentID uint64) error {
	if !authority.HasCapability(caller, RoleActivateInvestment) {
		return errUnauthorized("activate-investment capability required")
	}
	inv, err := loadInvestment(investmentID)
	if err != nil {
		return err
	}
	if inv.Status != StatusFunded {
		return errInvalidState("only funded investments can close")
	}
	if inv.YieldDistributed != inv.YieldGenerated {
		return errInvalidState("undistributed yield remains")
	}
	inv.Status = StatusClosed
	saveInvestment(inv)
	moveStatusIndex(investmentID, StatusFunded, StatusClosed)
	emitInvestmentClosed(investmentID, AddressToString(caller))
	appendAudit(AddressToString(caller), "close", investmentID, 0)
	return nil
}
