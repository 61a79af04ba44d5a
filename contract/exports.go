package contract

import (
	"strings"

	"coopvest_dao/sdk"
)

// Host entrypoints. Every export follows the same shape: take the entry
// latch, gate on the pause flag for mutators, decode the payload, run the
// internal operation and translate its error onto the revert surface.

//go:wasmexport contract_init
func ContractInit(payload *string) *string {
	guardEnter()
	defer guardExit()
	if isContractInitialized() {
		sdk.Abort("contract already initialized")
	}
	asset := strings.TrimSpace(unwrapPayload(payload, "asset payload missing"))
	if !isValidAsset(asset) {
		sdk.Revert("unsupported treasury asset", symBadPayload)
	}
	saveContractConfig(&ContractConfig{
		Owner: getSenderAddress(),
		Asset: AssetFromString(asset),
	})
	return strptr("ok")
}

//go:wasmexport investment_create
func InvestmentCreate(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	args := decodeCreateInvestmentArgs(payload)
	id, err := createInvestment(getSenderAddress(), args, nowUnix())
	revertOnError(err)
	return strptr(marshalView(newInvestmentViewByID(id)))
}

//go:wasmexport investment_fund
func InvestmentFund(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	id := decodeInvestmentIDPayload(payload)
	revertOnError(fundInvestment(getSenderAddress(), id, nowUnix()))
	return strptr("ok")
}

//go:wasmexport investment_expire
func InvestmentExpire(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	id := decodeInvestmentIDPayload(payload)
	revertOnError(expireInvestment(getSenderAddress(), id, nowUnix()))
	return strptr("ok")
}

//go:wasmexport investment_extend
func InvestmentExtend(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	args := decodeExtendDeadlineArgs(payload)
	revertOnError(extendDeadline(getSenderAddress(), args))
	return strptr("ok")
}

//go:wasmexport investment_close
func InvestmentClose(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	id := decodeInvestmentIDPayload(payload)
	revertOnError(closeInvestment(getSenderAddress(), id))
	return strptr("ok")
}

//go:wasmexport stake_cast
func StakeCast(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	args := decodeCastVoteArgs(payload)
	revertOnError(castVote(getSenderAddress(), args, nowUnix()))
	return strptr("ok")
}

//go:wasmexport stake_withdraw
func StakeWithdraw(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	id := decodeInvestmentIDPayload(payload)
	revertOnError(withdrawStake(getSenderAddress(), id))
	return strptr("ok")
}

//go:wasmexport yield_deposit
func YieldDeposit(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	args := decodeDepositYieldArgs(payload)
	revertOnError(depositYield(getSenderAddress(), args, nowUnix()))
	return strptr("ok")
}

//go:wasmexport yield_claim
func YieldClaim(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	id := decodeInvestmentIDPayload(payload)
	paid, err := claimYield(getSenderAddress(), id)
	revertOnError(err)
	return strptr(formatAmount(paid))
}

//go:wasmexport yield_sweep
func YieldSweep(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	args := decodeSweepArgs(payload)
	swept, err := sweepUnclaimed(getSenderAddress(), args, nowUnix())
	revertOnError(err)
	return strptr(formatAmount(swept))
}

//go:wasmexport member_add
func MemberAdd(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	addr := decodeAddressPayload(payload)
	revertOnError(addMember(getSenderAddress(), addr, nowUnix()))
	return strptr("ok")
}

//go:wasmexport member_remove
func MemberRemove(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	addr := decodeAddressPayload(payload)
	revertOnError(removeMember(getSenderAddress(), addr, nowUnix()))
	return strptr("ok")
}

//go:wasmexport role_grant
func RoleGrant(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	addr, role := decodeRoleArgs(payload)
	revertOnError(grantRole(getSenderAddress(), addr, role))
	return strptr("ok")
}

//go:wasmexport role_revoke
func RoleRevoke(payload *string) *string {
	guardEnter()
	defer guardExit()
	requireActive()
	addr, role := decodeRoleArgs(payload)
	revertOnError(revokeRole(getSenderAddress(), addr, role))
	return strptr("ok")
}

// PauseSet bypasses requireActive so the switch can also be flipped back off.
//
//go:wasmexport pause_set
func PauseSet(payload *string) *string {
	guardEnter()
	defer guardExit()
	raw := unwrapPayload(payload, "pause payload missing")
	revertOnError(setPaused(getSenderAddress(), parseBoolField(raw)))
	return strptr("ok")
}

// -----------------------------------------------------------------------------
// Queries
// -----------------------------------------------------------------------------

//go:wasmexport investment_get
func InvestmentGet(payload *string) *string {
	guardEnter()
	defer guardExit()
	id := decodeInvestmentIDPayload(payload)
	inv, err := loadInvestment(id)
	revertOnError(err)
	return strptr(marshalView(newInvestmentView(inv)))
}

//go:wasmexport investment_list
func InvestmentList(payload *string) *string {
	guardEnter()
	defer guardExit()
	raw := unwrapPayload(payload, "status filter missing")
	status := ParseInvestmentStatus(strings.TrimSpace(raw))
	if status == StatusUnspecified {
		sdk.Revert("unknown status filter", symBadPayload)
	}
	ids := getIDsFromIndex(statusIndexKey(status))
	views := make([]*InvestmentView, 0, len(ids))
	for _, id := range ids {
		if inv, err := loadInvestment(id); err == nil {
			views = append(views, newInvestmentView(inv))
		}
	}
	return strptr(marshalView(&InvestmentListView{
		Status:      status.String(),
		Investments: views,
	}))
}

//go:wasmexport stake_get
func StakeGet(payload *string) *string {
	guardEnter()
	defer guardExit()
	id, addr := decodeStakeQueryArgs(payload)
	rec, ok := loadStakeRecord(id, addr)
	if !ok {
		sdk.Revert("no stake record for participant", symNotFound)
	}
	return strptr(marshalView(newStakeView(rec)))
}

//go:wasmexport yield_claimable
func YieldClaimable(payload *string) *string {
	guardEnter()
	defer guardExit()
	id, addr := decodeStakeQueryArgs(payload)
	view, err := yieldClaimable(id, addr)
	revertOnError(err)
	return strptr(marshalView(view))
}

//go:wasmexport investment_snapshot
func InvestmentSnapshot(payload *string) *string {
	guardEnter()
	defer guardExit()
	id := decodeInvestmentIDPayload(payload)
	inv, err := loadInvestment(id)
	revertOnError(err)
	yrec := loadYieldRecord(id)
	return strptr(marshalView(&SnapshotView{
		Investment:     newInvestmentView(inv),
		YieldDeposited: AmountToFloat(yrec.Deposited),
		YieldRemaining: AmountToFloat(yrec.Remaining()),
		LastDepositAt:  yrec.LastDepositAt,
		ReportRef:      yrec.ReportRef,
		LockedStake:    AmountToFloat(lockedStake()),
		LockedYield:    AmountToFloat(lockedYield()),
	}))
}

//go:wasmexport audit_list
func AuditList(payload *string) *string {
	guardEnter()
	defer guardExit()
	start, count := decodePagePayload(payload)
	if count == 0 {
		count = 50
	}
	return strptr(marshalView(&AuditListView{
		Total:   getCount(AuditCount),
		Entries: listAudit(start, count),
	}))
}

// newInvestmentViewByID is a small convenience for the create response.
func newInvestmentViewByID(id uint64) *InvestmentView {
	inv, err := loadInvestment(id)
	if err != nil {
		sdk.Abort("freshly created investment missing")
	}
	return newInvestmentView(inv)
}
