package contract

import (
	"fmt"
	"strconv"

	"coopvest_dao/sdk"
)

// formatAmount renders the scaled int as the human float used in log lines.
func formatAmount(v Amount) string {
	return strconv.FormatFloat(AmountToFloat(v), 'f', -1, 64)
}

// emitInvestmentCreated writes a tiny "ic" log so watchers catch new proposals
// without scanning full storage diffs.
func emitInvestmentCreated(investmentID uint64, creator string, target Amount) {
	sdk.Log(fmt.Sprintf(
		"ic|id:%d|by:%s|t:%s|ts:%d",
		investmentID,
		creator,
		formatAmount(target),
		nowUnix(),
	))
}

// emitInvestmentFunded signals the pool hit its target and entered deployment.
func emitInvestmentFunded(investmentID uint64, by string, upvoted Amount) {
	sdk.Log(fmt.Sprintf(
		"if|id:%d|by:%s|up:%s|ts:%d",
		investmentID,
		by,
		formatAmount(upvoted),
		nowUnix(),
	))
}

// emitInvestmentExpired marks a proposal that missed its window, freeing stakes.
func emitInvestmentExpired(investmentID uint64, by string) {
	sdk.Log(fmt.Sprintf(
		"ie|id:%d|by:%s|ts:%d",
		investmentID,
		by,
		nowUnix(),
	))
}

// emitDeadlineExtended records each grade-gated extension with the new deadline.
func emitDeadlineExtended(investmentID uint64, by string, newDeadline int64) {
	sdk.Log(fmt.Sprintf(
		"ix|id:%d|by:%s|dl:%s|ts:%d",
		investmentID,
		by,
		strconv.FormatInt(newDeadline, 10),
		nowUnix(),
	))
}

// emitInvestmentClosed is the terminal lifecycle ping.
func emitInvestmentClosed(investmentID uint64, by string) {
	sdk.Log(fmt.Sprintf(
		"il|id:%d|by:%s|ts:%d",
		investmentID,
		by,
		nowUnix(),
	))
}

// emitVoteCast includes direction plus staked amount so pool totals can be
// replayed from logs only.
func emitVoteCast(investmentID uint64, voter string, direction VoteDirection, amount Amount) {
	sdk.Log(fmt.Sprintf(
		"vc|id:%d|by:%s|d:%s|am:%s|ts:%d",
		investmentID,
		voter,
		direction.String(),
		formatAmount(amount),
		nowUnix(),
	))
}

// emitStakeWithdrawn traces refunds out of expired pools.
func emitStakeWithdrawn(investmentID uint64, to string, amount Amount) {
	sdk.Log(fmt.Sprintf(
		"sw|id:%d|to:%s|am:%s|ts:%d",
		investmentID,
		to,
		formatAmount(amount),
		nowUnix(),
	))
}

// emitYieldDeposited lets indexing bots track returns flowing into custody.
func emitYieldDeposited(investmentID uint64, by string, amount Amount) {
	sdk.Log(fmt.Sprintf(
		"yd|id:%d|by:%s|am:%s|ts:%d",
		investmentID,
		by,
		formatAmount(amount),
		nowUnix(),
	))
}

// emitYieldClaimed mirrors the deposit log for payouts to participants.
func emitYieldClaimed(investmentID uint64, to string, amount Amount) {
	sdk.Log(fmt.Sprintf(
		"yc|id:%d|to:%s|am:%s|ts:%d",
		investmentID,
		to,
		formatAmount(amount),
		nowUnix(),
	))
}

// emitYieldSwept records residue leaving custody after the grace period.
func emitYieldSwept(investmentID uint64, to string, amount Amount) {
	sdk.Log(fmt.Sprintf(
		"ys|id:%d|to:%s|am:%s|ts:%d",
		investmentID,
		to,
		formatAmount(amount),
		nowUnix(),
	))
}

// emitMemberChanged covers both activation and tombstoning via one bool char.
func emitMemberChanged(by string, addr string, active bool) {
	sdk.Log(fmt.Sprintf(
		"mb|by:%s|m:%s|a:%s",
		by,
		addr,
		strconv.FormatBool(active),
	))
}

// emitRoleChanged spells out grants and revokes so auditors can track
// sensitive capability flips.
func emitRoleChanged(by string, addr string, role string, granted bool) {
	sdk.Log(fmt.Sprintf(
		"rl|by:%s|m:%s|r:%s|g:%s",
		by,
		addr,
		role,
		strconv.FormatBool(granted),
	))
}

// emitPauseToggled signals the emergency stop changing position.
func emitPauseToggled(by string, paused bool) {
	sdk.Log(fmt.Sprintf(
		"pz|by:%s|p:%s",
		by,
		strconv.FormatBool(paused),
	))
}

// emitConsistencyViolation fires right before the hard abort so the broken
// invariant survives in the log.
func emitConsistencyViolation(detail string) {
	sdk.Log(fmt.Sprintf(
		"cv|d:%s",
		detail,
	))
}
