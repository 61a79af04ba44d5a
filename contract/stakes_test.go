package contract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopvest_dao/sdk"
)

// =============================================================================
// Stake Ledger Tests
// =============================================================================

// TestCastUpvoteMovesCustody verifies the pull-then-credit ordering and totals.
func TestCastUpvoteMovesCustody(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)

	before := balanceOf(aliceAddress)
	mustCall(t, aliceAddress, StakeCast, fmt.Sprintf("%d|6.0|up", id))

	assert.Equal(t, before-6000, balanceOf(aliceAddress))
	assert.Equal(t, int64(6000), sdk.MockCustodyBalance())
	assert.Equal(t, FloatToAmount(6.0), lockedStake())

	rec, ok := loadStakeRecord(id, sdk.Address(aliceAddress))
	require.True(t, ok)
	assert.Equal(t, FloatToAmount(6.0), rec.Amount)
	assert.Equal(t, DirectionUp, rec.Direction)
	assert.False(t, rec.Claimed)

	inv, err := loadInvestment(id)
	require.NoError(t, err)
	assert.Equal(t, FloatToAmount(6.0), inv.UpvotedAmount)
}

// TestCastDownvoteIsFree records the signal without touching any balance.
func TestCastDownvoteIsFree(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)

	before := balanceOf(bobAddress)
	mustCall(t, bobAddress, StakeCast, fmt.Sprintf("%d||down", id))

	assert.Equal(t, before, balanceOf(bobAddress))
	assert.Equal(t, int64(0), sdk.MockCustodyBalance())

	rec, ok := loadStakeRecord(id, sdk.Address(bobAddress))
	require.True(t, ok)
	assert.Equal(t, Amount(0), rec.Amount)
	assert.Equal(t, DirectionDown, rec.Direction)

	inv, err := loadInvestment(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), inv.DownvoteCount)
	assert.Equal(t, Amount(0), inv.UpvotedAmount)
}

// TestDuplicateVoteRejected: one record per participant, regardless of direction.
func TestDuplicateVoteRejected(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)

	mustCall(t, aliceAddress, StakeCast, fmt.Sprintf("%d|2.0|up", id))
	mustRevert(t, aliceAddress, StakeCast, fmt.Sprintf("%d|1.0|up", id), "duplicate_vote")
	mustRevert(t, aliceAddress, StakeCast, fmt.Sprintf("%d||down", id), "duplicate_vote")
}

// TestVoteValidation covers membership, state, deadline and amount rules.
func TestVoteValidation(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)

	mustRevert(t, outsiderAddress, StakeCast, fmt.Sprintf("%d|1.0|up", id), "unauthorized")
	mustRevert(t, aliceAddress, StakeCast, fmt.Sprintf("%d|0|up", id), "invalid_amount")
	mustRevert(t, aliceAddress, StakeCast, fmt.Sprintf("%d|1.0|down", id), "invalid_amount")

	// past the deadline
	callAs(aliceAddress, "2025-03-01T00:00:00")
	_, rerr := callExport(StakeCast, fmt.Sprintf("%d|1.0|up", id))
	require.NotNil(t, rerr)
	assert.Equal(t, "deadline_passed", rerr.Symbol)

	// voting on a funded pool
	callAs(aliceAddress, defaultTimestamp)
	id2 := createTestInvestment(t)
	fundTestInvestment(t, id2)
	mustRevert(t, aliceAddress, StakeCast, fmt.Sprintf("%d|1.0|up", id2), "invalid_state")
	mustRevert(t, carolAddress, StakeCast, fmt.Sprintf("%d|1.0|up", id2), "unauthorized")
	mustCall(t, ownerAddress, MemberAdd, carolAddress)
	mustRevert(t, carolAddress, StakeCast, fmt.Sprintf("%d|1.0|up", id2), "invalid_state")
}

// TestStakeRequiresTransferIntent: every draw runs inside the caller's
// transfer.allow grant.
func TestStakeRequiresTransferIntent(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)

	// no grant attached
	callAs(aliceAddress, "")
	sdk.MockSetIntents(nil)
	_, rerr := callExport(StakeCast, fmt.Sprintf("%d|1.0|up", id))
	require.NotNil(t, rerr)
	assert.Equal(t, "transfer_failed", rerr.Symbol)

	// grant on the wrong token
	callAs(aliceAddress, "")
	sdk.MockSetIntents(transferAllowIntent("hive", "10.000"))
	_, rerr = callExport(StakeCast, fmt.Sprintf("%d|1.0|up", id))
	require.NotNil(t, rerr)
	assert.Equal(t, "transfer_failed", rerr.Symbol)

	// grant below the stake
	callAs(aliceAddress, "")
	sdk.MockSetIntents(transferAllowIntent("hbd", "0.500"))
	_, rerr = callExport(StakeCast, fmt.Sprintf("%d|1.0|up", id))
	require.NotNil(t, rerr)
	assert.Equal(t, "transfer_failed", rerr.Symbol)

	// nothing was credited along the way
	assert.Equal(t, int64(0), sdk.MockCustodyBalance())
	assert.Equal(t, Amount(0), lockedStake())

	// a sufficient grant draws through
	mustCall(t, aliceAddress, StakeCast, fmt.Sprintf("%d|1.0|up", id))
	assert.Equal(t, int64(1000), sdk.MockCustodyBalance())
}

// TestFailedDrawLeavesNoRecord: inbound failure must not credit anything.
func TestFailedDrawLeavesNoRecord(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)

	sdk.MockFailNextDraw(true)
	mustRevert(t, aliceAddress, StakeCast, fmt.Sprintf("%d|6.0|up", id), "transfer_failed")
	sdk.MockFailNextDraw(false)

	_, ok := loadStakeRecord(id, sdk.Address(aliceAddress))
	assert.False(t, ok, "no stake record may exist after a failed draw")
	inv, err := loadInvestment(id)
	require.NoError(t, err)
	assert.Equal(t, Amount(0), inv.UpvotedAmount)
	assert.Equal(t, Amount(0), lockedStake())
}

// TestWithdrawStakeFromExpired refunds the full stake exactly once.
func TestWithdrawStakeFromExpired(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)
	mustCall(t, aliceAddress, StakeCast, fmt.Sprintf("%d|6.0|up", id))
	mustCall(t, bobAddress, StakeCast, fmt.Sprintf("%d||down", id))

	// withdrawal gated on the expired state
	mustRevert(t, aliceAddress, StakeWithdraw, fmt.Sprintf("%d", id), "invalid_state")

	callAs(ownerAddress, "2025-03-01T00:00:00")
	_, rerr := callExport(InvestmentExpire, fmt.Sprintf("%d", id))
	require.Nil(t, rerr)

	before := balanceOf(aliceAddress)
	mustCall(t, aliceAddress, StakeWithdraw, fmt.Sprintf("%d", id))
	assert.Equal(t, before+6000, balanceOf(aliceAddress))
	assert.Equal(t, int64(0), sdk.MockCustodyBalance())
	assert.Equal(t, Amount(0), lockedStake())

	// second withdrawal finds nothing
	mustRevert(t, aliceAddress, StakeWithdraw, fmt.Sprintf("%d", id), "nothing_to_withdraw")
	// down-voters have nothing staked
	mustRevert(t, bobAddress, StakeWithdraw, fmt.Sprintf("%d", id), "nothing_to_withdraw")
	// strangers without a record
	mustRevert(t, outsiderAddress, StakeWithdraw, fmt.Sprintf("%d", id), "nothing_to_withdraw")
}

// TestStakeGetQuery returns the ledger entry as a view.
func TestStakeGetQuery(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)
	mustCall(t, aliceAddress, StakeCast, fmt.Sprintf("%d|2.5|up", id))

	resp := mustCall(t, aliceAddress, StakeGet, fmt.Sprintf("%d|%s", id, aliceAddress))
	assert.Contains(t, resp, `"amount":2.5`)
	assert.Contains(t, resp, `"direction":"up"`)

	mustRevert(t, aliceAddress, StakeGet, fmt.Sprintf("%d|%s", id, outsiderAddress), "not_found")
}
