package contract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Investment Lifecycle Tests
// =============================================================================

// TestCreateInvestment checks the happy path plus the stored record fields.
func TestCreateInvestment(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)

	inv, err := loadInvestment(id)
	require.NoError(t, err)
	assert.Equal(t, "solar farm", inv.Name)
	assert.Equal(t, "energy", inv.Category)
	assert.Equal(t, StatusProposed, inv.Status)
	assert.Equal(t, FloatToAmount(10.0), inv.FundingTarget)
	assert.Equal(t, uint8(8), inv.ExpectedYieldPct)
	assert.Equal(t, GradeA, inv.Grade)
	assert.Equal(t, aliceAddress, AddressToString(inv.Creator))
	assert.Equal(t, inv.CreatedAt+30*daySecs, inv.Deadline)

	ids := getIDsFromIndex(statusIndexKey(StatusProposed))
	assert.Contains(t, ids, id)
}

// TestCreateInvestmentRequiresCapability rejects callers without the propose role.
func TestCreateInvestmentRequiresCapability(t *testing.T) {
	setupTest(t)
	mustRevert(t, bobAddress, InvestmentCreate, "plot|land|5.0|5|B|10", "unauthorized")
}

// TestCreateInvestmentValidation walks through the field bounds. Numeric
// violations answer invalid_amount, malformed text answers bad_payload.
func TestCreateInvestmentValidation(t *testing.T) {
	setupTest(t)
	mustRevert(t, aliceAddress, InvestmentCreate, "|land|5.0|5|B|10", "bad_payload")
	longName := strings.Repeat("x", 201)
	mustRevert(t, aliceAddress, InvestmentCreate, longName+"|land|5.0|5|B|10", "bad_payload")
	longCategory := strings.Repeat("y", 101)
	mustRevert(t, aliceAddress, InvestmentCreate, "plot|"+longCategory+"|5.0|5|B|10", "bad_payload")
	mustRevert(t, aliceAddress, InvestmentCreate, "plot|land|0|5|B|10", "invalid_amount")
	mustRevert(t, aliceAddress, InvestmentCreate, "plot|land|5.0|101|B|10", "invalid_amount")
	mustRevert(t, aliceAddress, InvestmentCreate, "plot|land|5.0|5|X|10", "bad_payload")
	mustRevert(t, aliceAddress, InvestmentCreate, "plot|land|5.0|5|B|0", "invalid_amount")
	mustRevert(t, aliceAddress, InvestmentCreate, "plot|land|5.0|5|B|400", "invalid_amount")
}

// TestFundInvestment covers the proposed->funded transition and its guards.
func TestFundInvestment(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)

	// target not met yet
	mustCall(t, aliceAddress, StakeCast, fmt.Sprintf("%d|6.0|up", id))
	mustRevert(t, ownerAddress, InvestmentFund, fmt.Sprintf("%d", id), "invalid_state")

	mustCall(t, bobAddress, StakeCast, fmt.Sprintf("%d|4.0|up", id))
	mustCall(t, ownerAddress, InvestmentFund, fmt.Sprintf("%d", id))

	inv, err := loadInvestment(id)
	require.NoError(t, err)
	assert.Equal(t, StatusFunded, inv.Status)
	assert.Contains(t, getIDsFromIndex(statusIndexKey(StatusFunded)), id)
	assert.NotContains(t, getIDsFromIndex(statusIndexKey(StatusProposed)), id)

	// funding twice is invalid
	mustRevert(t, ownerAddress, InvestmentFund, fmt.Sprintf("%d", id), "invalid_state")
}

// TestFundAfterDeadlineFails makes sure a met target cannot be activated late.
func TestFundAfterDeadlineFails(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)
	fundTestInvestmentStakes(t, id)

	callAs(ownerAddress, "2025-03-01T00:00:00")
	_, rerr := callExport(InvestmentFund, fmt.Sprintf("%d", id))
	require.NotNil(t, rerr)
	assert.Equal(t, "deadline_passed", rerr.Symbol)
}

// TestExpireInvestment exercises the failure exit of the proposed state.
func TestExpireInvestment(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)
	mustCall(t, aliceAddress, StakeCast, fmt.Sprintf("%d|6.0|up", id))

	// deadline not reached yet
	mustRevert(t, ownerAddress, InvestmentExpire, fmt.Sprintf("%d", id), "deadline_not_reached")

	callAs(ownerAddress, "2025-03-01T00:00:00")
	_, rerr := callExport(InvestmentExpire, fmt.Sprintf("%d", id))
	require.Nil(t, rerr)

	inv, err := loadInvestment(id)
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, inv.Status)
}

// TestExpireWithMetTargetFails: a pool that hit its target must fund, not expire.
func TestExpireWithMetTargetFails(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)
	fundTestInvestmentStakes(t, id)

	callAs(ownerAddress, "2025-03-01T00:00:00")
	_, rerr := callExport(InvestmentExpire, fmt.Sprintf("%d", id))
	require.NotNil(t, rerr)
	assert.Equal(t, "invalid_state", rerr.Symbol)
}

// TestExtendDeadline checks the grade gate and the extension cap.
func TestExtendDeadline(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t) // grade A

	before, err := loadInvestment(id)
	require.NoError(t, err)

	mustCall(t, ownerAddress, InvestmentExtend, fmt.Sprintf("%d|15", id))
	after, err := loadInvestment(id)
	require.NoError(t, err)
	assert.Equal(t, before.Deadline+15*daySecs, after.Deadline)
	assert.Equal(t, uint8(1), after.ExtensionCount)

	// out of range extension days
	mustRevert(t, ownerAddress, InvestmentExtend, fmt.Sprintf("%d|0", id), "invalid_amount")
	mustRevert(t, ownerAddress, InvestmentExtend, fmt.Sprintf("%d|91", id), "invalid_amount")

	// cap at three extensions
	mustCall(t, ownerAddress, InvestmentExtend, fmt.Sprintf("%d|15", id))
	mustCall(t, ownerAddress, InvestmentExtend, fmt.Sprintf("%d|15", id))
	mustRevert(t, ownerAddress, InvestmentExtend, fmt.Sprintf("%d|15", id), "invalid_state")
}

// TestExtendDeadlineGradeGate: grade C pools are stuck with their window.
func TestExtendDeadlineGradeGate(t *testing.T) {
	setupTest(t)
	mustCall(t, aliceAddress, InvestmentCreate, "risky mine|mining|10.0|20|C|30")
	id := getCount(InvestmentsCount)
	mustRevert(t, ownerAddress, InvestmentExtend, fmt.Sprintf("%d|15", id), "invalid_state")
}

// TestCloseInvestment requires full distribution before closing.
func TestCloseInvestment(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)
	fundTestInvestment(t, id)

	mustCall(t, carolAddress, YieldDeposit, fmt.Sprintf("%d|1.0|q1 report", id))
	mustRevert(t, ownerAddress, InvestmentClose, fmt.Sprintf("%d", id), "invalid_state")

	mustCall(t, aliceAddress, YieldClaim, fmt.Sprintf("%d", id))
	mustCall(t, bobAddress, YieldClaim, fmt.Sprintf("%d", id))
	mustCall(t, ownerAddress, InvestmentClose, fmt.Sprintf("%d", id))

	inv, err := loadInvestment(id)
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, inv.Status)

	// terminal states reject further transitions
	mustRevert(t, ownerAddress, InvestmentFund, fmt.Sprintf("%d", id), "invalid_state")
	mustRevert(t, ownerAddress, InvestmentClose, fmt.Sprintf("%d", id), "invalid_state")
}

// TestCloseWithoutYieldSucceeds: zero generated equals zero distributed.
func TestCloseWithoutYieldSucceeds(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)
	fundTestInvestment(t, id)
	mustCall(t, ownerAddress, InvestmentClose, fmt.Sprintf("%d", id))
}

// TestUnknownInvestmentID checks the not_found surface.
func TestUnknownInvestmentID(t *testing.T) {
	setupTest(t)
	mustRevert(t, ownerAddress, InvestmentFund, "999", "not_found")
	mustRevert(t, ownerAddress, InvestmentGet, "999", "not_found")
}

// TestPauseBlocksMutations flips the emergency stop and probes both sides.
func TestPauseBlocksMutations(t *testing.T) {
	setupTest(t)
	id := createTestInvestment(t)

	mustCall(t, ownerAddress, PauseSet, "true")
	mustRevert(t, aliceAddress, StakeCast, fmt.Sprintf("%d|1.0|up", id), "paused")
	mustRevert(t, aliceAddress, InvestmentCreate, "plot|land|5.0|5|B|10", "paused")

	// queries still answer while paused
	mustCall(t, aliceAddress, InvestmentGet, fmt.Sprintf("%d", id))

	// unpausing goes through the ungated entrypoint
	mustCall(t, ownerAddress, PauseSet, "false")
	mustCall(t, aliceAddress, StakeCast, fmt.Sprintf("%d|1.0|up", id))
}

// fundTestInvestmentStakes stakes the pool to target without activating it.
func fundTestInvestmentStakes(t *testing.T, id uint64) {
	t.Helper()
	mustCall(t, aliceAddress, StakeCast, fmt.Sprintf("%d|6.0|up", id))
	mustCall(t, bobAddress, StakeCast, fmt.Sprintf("%d|4.0|up", id))
}
