package contract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"coopvest_dao/sdk"
)

const (
	ownerAddress    = "hive:owner"
	aliceAddress    = "hive:alice"
	bobAddress      = "hive:bob"
	carolAddress    = "hive:carol"
	outsiderAddress = "hive:outsider"

	defaultTimestamp = "2025-01-01T00:00:00"
)

var testTxCounter int

// setupTest wipes the mock host, initializes the contract with hbd custody
// and bootstraps the usual cast: owner with every capability, carol as the
// finance operator, alice and bob as verified members with funded wallets.
func setupTest(t *testing.T) {
	t.Helper()
	sdk.MockReset()
	entered = false
	cachedEnvLoaded = false
	testTxCounter = 0

	callAs(ownerAddress, defaultTimestamp)
	_, rerr := callExport(ContractInit, "hbd")
	require.Nil(t, rerr, "contract init must succeed")

	mustCall(t, ownerAddress, MemberAdd, aliceAddress)
	mustCall(t, ownerAddress, MemberAdd, bobAddress)
	mustCall(t, ownerAddress, RoleGrant, aliceAddress+"|propose-investment")
	mustCall(t, ownerAddress, RoleGrant, carolAddress+"|manage-finance")

	for _, addr := range []string{aliceAddress, bobAddress, carolAddress, outsiderAddress} {
		sdk.MockSetBalance(sdk.Address(addr), sdk.AssetHbd, 200_000)
	}
}

// callAs switches the active sender and bumps the tx id so per-tx caches
// refresh, optionally moving the block clock. Every call carries a generous
// transfer.allow grant; tests probing the intent gate override it afterwards.
func callAs(addr string, timestamp string) {
	testTxCounter++
	if timestamp != "" {
		sdk.MockSetTimestamp(timestamp)
	}
	sdk.MockSetSender(sdk.Address(addr), fmt.Sprintf("tx-%d", testTxCounter))
	sdk.MockSetIntents(transferAllowIntent("hbd", "1000.000"))
}

// transferAllowIntent builds the transfer.allow grant attached to a call.
func transferAllowIntent(token string, limit string) []sdk.Intent {
	return []sdk.Intent{{
		Type: "transfer.allow",
		Args: map[string]string{"token": token, "limit": limit},
	}}
}

// callExport invokes an entrypoint and converts a revert panic back into a
// value the test can assert on. Abort panics are not recovered: a tripped
// consistency check should fail the test loudly.
func callExport(fn func(*string) *string, payload string) (response string, rerr *sdk.RevertError) {
	defer func() {
		if r := recover(); r != nil {
			if re, ok := r.(*sdk.RevertError); ok {
				rerr = re
				return
			}
			panic(r)
		}
	}()
	resp := fn(&payload)
	if resp != nil {
		response = *resp
	}
	return
}

// mustCall runs an export as the given sender and requires success.
func mustCall(t *testing.T, addr string, fn func(*string) *string, payload string) string {
	t.Helper()
	callAs(addr, "")
	resp, rerr := callExport(fn, payload)
	require.Nil(t, rerr, "call expected to succeed")
	return resp
}

// mustRevert runs an export and requires the given failure symbol.
func mustRevert(t *testing.T, addr string, fn func(*string) *string, payload string, symbol string) *sdk.RevertError {
	t.Helper()
	callAs(addr, "")
	_, rerr := callExport(fn, payload)
	require.NotNil(t, rerr, "call expected to revert")
	require.Equal(t, symbol, rerr.Symbol)
	return rerr
}

// createTestInvestment files a default proposal as alice and returns its id.
// Target 10.000 hbd, grade A, 30 day window.
func createTestInvestment(t *testing.T) uint64 {
	t.Helper()
	mustCall(t, aliceAddress, InvestmentCreate, "solar farm|energy|10.0|8|A|30")
	return getCount(InvestmentsCount)
}

// fundTestInvestment votes the pool to its target and flips it to funded.
func fundTestInvestment(t *testing.T, id uint64) {
	t.Helper()
	mustCall(t, aliceAddress, StakeCast, fmt.Sprintf("%d|6.0|up", id))
	mustCall(t, bobAddress, StakeCast, fmt.Sprintf("%d|4.0|up", id))
	mustCall(t, ownerAddress, InvestmentFund, fmt.Sprintf("%d", id))
}

// balanceOf reads the mock ledger in scaled units.
func balanceOf(addr string) int64 {
	return sdk.GetBalance(sdk.Address(addr), sdk.AssetHbd)
}
