package contract

import (
	"strconv"

	"coopvest_dao/sdk"
)

// getCount reads a uint64 counter from state, defaulting to zero.
func getCount(key string) uint64 {
	ptr := sdk.StateGetObject(key)
	if ptr == nil || *ptr == "" {
		return 0
	}
	v, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		sdk.Abort("failed to parse counter " + key)
	}
	return v
}

func setCount(key string, value uint64) {
	sdk.StateSetObject(key, strconv.FormatUint(value, 10))
}

// nextInvestmentID increments the global investment counter and returns the
// fresh id. Ids start at 1 so zero stays the "missing" sentinel.
func nextInvestmentID() uint64 {
	id := getCount(InvestmentsCount) + 1
	setCount(InvestmentsCount, id)
	return id
}

// -----------------------------------------------------------------------------
// Locked-value accounting
//
// Two running totals mirror what the contract believes it custodies: pulled
// stake not yet returned, and deposited yield not yet paid out. Every pull
// adds before the ledger write, every push subtracts as part of the commit.
// A subtraction below zero means our books disagree with the ledger and the
// transaction is torn down hard.
// -----------------------------------------------------------------------------

func lockedAmount(key string) Amount {
	ptr := sdk.StateGetObject(key)
	if ptr == nil || *ptr == "" {
		return 0
	}
	v, err := strconv.ParseInt(*ptr, 10, 64)
	if err != nil {
		sdk.Abort("failed to parse locked total")
	}
	return Amount(v)
}

func setLockedAmount(key string, value Amount) {
	sdk.StateSetObject(key, strconv.FormatInt(int64(value), 10))
}

func lockedStake() Amount {
	return lockedAmount(lockedStakeKey())
}

func lockedYield() Amount {
	return lockedAmount(lockedYieldKey())
}

func addLockedStake(amount Amount) {
	setLockedAmount(lockedStakeKey(), lockedStake()+amount)
}

func subLockedStake(amount Amount) error {
	cur := lockedStake()
	if amount > cur {
		return errConsistency("stake release exceeds locked total")
	}
	setLockedAmount(lockedStakeKey(), cur-amount)
	return nil
}

func addLockedYield(amount Amount) {
	setLockedAmount(lockedYieldKey(), lockedYield()+amount)
}

func subLockedYield(amount Amount) error {
	cur := lockedYield()
	if amount > cur {
		return errConsistency("yield release exceeds locked total")
	}
	setLockedAmount(lockedYieldKey(), cur-amount)
	return nil
}
