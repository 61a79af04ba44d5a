package contract

import (
	"errors"

	"coopvest_dao/sdk"
)

// The core treats the treasury asset, the membership registry and the role
// registry as injected capabilities. Operations only see these interfaces;
// the defaults are backed by the host ledger and contract state, and tests
// swap in misbehaving implementations.

// Treasury moves the custodial asset between participants and the contract.
// Both directions are failable and a failure aborts the whole operation.
type Treasury interface {
	// Pull draws amount from the calling participant into contract custody.
	Pull(from sdk.Address, amount Amount) error
	// Push pays amount out of contract custody to the recipient. Control may
	// transiently leave the contract here, so callers commit ledger state
	// first and hold the entry latch for the duration.
	Push(to sdk.Address, amount Amount) error
}

// MembershipOracle answers the verified-member check consumed by castVote.
type MembershipOracle interface {
	IsVerifiedMember(addr sdk.Address) bool
}

// AuthOracle answers per-operation capability checks against mutable role
// sets, queried fresh on every call so grants take effect without redeploy.
type AuthOracle interface {
	HasCapability(addr sdk.Address, role Role) bool
}

var (
	treasury   Treasury         = hiveTreasury{}
	membership MembershipOracle = registryMembership{}
	authority  AuthOracle       = registryAuth{}
)

// hiveTreasury backs custody movements with the hive ledger host calls.
type hiveTreasury struct{}

// Pull draws within the caller's transfer.allow intent: the draw fails when
// no intent is attached, the token differs from the custody asset, or the
// granted limit is below the requested amount. The host always draws from
// the tx sender, so the from parameter is documentation here.
func (hiveTreasury) Pull(from sdk.Address, amount Amount) error {
	ta := getFirstTransferAllow()
	if ta == nil {
		return errors.New("no transfer.allow intent attached")
	}
	if ta.Token != treasuryAsset() {
		return errors.New("intent token does not match the custody asset")
	}
	if FloatToAmount(ta.Limit) < amount {
		return errors.New("intent limit below the requested amount")
	}
	return sdk.HiveDraw(AmountToInt64(amount), treasuryAsset())
}

func (hiveTreasury) Push(to sdk.Address, amount Amount) error {
	return sdk.HiveTransfer(to, AmountToInt64(amount), treasuryAsset())
}

// registryMembership reads the keyed member registry in contract state.
type registryMembership struct{}

func (registryMembership) IsVerifiedMember(addr sdk.Address) bool {
	m, ok := loadMember(addr)
	return ok && m.Active
}

// registryAuth reads role grants; the contract owner holds every capability.
type registryAuth struct{}

func (registryAuth) HasCapability(addr sdk.Address, role Role) bool {
	cfg := loadContractConfig()
	if cfg != nil && cfg.Owner == addr {
		return true
	}
	return hasRoleGrant(role, addr)
}
