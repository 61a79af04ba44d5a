package contract

import "coopvest_dao/sdk"

// packU64LEInline sprinkles a uint64 into dst in little-endian order so our keys stay compact.
func packU64LEInline(x uint64, dst []byte) {
	dst[0] = byte(x)
	dst[1] = byte(x >> 8)
	dst[2] = byte(x >> 16)
	dst[3] = byte(x >> 24)
	dst[4] = byte(x >> 32)
	dst[5] = byte(x >> 40)
	dst[6] = byte(x >> 48)
	dst[7] = byte(x >> 56)
}

// packU64LE appends the encoded number to dst and returns the new slice.
func packU64LE(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

// contractConfigKey is the singleton config slot.
func contractConfigKey() string {
	return string([]byte{kContractConfig})
}

// investmentKey builds a storage key string for an investment by ID.
func investmentKey(id uint64) string {
	var buf [9]byte
	buf[0] = kInvestment
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}

// stakeKey mixes investment id plus participant bytes so each (investment,
// participant) pair owns exactly one slot.
func stakeKey(investmentID uint64, addr sdk.Address) string {
	addrStr := AddressToString(addr)
	buf := make([]byte, 0, 1+8+len(addrStr))
	buf = append(buf, kStake)
	buf = packU64LE(investmentID, buf)
	buf = append(buf, addrStr...)
	return string(buf)
}

// yieldKey stores the per-investment distribution record next to its stakes.
func yieldKey(investmentID uint64) string {
	var buf [9]byte
	buf[0] = kYield
	packU64LEInline(investmentID, buf[1:])
	return string(buf[:])
}

// memberKey keeps registry entries keyed directly by address.
func memberKey(addr sdk.Address) string {
	addrStr := AddressToString(addr)
	buf := make([]byte, 0, 1+len(addrStr))
	buf = append(buf, kMember)
	buf = append(buf, addrStr...)
	return string(buf)
}

// roleKey flags one capability grant; value presence is the grant.
func roleKey(role Role, addr sdk.Address) string {
	addrStr := AddressToString(addr)
	buf := make([]byte, 0, 2+len(addrStr))
	buf = append(buf, kRole, byte(role))
	buf = append(buf, addrStr...)
	return string(buf)
}

// lockedStakeKey / lockedYieldKey are the global custody counters.
func lockedStakeKey() string {
	return string([]byte{kLockedStake})
}

func lockedYieldKey() string {
	return string([]byte{kLockedYield})
}

// auditEntryKey stores timeline lines sequentially.
func auditEntryKey(id uint64) string {
	var buf [9]byte
	buf[0] = kAuditEntry
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}
