package contract

import "coopvest_dao/sdk"

////////////////////////////////////////////////////////////////////////////////
// Contract State Persistence helpers
////////////////////////////////////////////////////////////////////////////////

// saveInvestment writes both storage and cache copy so repeated reads stay cheap.
func saveInvestment(inv *Investment) {
	sdk.StateSetObject(investmentKey(inv.ID), string(EncodeInvestment(inv)))
	if cachedInvestments != nil {
		cp := *inv
		cachedInvestments[inv.ID] = &cp
	}
}

// loadInvestment tries the per-tx cache first and decodes stored bytes when needed.
func loadInvestment(id uint64) (*Investment, error) {
	currentEnv()
	if cached, ok := cachedInvestments[id]; ok {
		cp := *cached
		return &cp, nil
	}
	ptr := sdk.StateGetObject(investmentKey(id))
	if ptr == nil || *ptr == "" {
		return nil, errNotFound("no investment with the given id")
	}
	inv, err := DecodeInvestment([]byte(*ptr))
	if err != nil {
		sdk.Abort("failed to decode investment")
	}
	cp := *inv
	cachedInvestments[id] = &cp
	return inv, nil
}

func saveStakeRecord(rec *StakeRecord) {
	sdk.StateSetObject(stakeKey(rec.InvestmentID, rec.Participant), string(EncodeStakeRecord(rec)))
}

func loadStakeRecord(investmentID uint64, addr sdk.Address) (*StakeRecord, bool) {
	ptr := sdk.StateGetObject(stakeKey(investmentID, addr))
	if ptr == nil || *ptr == "" {
		return nil, false
	}
	rec, err := DecodeStakeRecord([]byte(*ptr))
	if err != nil {
		sdk.Abort("failed to decode stake record")
	}
	return rec, true
}

func saveYieldRecord(rec *YieldRecord) {
	sdk.StateSetObject(yieldKey(rec.InvestmentID), string(EncodeYieldRecord(rec)))
}

// loadYieldRecord returns a zero record when no deposit happened yet, which
// keeps Remaining() at 0 and spares callers a nil check.
func loadYieldRecord(investmentID uint64) *YieldRecord {
	ptr := sdk.StateGetObject(yieldKey(investmentID))
	if ptr == nil || *ptr == "" {
		return &YieldRecord{InvestmentID: investmentID}
	}
	rec, err := DecodeYieldRecord([]byte(*ptr))
	if err != nil {
		sdk.Abort("failed to decode yield record")
	}
	return rec
}
