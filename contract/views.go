package contract

import (
	"strconv"

	"github.com/CosmWasm/tinyjson"
	"github.com/CosmWasm/tinyjson/jwriter"

	"coopvest_dao/sdk"
)

// Query views are flattened read models of the stored records. They carry
// human floats instead of scaled ints and stringified enums so explorers can
// render them directly.

// writeFloat emits the float as a raw JSON literal. The tinyjson writer has
// no float method, so views format through strconv like the event lines do.
func writeFloat(w *jwriter.Writer, v float64) {
	w.RawString(strconv.FormatFloat(v, 'f', -1, 64))
}

type InvestmentView struct {
	ID               uint64
	Name             string
	Category         string
	Status           string
	FundingTarget    float64
	ExpectedYieldPct uint8
	Grade            string
	Deadline         int64
	UpvotedAmount    float64
	DownvoteCount    uint64
	YieldGenerated   float64
	YieldDistributed float64
	ExtensionCount   uint8
	Creator          string
	CreatedAt        int64
}

func newInvestmentView(inv *Investment) *InvestmentView {
	return &InvestmentView{
		ID:               inv.ID,
		Name:             inv.Name,
		Category:         inv.Category,
		Status:           inv.Status.String(),
		FundingTarget:    AmountToFloat(inv.FundingTarget),
		ExpectedYieldPct: inv.ExpectedYieldPct,
		Grade:            inv.Grade.String(),
		Deadline:         inv.Deadline,
		UpvotedAmount:    AmountToFloat(inv.UpvotedAmount),
		DownvoteCount:    inv.DownvoteCount,
		YieldGenerated:   AmountToFloat(inv.YieldGenerated),
		YieldDistributed: AmountToFloat(inv.YieldDistributed),
		ExtensionCount:   inv.ExtensionCount,
		Creator:          AddressToString(inv.Creator),
		CreatedAt:        inv.CreatedAt,
	}
}

// MarshalTinyJSON writes the view through the streaming writer.
func (v *InvestmentView) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"id":`)
	w.Uint64(v.ID)
	w.RawString(`,"name":`)
	w.String(v.Name)
	w.RawString(`,"category":`)
	w.String(v.Category)
	w.RawString(`,"status":`)
	w.String(v.Status)
	w.RawString(`,"funding_target":`)
	writeFloat(w, v.FundingTarget)
	w.RawString(`,"expected_yield_pct":`)
	w.Uint8(v.ExpectedYieldPct)
	w.RawString(`,"grade":`)
	w.String(v.Grade)
	w.RawString(`,"deadline":`)
	w.Int64(v.Deadline)
	w.RawString(`,"upvoted_amount":`)
	writeFloat(w, v.UpvotedAmount)
	w.RawString(`,"downvote_count":`)
	w.Uint64(v.DownvoteCount)
	w.RawString(`,"yield_generated":`)
	writeFloat(w, v.YieldGenerated)
	w.RawString(`,"yield_distributed":`)
	writeFloat(w, v.YieldDistributed)
	w.RawString(`,"extension_count":`)
	w.Uint8(v.ExtensionCount)
	w.RawString(`,"creator":`)
	w.String(v.Creator)
	w.RawString(`,"created_at":`)
	w.Int64(v.CreatedAt)
	w.RawByte('}')
}

type InvestmentListView struct {
	Status      string
	Investments []*InvestmentView
}

func (v *InvestmentListView) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"status":`)
	w.String(v.Status)
	w.RawString(`,"investments":[`)
	for i, inv := range v.Investments {
		if i > 0 {
			w.RawByte(',')
		}
		inv.MarshalTinyJSON(w)
	}
	w.RawString(`]}`)
}

type StakeView struct {
	InvestmentID  uint64
	Participant   string
	Amount        float64
	Direction     string
	Claimed       bool
	ClaimedAmount float64
	CreatedAt     int64
}

func newStakeView(rec *StakeRecord) *StakeView {
	return &StakeView{
		InvestmentID:  rec.InvestmentID,
		Participant:   AddressToString(rec.Participant),
		Amount:        AmountToFloat(rec.Amount),
		Direction:     rec.Direction.String(),
		Claimed:       rec.Claimed,
		ClaimedAmount: AmountToFloat(rec.ClaimedAmount),
		CreatedAt:     rec.CreatedAt,
	}
}

func (v *StakeView) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"investment_id":`)
	w.Uint64(v.InvestmentID)
	w.RawString(`,"participant":`)
	w.String(v.Participant)
	w.RawString(`,"amount":`)
	writeFloat(w, v.Amount)
	w.RawString(`,"direction":`)
	w.String(v.Direction)
	w.RawString(`,"claimed":`)
	w.Bool(v.Claimed)
	w.RawString(`,"claimed_amount":`)
	writeFloat(w, v.ClaimedAmount)
	w.RawString(`,"created_at":`)
	w.Int64(v.CreatedAt)
	w.RawByte('}')
}

type ClaimableView struct {
	InvestmentID uint64
	Participant  string
	Claimable    float64
	Claimed      bool
}

func (v *ClaimableView) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"investment_id":`)
	w.Uint64(v.InvestmentID)
	w.RawString(`,"participant":`)
	w.String(v.Participant)
	w.RawString(`,"claimable":`)
	writeFloat(w, v.Claimable)
	w.RawString(`,"claimed":`)
	w.Bool(v.Claimed)
	w.RawByte('}')
}

// SnapshotView bundles the investment with its distribution accounting for
// one-call dashboards.
type SnapshotView struct {
	Investment     *InvestmentView
	YieldDeposited float64
	YieldRemaining float64
	LastDepositAt  int64
	ReportRef      string
	LockedStake    float64
	LockedYield    float64
}

func (v *SnapshotView) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"investment":`)
	v.Investment.MarshalTinyJSON(w)
	w.RawString(`,"yield_deposited":`)
	writeFloat(w, v.YieldDeposited)
	w.RawString(`,"yield_remaining":`)
	writeFloat(w, v.YieldRemaining)
	w.RawString(`,"last_deposit_at":`)
	w.Int64(v.LastDepositAt)
	w.RawString(`,"report_ref":`)
	w.String(v.ReportRef)
	w.RawString(`,"locked_stake":`)
	writeFloat(w, v.LockedStake)
	w.RawString(`,"locked_yield":`)
	writeFloat(w, v.LockedYield)
	w.RawByte('}')
}

type AuditListView struct {
	Total   uint64
	Entries []string
}

func (v *AuditListView) MarshalTinyJSON(w *jwriter.Writer) {
	w.RawByte('{')
	w.RawString(`"total":`)
	w.Uint64(v.Total)
	w.RawString(`,"entries":[`)
	for i, line := range v.Entries {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(line)
	}
	w.RawString(`]}`)
}

// marshalView serializes any view and aborts on writer errors, which only
// happen on a broken view type.
func marshalView(v tinyjson.Marshaler) string {
	b, err := tinyjson.Marshal(v)
	if err != nil {
		sdk.Abort("failed to serialize query response")
	}
	return string(b)
}

// yieldClaimable is the read-only twin of claimYield. It reports the would-be
// payout without touching state.
func yieldClaimable(investmentID uint64, addr sdk.Address) (*ClaimableView, error) {
	inv, err := loadInvestment(investmentID)
	if err != nil {
		return nil, err
	}
	view := &ClaimableView{
		InvestmentID: investmentID,
		Participant:  AddressToString(addr),
	}
	rec, ok := loadStakeRecord(investmentID, addr)
	if !ok || rec.Direction != DirectionUp {
		return view, nil
	}
	view.Claimed = rec.Claimed
	if inv.Status != StatusFunded || rec.Claimed {
		return view, nil
	}
	undistributed := inv.YieldGenerated - inv.YieldDistributed
	if undistributed <= 0 {
		return view, nil
	}
	entitlement, err := claimEntitlement(inv, rec)
	if err != nil {
		return nil, err
	}
	if entitlement > undistributed {
		entitlement = undistributed
	}
	view.Claimable = AmountToFloat(entitlement)
	return view, nil
}
