package contract

import (
	"math"

	"coopvest_dao/sdk"
)

type Amount int64

// FloatToAmount scales human floats by AmountScale and rounds to int64 so storage stays precise.
// Example payload: FloatToAmount(1.234)
func FloatToAmount(v float64) Amount {
	return Amount(math.Round(v * AmountScale))
}

// AmountToFloat converts back to float64 for reporting or events.
// Example payload: AmountToFloat(FloatToAmount(2.5))
func AmountToFloat(v Amount) float64 {
	return float64(v) / AmountScale
}

// AmountToInt64 exposes the raw scaled int64 for hive transfer calls.
// Example payload: AmountToInt64(FloatToAmount(3.14))
func AmountToInt64(v Amount) int64 {
	return int64(v)
}

// InvestmentStatus captures an investment proposal's lifecycle.
type InvestmentStatus uint8

const (
	StatusUnspecified InvestmentStatus = 0
	StatusProposed    InvestmentStatus = 1
	StatusFunded      InvestmentStatus = 2
	StatusClosed      InvestmentStatus = 3
	StatusExpired     InvestmentStatus = 4
)

// String prints the status as lower-case text for events and query responses.
// Example payload: StatusFunded.String()
func (s InvestmentStatus) String() string {
	switch s {
	case StatusProposed:
		return "proposed"
	case StatusFunded:
		return "funded"
	case StatusClosed:
		return "closed"
	case StatusExpired:
		return "expired"
	default:
		return "unspecified"
	}
}

// ParseInvestmentStatus maps the query filter string back onto the enum.
func ParseInvestmentStatus(s string) InvestmentStatus {
	switch s {
	case "proposed":
		return StatusProposed
	case "funded":
		return StatusFunded
	case "closed":
		return StatusClosed
	case "expired":
		return StatusExpired
	default:
		return StatusUnspecified
	}
}

// RiskGrade rates a proposal A (best) to D. Only A and B may extend deadlines.
type RiskGrade uint8

const (
	GradeUnspecified RiskGrade = 0
	GradeA           RiskGrade = 1
	GradeB           RiskGrade = 2
	GradeC           RiskGrade = 3
	GradeD           RiskGrade = 4
)

// String returns the single letter form used in payloads and events.
// Example payload: GradeB.String()
func (g RiskGrade) String() string {
	switch g {
	case GradeA:
		return "A"
	case GradeB:
		return "B"
	case GradeC:
		return "C"
	case GradeD:
		return "D"
	default:
		return "?"
	}
}

// ParseRiskGrade converts the payload letter to the enum, GradeUnspecified on junk.
func ParseRiskGrade(s string) RiskGrade {
	switch s {
	case "A", "a":
		return GradeA
	case "B", "b":
		return GradeB
	case "C", "c":
		return GradeC
	case "D", "d":
		return GradeD
	default:
		return GradeUnspecified
	}
}

// VoteDirection is the binary approve/reject signal on a stake record.
type VoteDirection uint8

const (
	DirectionUnspecified VoteDirection = 0
	DirectionUp          VoteDirection = 1
	DirectionDown        VoteDirection = 2
)

// String serializes the direction for events and views.
// Example payload: DirectionUp.String()
func (d VoteDirection) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "unspecified"
	}
}

// ParseVoteDirection reads "up"/"down" from a vote payload.
func ParseVoteDirection(s string) VoteDirection {
	switch s {
	case "up":
		return DirectionUp
	case "down":
		return DirectionDown
	default:
		return DirectionUnspecified
	}
}

// Investment is the shared entity of the lifecycle machine, the stake ledger
// and the yield engine. Records are never deleted; terminal states keep the
// full history readable.
type Investment struct {
	ID               uint64
	Name             string
	Category         string
	Status           InvestmentStatus
	FundingTarget    Amount
	ExpectedYieldPct uint8
	Grade            RiskGrade
	Deadline         int64
	UpvotedAmount    Amount
	DownvoteCount    uint64
	YieldGenerated   Amount
	YieldDistributed Amount
	ExtensionCount   uint8
	Creator          sdk.Address
	CreatedAt        int64
	Tx               string
}

// StakeRecord pins one participant's vote on one investment. Amount and
// direction are immutable after creation except for the single zeroing
// event on withdrawal. Claim rights attach to this record, not to
// membership status.
type StakeRecord struct {
	InvestmentID  uint64
	Participant   sdk.Address
	Amount        Amount
	Direction     VoteDirection
	Claimed       bool
	ClaimedAmount Amount
	CreatedAt     int64
}

// YieldRecord tracks the distribution accounting for one investment.
// Remaining is always Deposited-Distributed and only shrinks via a claim
// or a post-grace sweep.
type YieldRecord struct {
	InvestmentID  uint64
	Deposited     Amount
	Distributed   Amount
	LastDepositAt int64
	ReportRef     string
}

// Remaining returns the undistributed balance.
func (y *YieldRecord) Remaining() Amount {
	return y.Deposited - y.Distributed
}

// Member is a registry entry with a tombstone flag instead of array surgery,
// so deactivation never reorders anything.
type Member struct {
	Address       sdk.Address
	Active        bool
	JoinedAt      int64
	DeactivatedAt int64
}

type CreateInvestmentArgs struct {
	Name             string
	Category         string
	FundingTarget    Amount
	ExpectedYieldPct uint8
	Grade            RiskGrade
	DeadlineDays     uint64
}

type CastVoteArgs struct {
	InvestmentID uint64
	Amount       Amount
	Direction    VoteDirection
}

type DepositYieldArgs struct {
	InvestmentID uint64
	Amount       Amount
	ReportRef    string
}

type ExtendDeadlineArgs struct {
	InvestmentID uint64
	ExtraDays    uint64
}

type SweepArgs struct {
	InvestmentID uint64
	Recipient    sdk.Address
}

// AddressFromString converts a human string to the platform-specific address wrapper.
// Example payload: AddressFromString("hive:alice")
func AddressFromString(s string) sdk.Address { return sdk.Address(s) }

// AddressToString turns the wrapped type back into the underlying string.
// Example payload: AddressToString(AddressFromString("hive:bob"))
func AddressToString(a sdk.Address) string { return a.String() }

// AssetFromString wraps a ticker string so type checking keeps us honest.
// Example payload: AssetFromString("hbd")
func AssetFromString(s string) sdk.Asset { return sdk.Asset(s) }

// AssetToString unwraps the ticker string for logs or SDK calls.
// Example payload: AssetToString(AssetFromString("hbd"))
func AssetToString(a sdk.Asset) string { return a.String() }
