package contract

// -----------------------------------------------------------------------------
// Amount Scaling
// -----------------------------------------------------------------------------

// AmountScale defines the precision multiplier for converting floats to int64.
const AmountScale = 1000

// -----------------------------------------------------------------------------
// Validation Limits
// -----------------------------------------------------------------------------

const (
	// MaxNameLength limits the size of investment display names.
	MaxNameLength = 200
	// MaxCategoryLength limits the category tag.
	MaxCategoryLength = 100
	// MaxReportRefLength limits the off-chain expense report reference.
	MaxReportRefLength = 500

	// MinDeadlineDays / MaxDeadlineDays bound the voting window at creation.
	MinDeadlineDays = 1
	MaxDeadlineDays = 365

	// MinExtensionDays / MaxExtensionDays bound a single deadline extension.
	MinExtensionDays = 1
	MaxExtensionDays = 90
	// MaxExtensionCount caps how often one proposal may extend.
	MaxExtensionCount = 3

	// MaxYieldHintPct bounds the advisory expected-yield field.
	MaxYieldHintPct = 100

	// GracePeriodSecs is the fixed 90 day window after the last yield deposit
	// before unclaimed residue becomes sweepable.
	GracePeriodSecs = 90 * 24 * 60 * 60

	daySecs = 24 * 60 * 60
)

// -----------------------------------------------------------------------------
// Counter Keys
// -----------------------------------------------------------------------------

const (
	// InvestmentsCount holds an integer counter for investments (used for generating IDs).
	InvestmentsCount = "count:inv"
	// AuditCount holds an integer counter for audit timeline entries.
	AuditCount = "count:audit"
)

// -----------------------------------------------------------------------------
// Storage Key Prefixes
// -----------------------------------------------------------------------------

const (
	// kContractConfig stores the encoded ContractConfig singleton.
	kContractConfig byte = 0x01
	// kInvestment contains encoded Investment records.
	kInvestment byte = 0x02
	// kStake houses encoded StakeRecord structs keyed (investment, participant).
	kStake byte = 0x03
	// kYield stores the per-investment YieldRecord.
	kYield byte = 0x04
	// kMember holds registry entries with the active tombstone flag.
	kMember byte = 0x05
	// kRole flags a capability grant for (role, address).
	kRole byte = 0x06
	// kLockedStake is the global counter of staked custody not yet withdrawn.
	kLockedStake byte = 0x07
	// kLockedYield is the global counter of deposited yield not yet paid out.
	kLockedYield byte = 0x08
	// kAuditEntry stores one timeline line per sequential id.
	kAuditEntry byte = 0x09
)

// -----------------------------------------------------------------------------
// Index Keys
// -----------------------------------------------------------------------------

const (
	// maxChunkSize splits indexes into chunks to avoid oversized state values.
	maxChunkSize = 2500
	// idxInvestmentsByStatus + status string holds all investment ids in that status.
	idxInvestmentsByStatus = "inv:status:"
)
