package contract

import (
	"fmt"
	"strconv"
	"strings"

	"coopvest_dao/sdk"
)

// unwrapPayload trims quotes and whitespace, aborting if the payload is empty.
func unwrapPayload(payload *string, errMsg string) string {
	if payload == nil {
		sdk.Abort(errMsg)
	}
	raw := strings.TrimSpace(*payload)
	if raw == "" {
		sdk.Abort(errMsg)
	}
	if len(raw) >= 2 {
		first := raw[0]
		last := raw[len(raw)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			if unquoted, err := strconv.Unquote(raw); err == nil {
				return unquoted
			}
			raw = strings.TrimSpace(raw[1 : len(raw)-1])
			if raw == "" {
				sdk.Abort(errMsg)
			}
		}
	}
	return raw
}

// parseUintField is used for ids, day counts and paging offsets.
func parseUintField(val string, field string) uint64 {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	n, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		sdk.Abort(fmt.Sprintf("invalid %s", field))
	}
	return n
}

// parseAmountField reads a human float and scales it to the ledger precision.
func parseAmountField(val string, field string) Amount {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		sdk.Abort(fmt.Sprintf("invalid %s", field))
	}
	return FloatToAmount(f)
}

// parseBoolField accepts a couple of truthy keywords, defaulting to false for unknown text.
func parseBoolField(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// decodeCreateInvestmentArgs unpacks the pipe-delimited payload used for
// investment_create calls: name|category|target|yieldHint|grade|days.
func decodeCreateInvestmentArgs(payload *string) *CreateInvestmentArgs {
	raw := unwrapPayload(payload, "investment payload missing")
	parts := strings.Split(raw, "|")
	get := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	hint := parseUintField(get(3), "expected yield hint")
	if hint > 255 {
		sdk.Abort("invalid expected yield hint")
	}
	return &CreateInvestmentArgs{
		Name:             strings.TrimSpace(get(0)),
		Category:         strings.TrimSpace(get(1)),
		FundingTarget:    parseAmountField(get(2), "funding target"),
		ExpectedYieldPct: uint8(hint),
		Grade:            ParseRiskGrade(strings.TrimSpace(get(4))),
		DeadlineDays:     parseUintField(get(5), "deadline days"),
	}
}

// decodeInvestmentIDPayload reads a bare investment id used by the fund,
// expire, close, withdraw and claim calls.
func decodeInvestmentIDPayload(payload *string) uint64 {
	raw := unwrapPayload(payload, "investment id missing")
	return parseUintField(raw, "investment id")
}

// decodeExtendDeadlineArgs expects `investmentId|extraDays`.
func decodeExtendDeadlineArgs(payload *string) *ExtendDeadlineArgs {
	raw := unwrapPayload(payload, "extend payload missing")
	parts := strings.Split(raw, "|")
	if len(parts) < 2 {
		sdk.Abort("extend payload requires investmentId|extraDays")
	}
	return &ExtendDeadlineArgs{
		InvestmentID: parseUintField(parts[0], "investment id"),
		ExtraDays:    parseUintField(parts[1], "extension days"),
	}
}

// decodeCastVoteArgs expects `investmentId|amount|direction`. Down-votes may
// leave the amount column empty.
func decodeCastVoteArgs(payload *string) *CastVoteArgs {
	raw := unwrapPayload(payload, "vote payload missing")
	parts := strings.Split(raw, "|")
	if len(parts) < 3 {
		sdk.Abort("vote payload requires investmentId|amount|direction")
	}
	direction := ParseVoteDirection(strings.TrimSpace(parts[2]))
	if direction == DirectionUnspecified {
		sdk.Abort("invalid vote direction")
	}
	return &CastVoteArgs{
		InvestmentID: parseUintField(parts[0], "investment id"),
		Amount:       parseAmountField(parts[1], "stake amount"),
		Direction:    direction,
	}
}

// decodeDepositYieldArgs expects `investmentId|amount|reportRef` with the
// report reference optional.
func decodeDepositYieldArgs(payload *string) *DepositYieldArgs {
	raw := unwrapPayload(payload, "deposit payload missing")
	parts := strings.Split(raw, "|")
	if len(parts) < 2 {
		sdk.Abort("deposit payload requires investmentId|amount")
	}
	args := &DepositYieldArgs{
		InvestmentID: parseUintField(parts[0], "investment id"),
		Amount:       parseAmountField(parts[1], "deposit amount"),
	}
	if len(parts) > 2 {
		args.ReportRef = strings.TrimSpace(parts[2])
	}
	return args
}

// decodeSweepArgs expects `investmentId|recipient`.
func decodeSweepArgs(payload *string) *SweepArgs {
	raw := unwrapPayload(payload, "sweep payload missing")
	parts := strings.Split(raw, "|")
	if len(parts) < 2 {
		sdk.Abort("sweep payload requires investmentId|recipient")
	}
	return &SweepArgs{
		InvestmentID: parseUintField(parts[0], "investment id"),
		Recipient:    AddressFromString(strings.TrimSpace(parts[1])),
	}
}

// decodeAddressPayload reads a bare address used by member_add/member_remove.
func decodeAddressPayload(payload *string) sdk.Address {
	raw := unwrapPayload(payload, "address payload missing")
	return AddressFromString(strings.TrimSpace(raw))
}

// decodeRoleArgs expects `address|roleName` for role_grant/role_revoke.
func decodeRoleArgs(payload *string) (sdk.Address, Role) {
	raw := unwrapPayload(payload, "role payload missing")
	parts := strings.Split(raw, "|")
	if len(parts) < 2 {
		sdk.Abort("role payload requires address|role")
	}
	return AddressFromString(strings.TrimSpace(parts[0])), ParseRole(strings.TrimSpace(parts[1]))
}

// decodeStakeQueryArgs expects `investmentId|address`.
func decodeStakeQueryArgs(payload *string) (uint64, sdk.Address) {
	raw := unwrapPayload(payload, "stake query payload missing")
	parts := strings.Split(raw, "|")
	if len(parts) < 2 {
		sdk.Abort("stake query requires investmentId|address")
	}
	return parseUintField(parts[0], "investment id"), AddressFromString(strings.TrimSpace(parts[1]))
}

// decodePagePayload reads `start|count` for timeline paging.
func decodePagePayload(payload *string) (uint64, uint64) {
	raw := unwrapPayload(payload, "page payload missing")
	parts := strings.Split(raw, "|")
	if len(parts) < 2 {
		sdk.Abort("page payload requires start|count")
	}
	return parseUintField(parts[0], "page start"), parseUintField(parts[1], "page count")
}

// strptr is a tiny helper so we can take a literal string and hand a pointer to sdk calls quickly.
func strptr(s string) *string { return &s }
