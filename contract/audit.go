package contract

import (
	"fmt"
	"strconv"

	"coopvest_dao/sdk"
)

// The audit timeline is an append-only sequence of terse pipe lines, one per
// state-changing operation, stored under sequential keys so off-chain tools
// can page through history without replaying logs.

func appendAudit(actor string, code string, investmentID uint64, amount Amount) {
	id := getCount(AuditCount) + 1
	setCount(AuditCount, id)
	line := fmt.Sprintf(
		"%d|%s|%s|%d|%s",
		nowUnix(),
		actor,
		code,
		investmentID,
		formatAmount(amount),
	)
	sdk.StateSetObject(auditEntryKey(id), line)
}

// listAudit pages the timeline. start is one-based; zero means "from the
// beginning". Returns raw lines, oldest first.
func listAudit(start uint64, count uint64) []string {
	total := getCount(AuditCount)
	if start == 0 {
		start = 1
	}
	lines := []string{}
	for id := start; id <= total && uint64(len(lines)) < count; id++ {
		ptr := sdk.StateGetObject(auditEntryKey(id))
		if ptr == nil || *ptr == "" {
			continue
		}
		lines = append(lines, strconv.FormatUint(id, 10)+"|"+*ptr)
	}
	return lines
}
