package contract

import (
	"strconv"
	"time"

	"coopvest_dao/sdk"
)

// cachedEnv/cachedInvestments are scoped to the currently executing
// transaction. Whenever the tx.id changes we refresh sdk.GetEnv() and drop
// memoized records to keep reads consistent.
var (
	cachedEnv         sdk.Env
	cachedEnvLoaded   bool
	cachedTransfer    *TransferAllow
	cachedInvestments map[uint64]*Investment
)

// currentEnv caches the env per tx.id so we dont poke the host api every few
// lines and ensures subsequent helper calls (sender, timestamps) always see
// the same snapshot.
func currentEnv() *sdk.Env {
	var currentTx string
	if txPtr := sdk.GetEnvKey("tx.id"); txPtr != nil {
		currentTx = *txPtr
	}
	if !cachedEnvLoaded || cachedEnv.TxId != currentTx {
		cachedEnv = sdk.GetEnv()
		cachedEnvLoaded = true
		cachedTransfer = nil
		cachedInvestments = map[uint64]*Investment{}
	}
	return &cachedEnv
}

// currentIntents accesses the intents already pulled with the env snapshot.
func currentIntents() []sdk.Intent {
	return currentEnv().Intents
}

// TransferAllow carries the args of a transfer.allow intent: the spend cap
// (Limit) and the asset it applies to (Token).
type TransferAllow struct {
	Limit float64
	Token sdk.Asset
}

// getFirstTransferAllow returns the first transfer.allow intent attached to
// the current transaction, or nil when the sender granted none. The cached
// result is dropped whenever currentEnv sees a new tx.
func getFirstTransferAllow() *TransferAllow {
	if cachedTransfer != nil {
		return cachedTransfer
	}
	for _, intent := range currentIntents() {
		if intent.Type == "transfer.allow" {
			token := intent.Args["token"]
			if !isValidAsset(token) {
				sdk.Abort("invalid intent asset")
			}
			limit, err := strconv.ParseFloat(intent.Args["limit"], 64)
			if err != nil {
				sdk.Abort("invalid intent limit")
			}
			cachedTransfer = &TransferAllow{
				Limit: limit,
				Token: AssetFromString(token),
			}
			return cachedTransfer
		}
	}
	return nil
}

// getSenderAddress returns the address of the current transaction sender.
func getSenderAddress() sdk.Address {
	return currentEnv().Sender.Address
}

// getTxID tags new records with the tx that created them.
func getTxID() string {
	return currentEnv().TxId
}

// nowUnix returns the current Unix timestamp, preferring the chain's block
// timestamp from the environment.
func nowUnix() int64 {
	if ts := currentEnv().Timestamp; ts != "" {
		if v, ok := parseTimestamp(ts); ok {
			return v
		}
	}
	if tsPtr := sdk.GetEnvKey("block.timestamp"); tsPtr != nil && *tsPtr != "" {
		if v, ok := parseTimestamp(*tsPtr); ok {
			return v
		}
	}
	return time.Now().Unix()
}

// parseTimestamp accepts unix seconds or iso-ish strings since the env flips formats sometimes.
func parseTimestamp(val string) (int64, bool) {
	if v, err := strconv.ParseInt(val, 10, 64); err == nil {
		return v, true
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t.Unix(), true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", val, time.UTC); err == nil {
		return t.Unix(), true
	}
	return 0, false
}
