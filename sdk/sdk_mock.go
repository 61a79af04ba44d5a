//go:build !wasm

package sdk

import (
	"errors"
	"strconv"
)

// In-memory host used for native builds (go test). Mirrors the wasm host
// surface: kv state, balance ledger, execution env, transfer primitives.
// Tests drive it through the Mock* helpers below.

var (
	mockState    map[string]string
	mockBalances map[string]int64
	mockCustody  int64
	mockEnv      Env
	mockLogs     []string

	mockFailDraw     bool
	mockFailTransfer bool
	mockOnTransfer   func(to Address, amount int64, asset Asset)
)

func init() {
	MockReset()
}

// MockReset wipes state, balances, logs and failure switches between tests.
func MockReset() {
	mockState = map[string]string{}
	mockBalances = map[string]int64{}
	mockCustody = 0
	mockLogs = nil
	mockFailDraw = false
	mockFailTransfer = false
	mockOnTransfer = nil
	mockEnv = Env{
		ContractId:  "contract:coopvest",
		TxId:        "tx-0",
		BlockId:     "block-0",
		BlockHeight: 0,
		Timestamp:   "2025-01-01T00:00:00",
		Sender:      Sender{Address: "hive:someone"},
		Caller:      Caller{Address: "hive:someone"},
		Payer:       "hive:someone",
	}
}

// MockSetSender switches the tx sender and bumps the tx id so per-tx caches refresh.
func MockSetSender(addr Address, txId string) {
	mockEnv.Sender = Sender{Address: addr}
	mockEnv.Caller = Caller{Address: addr}
	mockEnv.Payer = addr.String()
	mockEnv.TxId = txId
}

// MockSetTimestamp overrides the block timestamp for deadline and grace checks.
func MockSetTimestamp(ts string) {
	mockEnv.Timestamp = ts
}

// MockSetIntents attaches the intents the next env snapshot carries, nil to
// simulate a sender who granted no transfer allowance.
func MockSetIntents(intents []Intent) {
	mockEnv.Intents = intents
}

// MockSetBalance seeds an account balance in the host ledger.
func MockSetBalance(addr Address, asset Asset, amount int64) {
	mockBalances[addr.String()+"|"+asset.String()] = amount
}

// MockCustodyBalance returns what the host holds on behalf of the contract.
func MockCustodyBalance() int64 {
	return mockCustody
}

// MockFailNextDraw makes every following HiveDraw fail until cleared.
func MockFailNextDraw(fail bool) {
	mockFailDraw = fail
}

// MockFailNextTransfer makes every following HiveTransfer fail until cleared.
func MockFailNextTransfer(fail bool) {
	mockFailTransfer = fail
}

// MockOnTransfer installs a hook fired after each successful outbound push,
// used to simulate a recipient re-entering the contract.
func MockOnTransfer(hook func(to Address, amount int64, asset Asset)) {
	mockOnTransfer = hook
}

// MockLogs returns everything written through Log since the last reset.
func MockLogs() []string {
	return mockLogs
}

// Log appends to the captured log stream.
func Log(s string) {
	mockLogs = append(mockLogs, s)
}

// Abort mimics the host trap: execution stops via panic.
func Abort(msg string) {
	panic(&AbortError{Msg: msg})
}

// Revert mimics the host named-error trap.
func Revert(msg string, symbol string) {
	panic(&RevertError{Msg: msg, Symbol: symbol})
}

func StateSetObject(key string, value string) {
	mockState[key] = value
}

func StateGetObject(key string) *string {
	val, ok := mockState[key]
	if !ok {
		return nil
	}
	return &val
}

func StateDeleteObject(key string) {
	delete(mockState, key)
}

func GetEnv() Env {
	return mockEnv
}

func GetEnvKey(key string) *string {
	var val string
	switch key {
	case "block.timestamp":
		val = mockEnv.Timestamp
	case "tx.id":
		val = mockEnv.TxId
	case "contract.id":
		val = mockEnv.ContractId
	case "msg.sender":
		val = mockEnv.Sender.Address.String()
	default:
		return nil
	}
	return &val
}

func GetBalance(address Address, asset Asset) int64 {
	return mockBalances[address.String()+"|"+asset.String()]
}

// HiveDraw moves funds from the current sender into contract custody.
func HiveDraw(amount int64, asset Asset) error {
	if mockFailDraw {
		return errors.New("draw rejected by host")
	}
	key := mockEnv.Sender.Address.String() + "|" + asset.String()
	if mockBalances[key] < amount {
		return errors.New("insufficient balance for draw")
	}
	mockBalances[key] -= amount
	mockCustody += amount
	return nil
}

// HiveTransfer moves funds from contract custody to the recipient. The
// custody check is the hard backstop: over-distribution cannot succeed here.
func HiveTransfer(to Address, amount int64, asset Asset) error {
	if mockFailTransfer {
		return errors.New("transfer rejected by host")
	}
	if mockCustody < amount {
		return errors.New("insufficient contract custody: " + strconv.FormatInt(mockCustody, 10))
	}
	mockCustody -= amount
	mockBalances[to.String()+"|"+asset.String()] += amount
	if mockOnTransfer != nil {
		mockOnTransfer(to, amount, asset)
	}
	return nil
}
