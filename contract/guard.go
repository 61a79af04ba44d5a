package contract

import "coopvest_dao/sdk"

// entered is the single-slot entry latch. Execution is serialized, so a plain
// bool suffices; it only trips when an outbound transfer re-enters an
// entrypoint before the first call unwinds.
var entered bool

func guardEnter() {
	if entered {
		sdk.Revert("nested entrypoint call rejected", symReentrancy)
	}
	entered = true
}

func guardExit() {
	entered = false
}

// requireActive rejects mutating calls while the emergency pause is set.
// Queries and the pause toggle itself bypass this gate.
func requireActive() {
	if isPaused() {
		sdk.Revert("contract is paused", symPaused)
	}
}
