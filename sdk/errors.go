package sdk

// RevertError is the panic value carried by Revert. The wasm host tears the
// transaction down before unwinding matters; the in-memory host relies on it
// so tests can observe the failure symbol.
type RevertError struct {
	Msg    string
	Symbol string
}

func (e *RevertError) Error() string {
	return e.Symbol + ": " + e.Msg
}

// AbortError is the panic value carried by Abort.
type AbortError struct {
	Msg string
}

func (e *AbortError) Error() string {
	return e.Msg
}
