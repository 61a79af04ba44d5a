////////////////////////////////////////////////////////////////////////////////
// Coopvest DAO: pooled-capital investment proposals for the vsc network
////////////////////////////////////////////////////////////////////////////////

package main

import (
	_ "coopvest_dao/contract"
)

// main is left empty on purpose - all entry points are wasm exports
// declared in the contract package.
func main() {

}
