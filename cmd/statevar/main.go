// SPDX-License-Identifier: MIT

// Command statevar simulates linear RLC circuits with the state-variable
// method.
//
//	statevar demo task --time 5ms --plot-format png,html
//	statevar simulate circuit.net --step 1e-6
//	statevar inspect circuit.net --yaml
//
// Settings come from flags, STATEVAR_* environment variables and an
// optional statevar.yaml (current directory or $HOME/.config/statevar).
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
