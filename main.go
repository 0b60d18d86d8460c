// SPDX-License-Identifier: Apache-2.0
//
// Civscope - CI-V Radio Control and Spectrum Scope Client
//
// A CLI tool for controlling CI-V radios and watching their spectrum
// scope over TCP, serial, or WebSocket connections.

package main

import (
	"os"

	"github.com/D0gZys/PTUT/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
