// SPDX-License-Identifier: MIT

// Command lvroute solves ESPPRC and VRPTW instances from files.
//
//	lvroute espprc --instance graph.yaml --method pulse --one-based
//	lvroute vrptw --instance fleet.yaml --digits 3 --pricing pulse
//	lvroute vrptw --solomon C101.txt --metrics-addr :9100
//
// Settings come from --config (YAML), the .env file, LVROUTE_* variables and
// flags, in increasing precedence.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
