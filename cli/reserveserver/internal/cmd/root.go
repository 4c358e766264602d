// Package cmd implements the CLI commands for the reserve server.
package cmd

import (
	"github.com/msakuta/merkle-tree/cli"
)

// RootCmd represents the base "reserveserver" command when called
// without any subcommands.
var RootCmd = cli.NewRootCommand("reserveserver",
	"Proof-of-reserve commitment server",
	`reserveserver publishes a tamper-evident commitment (a Merkle root)
over a set of user balance records and serves, per user, the path of
evidence connecting that user's record to the published root.`)

func init() {
	RootCmd.AddCommand(cli.NewVersionCommand("reserveserver"))
}
