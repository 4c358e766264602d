// Executable proof-of-reserve commitment server.
package main

import (
	"github.com/msakuta/merkle-tree/cli"
	"github.com/msakuta/merkle-tree/cli/reserveserver/internal/cmd"
)

func main() {
	cli.Execute(cmd.RootCmd)
}
