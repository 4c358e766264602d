package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msakuta/merkle-tree/application/server"
	"github.com/msakuta/merkle-tree/cli"
)

// runCmd represents the run command
var runCmd = cli.NewRunCommand("reserve server",
	`Run a reserve server instance.

This will look for config files with default names
in the current directory if not specified differently.
	`, run)

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("config", "c", "config.toml", "Path to server configuration file")
}

func run(cmd *cobra.Command, args []string) {
	confPath := cmd.Flag("config").Value.String()

	conf, err := server.LoadConfig(confPath)
	if err != nil {
		log.Fatal(err)
	}
	serv, err := server.New(conf)
	if err != nil {
		log.Fatal(err)
	}

	// run the server until receiving an interrupt signal
	if err := serv.Run(conf.Addresses); err != nil {
		log.Fatal(err)
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch
	serv.Shutdown()
}
