package cmd

import (
	"log"
	"path"

	"github.com/spf13/cobra"

	"github.com/msakuta/merkle-tree/application"
	"github.com/msakuta/merkle-tree/application/server"
	"github.com/msakuta/merkle-tree/cli"
	"github.com/msakuta/merkle-tree/crypto/sign"
	"github.com/msakuta/merkle-tree/merkletree"
	"github.com/msakuta/merkle-tree/storage/balancedb"
	"github.com/msakuta/merkle-tree/utils"
)

// initCmd represents the init command
var initCmd = cli.NewInitCommand("reserve server", initRunFunc)

func init() {
	RootCmd.AddCommand(initCmd)
	initCmd.Flags().StringP("dir", "d", ".", "Location of directory for storing generated files")
	initCmd.Flags().BoolP("seed", "s", false, "Seed the balance registry with demonstration records")
}

func initRunFunc(cmd *cobra.Command, args []string) {
	dir := cmd.Flag("dir").Value.String()
	mkConfig(dir)
	mkSigningKey(dir)

	if seed, err := cmd.Flags().GetBool("seed"); err == nil && seed {
		seedRegistry(dir)
	}
}

func mkConfig(dir string) {
	file := path.Join(dir, "config.toml")
	addrs := []*application.ServerAddress{
		{
			Address: "tcp://127.0.0.1:8000",
		},
	}
	logger := &application.LoggerConfig{
		Environment: "development",
		Path:        "reserveserver.log",
	}
	policies := server.NewPolicies(
		"ProofOfReserve_Leaf",
		"ProofOfReserve_Branch",
		"sign.priv")

	conf := server.NewConfig(addrs, logger, "registry", policies)
	if err := application.SaveConfig(file, conf); err != nil {
		log.Println(err)
	}
}

func mkSigningKey(dir string) {
	sk, err := sign.GenerateKey(nil)
	if err != nil {
		log.Print(err)
		return
	}
	pk, _ := sk.Public()
	if err := utils.WriteFile(path.Join(dir, "sign.priv"), sk, 0600); err != nil {
		log.Println(err)
		return
	}
	if err := utils.WriteFile(path.Join(dir, "sign.pub"), pk, 0600); err != nil {
		log.Println(err)
		return
	}
}

func seedRegistry(dir string) {
	db, err := balancedb.Open(path.Join(dir, "registry"))
	if err != nil {
		log.Println(err)
		return
	}
	defer db.Close()

	records := make([]merkletree.Record, 8)
	for i := range records {
		records[i] = merkletree.Record{
			ID:      uint32(i + 1),
			Balance: uint32(i+1) * 1111,
		}
	}
	if err := db.Seed(records); err != nil {
		log.Println(err)
	}
}
