package main

import (
	"os"

	"github.com/spf13/cobra"

	"hivenet/cmd/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hivenet",
		Short: "Hive blockchain client",
	}

	cli.RegisterChain(rootCmd)
	cli.RegisterWallet(rootCmd)
	cli.RegisterBroadcast(rootCmd)
	cli.RegisterRC(rootCmd)
	cli.RegisterMemo(rootCmd)
	cli.RegisterStatus(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
