package cli

// -----------------------------------------------------------------------------
// chain.go – chain state queries
// -----------------------------------------------------------------------------
// Commands after RegisterChain(root):
//   ~chain ~props              – dynamic global properties
//   ~chain ~block    <num>     – full block
//   ~chain ~account  <name>    – extended account record
//   ~chain ~witnesses          – active witness schedule
// -----------------------------------------------------------------------------

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func chainProps(cmd *cobra.Command, _ []string) error {
	props, err := client().Database.GetDynamicGlobalProperties(cmd.Context())
	if err != nil {
		return fmt.Errorf("get_dynamic_global_properties: %w", err)
	}
	return printJSON(props)
}

func chainBlock(cmd *cobra.Command, args []string) error {
	blockNum, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("parse block number: %w", err)
	}
	block, err := client().Database.GetBlock(cmd.Context(), uint32(blockNum))
	if err != nil {
		return fmt.Errorf("get_block: %w", err)
	}
	return printJSON(block)
}

func chainAccount(cmd *cobra.Command, args []string) error {
	accounts, err := client().Database.GetAccounts(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("get_accounts: %w", err)
	}
	return printJSON(accounts)
}

func chainWitnesses(cmd *cobra.Command, _ []string) error {
	witnesses, err := client().Database.GetActiveWitnesses(cmd.Context())
	if err != nil {
		return fmt.Errorf("get_active_witnesses: %w", err)
	}
	return printJSON(witnesses)
}

// RegisterChain wires the chain command group onto root.
func RegisterChain(root *cobra.Command) {
	chainCmd := &cobra.Command{
		Use:               "chain",
		Short:             "Query chain state",
		PersistentPreRunE: ensureClient,
	}

	chainCmd.AddCommand(&cobra.Command{
		Use:   "props",
		Short: "Print the dynamic global properties",
		RunE:  chainProps,
	})
	chainCmd.AddCommand(&cobra.Command{
		Use:   "block <num>",
		Short: "Fetch a block by number",
		Args:  cobra.ExactArgs(1),
		RunE:  chainBlock,
	})
	chainCmd.AddCommand(&cobra.Command{
		Use:   "account <name>...",
		Short: "Fetch one or more accounts",
		Args:  cobra.MinimumNArgs(1),
		RunE:  chainAccount,
	})
	chainCmd.AddCommand(&cobra.Command{
		Use:   "witnesses",
		Short: "List the active witnesses",
		RunE:  chainWitnesses,
	})

	root.AddCommand(chainCmd)
}
