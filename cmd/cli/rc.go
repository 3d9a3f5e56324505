package cli

// -----------------------------------------------------------------------------
// rc.go – resource-credit inspection and cost estimation
// -----------------------------------------------------------------------------
// Commands after RegisterRC(root):
//   ~rc ~accounts <name>...   – per-account RC state
//   ~rc ~estimate --from --to --amount [--memo]
//                             – offline cost of a transfer transaction
// -----------------------------------------------------------------------------

import (
	"fmt"

	"github.com/spf13/cobra"

	"hivenet/core"
)

func rcAccounts(cmd *cobra.Command, args []string) error {
	accounts, err := client().RC.FindRCAccounts(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("find_rc_accounts: %w", err)
	}
	return printJSON(accounts)
}

func rcEstimate(cmd *cobra.Command, _ []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	amountRaw, _ := cmd.Flags().GetString("amount")
	memo, _ := cmd.Flags().GetString("memo")

	amount, err := core.AssetFromString(amountRaw)
	if err != nil {
		return err
	}

	cost, err := client().RC.CalculateCost(cmd.Context(), []core.Operation{
		&core.TransferOperation{From: from, To: to, Amount: amount, Memo: memo},
	})
	if err != nil {
		return fmt.Errorf("calculate rc cost: %w", err)
	}
	fmt.Printf("estimated_rc_cost=%d\n", cost)
	return nil
}

// RegisterRC wires the rc command group onto root.
func RegisterRC(root *cobra.Command) {
	rcCmd := &cobra.Command{
		Use:               "rc",
		Short:             "Resource credits",
		PersistentPreRunE: ensureClient,
	}

	rcCmd.AddCommand(&cobra.Command{
		Use:   "accounts <name>...",
		Short: "Show per-account RC state",
		Args:  cobra.MinimumNArgs(1),
		RunE:  rcAccounts,
	})

	estimate := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the RC cost of a transfer",
		RunE:  rcEstimate,
	}
	estimate.Flags().String("from", "", "sending account")
	estimate.Flags().String("to", "", "receiving account")
	estimate.Flags().String("amount", "", "amount, e.g. '0.001 HIVE'")
	estimate.Flags().String("memo", "", "transfer memo")
	for _, flag := range []string{"from", "to", "amount"} {
		_ = estimate.MarkFlagRequired(flag)
	}
	rcCmd.AddCommand(estimate)

	root.AddCommand(rcCmd)
}
