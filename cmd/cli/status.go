package cli

// -----------------------------------------------------------------------------
// status.go – transaction status lookup
// -----------------------------------------------------------------------------
// Commands after RegisterStatus(root):
//   ~status ~tx <id>   – resolve a transaction id to its lifecycle state
// -----------------------------------------------------------------------------

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statusTx(cmd *cobra.Command, args []string) error {
	status, err := client().TransactionStatus.FindTransaction(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("find_transaction: %w", err)
	}
	fmt.Println(status.Status)
	return nil
}

// RegisterStatus wires the status command group onto root.
func RegisterStatus(root *cobra.Command) {
	statusCmd := &cobra.Command{
		Use:               "status",
		Short:             "Transaction status",
		PersistentPreRunE: ensureClient,
	}

	statusCmd.AddCommand(&cobra.Command{
		Use:   "tx <id>",
		Short: "Look up a transaction's status",
		Args:  cobra.ExactArgs(1),
		RunE:  statusTx,
	})

	root.AddCommand(statusCmd)
}
