package cli

// -----------------------------------------------------------------------------
// broadcast.go – build, sign and submit transactions
// -----------------------------------------------------------------------------
// Commands after RegisterBroadcast(root):
//   ~broadcast ~transfer     --wif --from --to --amount [--memo]
//   ~broadcast ~vote         --wif --voter --author --permlink [--weight]
//   ~broadcast ~custom-json  --wif --account --id <json>
// -----------------------------------------------------------------------------

import (
	"fmt"

	"github.com/spf13/cobra"

	"hivenet/core"
)

func broadcastTransfer(cmd *cobra.Command, _ []string) error {
	wif, _ := cmd.Flags().GetString("wif")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	amountRaw, _ := cmd.Flags().GetString("amount")
	memo, _ := cmd.Flags().GetString("memo")

	key, err := core.PrivateKeyFromWIF(wif)
	if err != nil {
		return err
	}
	amount, err := core.AssetFromString(amountRaw)
	if err != nil {
		return err
	}

	confirmation, err := client().Broadcast.Transfer(cmd.Context(), core.TransferOperation{
		From:   from,
		To:     to,
		Amount: amount,
		Memo:   memo,
	}, key)
	if err != nil {
		return fmt.Errorf("broadcast transfer: %w", err)
	}
	return printJSON(confirmation)
}

func broadcastVote(cmd *cobra.Command, _ []string) error {
	wif, _ := cmd.Flags().GetString("wif")
	voter, _ := cmd.Flags().GetString("voter")
	author, _ := cmd.Flags().GetString("author")
	permlink, _ := cmd.Flags().GetString("permlink")
	weight, _ := cmd.Flags().GetInt16("weight")

	key, err := core.PrivateKeyFromWIF(wif)
	if err != nil {
		return err
	}

	confirmation, err := client().Broadcast.Vote(cmd.Context(), core.VoteOperation{
		Voter:    voter,
		Author:   author,
		Permlink: permlink,
		Weight:   weight,
	}, key)
	if err != nil {
		return fmt.Errorf("broadcast vote: %w", err)
	}
	return printJSON(confirmation)
}

func broadcastCustomJSON(cmd *cobra.Command, args []string) error {
	wif, _ := cmd.Flags().GetString("wif")
	account, _ := cmd.Flags().GetString("account")
	id, _ := cmd.Flags().GetString("id")

	key, err := core.PrivateKeyFromWIF(wif)
	if err != nil {
		return err
	}

	confirmation, err := client().Broadcast.CustomJSON(cmd.Context(), core.CustomJSONOperation{
		RequiredAuths:        []string{},
		RequiredPostingAuths: []string{account},
		ID:                   id,
		JSON:                 args[0],
	}, key)
	if err != nil {
		return fmt.Errorf("broadcast custom_json: %w", err)
	}
	return printJSON(confirmation)
}

// RegisterBroadcast wires the broadcast command group onto root.
func RegisterBroadcast(root *cobra.Command) {
	broadcastCmd := &cobra.Command{
		Use:               "broadcast",
		Short:             "Sign and submit transactions",
		PersistentPreRunE: ensureClient,
	}

	transfer := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer HIVE or HBD",
		RunE:  broadcastTransfer,
	}
	transfer.Flags().String("wif", "", "active key WIF")
	transfer.Flags().String("from", "", "sending account")
	transfer.Flags().String("to", "", "receiving account")
	transfer.Flags().String("amount", "", "amount, e.g. '1.000 HIVE'")
	transfer.Flags().String("memo", "", "transfer memo")
	for _, flag := range []string{"wif", "from", "to", "amount"} {
		_ = transfer.MarkFlagRequired(flag)
	}

	vote := &cobra.Command{
		Use:   "vote",
		Short: "Vote on a comment",
		RunE:  broadcastVote,
	}
	vote.Flags().String("wif", "", "posting key WIF")
	vote.Flags().String("voter", "", "voting account")
	vote.Flags().String("author", "", "comment author")
	vote.Flags().String("permlink", "", "comment permlink")
	vote.Flags().Int16("weight", 10000, "vote weight in basis points")
	for _, flag := range []string{"wif", "voter", "author", "permlink"} {
		_ = vote.MarkFlagRequired(flag)
	}

	customJSON := &cobra.Command{
		Use:   "custom-json <json>",
		Short: "Submit a custom_json operation",
		Args:  cobra.ExactArgs(1),
		RunE:  broadcastCustomJSON,
	}
	customJSON.Flags().String("wif", "", "posting key WIF")
	customJSON.Flags().String("account", "", "posting authority account")
	customJSON.Flags().String("id", "", "custom json id")
	for _, flag := range []string{"wif", "account", "id"} {
		_ = customJSON.MarkFlagRequired(flag)
	}

	broadcastCmd.AddCommand(transfer, vote, customJSON)
	root.AddCommand(broadcastCmd)
}
