package cli

// -----------------------------------------------------------------------------
// memo.go – memo encryption and decryption
// -----------------------------------------------------------------------------
// Commands after RegisterMemo(root):
//   ~memo ~encode --wif --to <pubkey> <text>   – encrypt a "#"-prefixed memo
//   ~memo ~decode --wif <text>                 – decrypt a "#"-prefixed memo
// -----------------------------------------------------------------------------

import (
	"fmt"

	"github.com/spf13/cobra"

	"hivenet/core"
)

func memoEncode(cmd *cobra.Command, args []string) error {
	wif, _ := cmd.Flags().GetString("wif")
	toRaw, _ := cmd.Flags().GetString("to")

	key, err := core.PrivateKeyFromWIF(wif)
	if err != nil {
		return err
	}
	to, err := core.PublicKeyFromString(toRaw)
	if err != nil {
		return err
	}

	encoded, err := core.EncodeMemo(key, to, args[0])
	if err != nil {
		return err
	}
	fmt.Println(encoded)
	return nil
}

func memoDecode(cmd *cobra.Command, args []string) error {
	wif, _ := cmd.Flags().GetString("wif")

	key, err := core.PrivateKeyFromWIF(wif)
	if err != nil {
		return err
	}

	decoded, err := core.DecodeMemo(key, args[0])
	if err != nil {
		return err
	}
	fmt.Println(decoded)
	return nil
}

// RegisterMemo wires the memo command group onto root. Memo commands are
// purely local: no client bootstrap required.
func RegisterMemo(root *cobra.Command) {
	memoCmd := &cobra.Command{
		Use:   "memo",
		Short: "Encrypt and decrypt memos",
	}

	encode := &cobra.Command{
		Use:   "encode <text>",
		Short: "Encrypt a memo for a recipient key",
		Args:  cobra.ExactArgs(1),
		RunE:  memoEncode,
	}
	encode.Flags().String("wif", "", "sender memo key WIF")
	encode.Flags().String("to", "", "recipient public key")
	_ = encode.MarkFlagRequired("wif")
	_ = encode.MarkFlagRequired("to")

	decode := &cobra.Command{
		Use:   "decode <text>",
		Short: "Decrypt a memo",
		Args:  cobra.ExactArgs(1),
		RunE:  memoDecode,
	}
	decode.Flags().String("wif", "", "receiver memo key WIF")
	_ = decode.MarkFlagRequired("wif")

	memoCmd.AddCommand(encode, decode)
	root.AddCommand(memoCmd)
}
