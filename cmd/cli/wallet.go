package cli

// -----------------------------------------------------------------------------
// wallet.go – key derivation and lookup
// -----------------------------------------------------------------------------
// Commands after RegisterWallet(root):
//   ~wallet ~public <wif>                 – derive the public key from a WIF
//   ~wallet ~login  <user> <pass> [role]  – derive a login key (active default)
//   ~wallet ~refs   <pubkey>...           – map keys to account names
//   ~wallet ~generate                     – fresh random key pair
// -----------------------------------------------------------------------------

import (
	"fmt"

	"github.com/spf13/cobra"

	"hivenet/core"
)

func walletPublic(cmd *cobra.Command, args []string) error {
	key, err := core.PrivateKeyFromWIF(args[0])
	if err != nil {
		return err
	}
	fmt.Println(key.PublicKey().String())
	return nil
}

func walletLogin(cmd *cobra.Command, args []string) error {
	role := core.RoleActive
	if len(args) == 3 {
		switch args[2] {
		case "owner":
			role = core.RoleOwner
		case "active":
			role = core.RoleActive
		case "posting":
			role = core.RolePosting
		case "memo":
			role = core.RoleMemo
		default:
			return fmt.Errorf("unknown role %q", args[2])
		}
	}

	key, err := core.PrivateKeyFromLogin(args[0], args[1], role)
	if err != nil {
		return err
	}
	fmt.Printf("wif:    %s\n", key.ToWIF())
	fmt.Printf("public: %s\n", key.PublicKey().String())
	return nil
}

func walletRefs(cmd *cobra.Command, args []string) error {
	refs, err := client().Keys.GetKeyReferences(cmd.Context(), args)
	if err != nil {
		// Nodes without the account_by_key plugin still answer via condenser.
		refs, err = client().Database.GetKeyReferences(cmd.Context(), args)
		if err != nil {
			return fmt.Errorf("get_key_references: %w", err)
		}
	}
	return printJSON(refs)
}

func walletGenerate(cmd *cobra.Command, _ []string) error {
	key, err := core.GeneratePrivateKey()
	if err != nil {
		return err
	}
	fmt.Printf("wif:    %s\n", key.ToWIF())
	fmt.Printf("public: %s\n", key.PublicKey().String())
	return nil
}

// RegisterWallet wires the wallet command group onto root.
func RegisterWallet(root *cobra.Command) {
	walletCmd := &cobra.Command{
		Use:               "wallet",
		Short:             "Derive and inspect keys",
		PersistentPreRunE: ensureClient,
	}

	walletCmd.AddCommand(&cobra.Command{
		Use:   "public <wif>",
		Short: "Derive the public key from a WIF",
		Args:  cobra.ExactArgs(1),
		RunE:  walletPublic,
	})
	walletCmd.AddCommand(&cobra.Command{
		Use:   "login <user> <password> [role]",
		Short: "Derive a login key (role defaults to active)",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  walletLogin,
	})
	walletCmd.AddCommand(&cobra.Command{
		Use:   "refs <pubkey>...",
		Short: "Resolve accounts referencing the given keys",
		Args:  cobra.MinimumNArgs(1),
		RunE:  walletRefs,
	})
	walletCmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Generate a fresh key pair",
		RunE:  walletGenerate,
	})

	root.AddCommand(walletCmd)
}
