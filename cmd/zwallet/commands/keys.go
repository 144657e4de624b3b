package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ziesha-network/zwallet/internal/address"
	"github.com/ziesha-network/zwallet/internal/eddsa"
	"github.com/ziesha-network/zwallet/internal/math"
	"github.com/ziesha-network/zwallet/internal/sponge"
	"github.com/ziesha-network/zwallet/internal/tx"
	"github.com/ziesha-network/zwallet/zkeyring"
)

var errSignatureInvalid = errors.New("signature is invalid")

func addressCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address and its MPN account index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := o.keyring()
			if err != nil {
				return err
			}
			defer kr.Zero()
			fmt.Fprintf(cmd.OutOrStdout(), "Address: %s\nAccount index: %d\n", kr.Address(), kr.AccountIndex())
			return nil
		},
	}
}

// sign <message>: sign a field element given in decimal or 0x-prefixed hex.
func signCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sign <message>",
		Short: "Sign a field element with the wallet key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := math.FieldElementFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid message: %w", err)
			}
			w, err := o.wire(true)
			if err != nil {
				return err
			}
			defer w.Keyring.Zero()

			sig := w.Keyring.Sign(msg)
			fmt.Fprintln(cmd.OutOrStdout(), tx.SignatureHex(sig))
			return nil
		},
	}
}

// verify <address> <message> <signature>: check a signature produced by sign. Fails if the signature is invalid.
func verifyCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <address> <message> <signature>",
		Short: "Verify a signature against an address",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := address.Decode(args[0])
			if err != nil {
				return err
			}
			msg, err := math.FieldElementFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid message: %w", err)
			}
			sig, err := tx.ParseSignatureHex(args[2])
			if err != nil {
				return fmt.Errorf("invalid signature: %w", err)
			}
			w, err := o.wire(false)
			if err != nil {
				return err
			}

			verifier := eddsa.NewBatchVerifier(sponge.Default(), 1, w.Metrics)
			valid, err := verifier.Verify(cmd.Context(), []eddsa.BatchItem{{PublicKey: pk, Message: msg, Signature: sig}})
			if err != nil {
				return err
			}
			if !valid[0] {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return errSignatureInvalid
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}

func newMnemonicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-mnemonic",
		Short: "Generate a new 12 word mnemonic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := zkeyring.NewMnemonic()
			if err != nil {
				return err
			}
			kr, err := zkeyring.FromMnemonic(m)
			if err != nil {
				return err
			}
			defer kr.Zero()
			fmt.Fprintf(cmd.OutOrStdout(), "Mnemonic: %s\nAddress: %s\n", m, kr.Address())
			return nil
		},
	}
}
