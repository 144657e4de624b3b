package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ziesha-network/zwallet/internal/address"
	"github.com/ziesha-network/zwallet/internal/eddsa"
	"github.com/ziesha-network/zwallet/internal/sponge"
	"github.com/ziesha-network/zwallet/internal/tx"
)

func accountCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show balances, pending and incoming payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := o.wire(true)
			if err != nil {
				return err
			}
			defer w.Keyring.Zero()

			state, err := w.Wallet.Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Address: %s\n", state.Address)
			fmt.Fprintf(out, "Account index: %d\n", state.AccountIndex)
			fmt.Fprintf(out, "Nonce: %d (next %d)\n", state.Nonce, state.NextNonce)
			fmt.Fprintf(out, "Balance: %s ZSH\n", tx.FormatAmount(state.Balance))
			for _, t := range state.Tokens {
				name := t.ID
				if t.Token.Symbol != "" {
					name = fmt.Sprintf("%s (%s)", t.Token.Symbol, t.Token.Name)
				}
				fmt.Fprintf(out, "Token %s: %d\n", name, t.Amount)
			}
			if len(state.Pending) > 0 {
				fmt.Fprintf(out, "Pending: %s ZSH\n", tx.FormatAmount(state.Spent))
				printPayloads(out, state.Pending)
			}
			if len(state.Incoming) > 0 {
				fmt.Fprintln(out, "Incoming:")
				printPayloads(out, state.Incoming)
			}
			return nil
		},
	}
}

// send <address> <amount>: pay amount coins (e.g. 2.5) to address.
func sendCmd(o *options) *cobra.Command {
	var fee string
	cmd := &cobra.Command{
		Use:   "send <address> <amount>",
		Short: "Send coins to an address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := tx.ParseAmount(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}
			feeUnits, err := tx.ParseAmount(fee)
			if err != nil {
				return fmt.Errorf("invalid fee: %w", err)
			}
			w, err := o.wire(true)
			if err != nil {
				return err
			}
			defer w.Keyring.Zero()

			p, err := w.Wallet.Send(cmd.Context(), args[0], amount, feeUnits)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent %s ZSH to %s with nonce %d\n", tx.FormatAmount(p.Amount), p.DstPubKey, p.Nonce)
			return nil
		},
	}
	cmd.Flags().StringVar(&fee, "fee", "0", "fee in coins")
	return cmd
}

func historyCmd(o *options) *cobra.Command {
	var verify, raw bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List payments sent from this wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := o.wire(true)
			if err != nil {
				return err
			}
			defer w.Keyring.Zero()

			hist, err := w.Wallet.History()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(hist) == 0 {
				fmt.Fprintln(out, "No payments.")
				return nil
			}
			if raw {
				for _, p := range hist {
					encoded, err := tx.EncodeRaw(p)
					if err != nil {
						return fmt.Errorf("nonce %d: %w", p.Nonce, err)
					}
					fmt.Fprintln(out, encoded)
				}
			} else {
				printPayloads(out, hist)
			}
			if !verify {
				return nil
			}

			h := sponge.Default()
			items := make([]eddsa.BatchItem, len(hist))
			for i, p := range hist {
				item, err := batchItem(h, p)
				if err != nil {
					return fmt.Errorf("nonce %d: %w", p.Nonce, err)
				}
				items[i] = item
			}
			valid, err := eddsa.NewBatchVerifier(h, 0, w.Metrics).Verify(cmd.Context(), items)
			if err != nil {
				return err
			}
			bad := 0
			for i, ok := range valid {
				if !ok {
					bad++
					fmt.Fprintf(out, "Invalid signature on nonce %d\n", hist[i].Nonce)
				}
			}
			if bad > 0 {
				return errSignatureInvalid
			}
			fmt.Fprintf(out, "All %d signatures valid.\n", len(hist))
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "verify the signatures of all payments")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the payments as raw payloads for broadcast")
	return cmd
}

func resendCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resend",
		Short: "Submit all pending payments again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := o.wire(true)
			if err != nil {
				return err
			}
			defer w.Keyring.Zero()

			n, err := w.Wallet.ResendPending(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Resent %d payments.\n", n)
			return err
		},
	}
}

// broadcast <raw>: submit a payment exported with history --raw, possibly signed by another wallet.
func broadcastCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast <raw>",
		Short: "Submit a raw signed payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := tx.DecodeRaw(args[0])
			if err != nil {
				return err
			}
			if err := p.Verify(sponge.Default()); err != nil {
				return err
			}
			w, err := o.wire(false)
			if err != nil {
				return err
			}
			if _, err := w.Node.Transact(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted nonce %d from %s\n", p.Nonce, p.SrcPubKey)
			return nil
		},
	}
}

func clearHistoryCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-history",
		Short: "Forget all locally recorded payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := o.wire(true)
			if err != nil {
				return err
			}
			defer w.Keyring.Zero()
			return w.Wallet.ClearHistory()
		},
	}
}

func batchItem(h sponge.Hasher, p tx.Payload) (eddsa.BatchItem, error) {
	src, err := address.Decode(p.SrcPubKey)
	if err != nil {
		return eddsa.BatchItem{}, err
	}
	dst, err := address.Decode(p.DstPubKey)
	if err != nil {
		return eddsa.BatchItem{}, err
	}
	sig, err := tx.ParseSignatureHex(p.Sig)
	if err != nil {
		return eddsa.BatchItem{}, err
	}
	return eddsa.BatchItem{PublicKey: src, Message: tx.Hash(h, p.Nonce, dst, p.Amount, p.Fee), Signature: sig}, nil
}

func printPayloads(out io.Writer, payloads []tx.Payload) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NONCE\tTO\tAMOUNT\tFEE")
	for _, p := range payloads {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.Nonce, p.DstPubKey, tx.FormatAmount(p.Amount), tx.FormatAmount(p.Fee))
	}
	_ = tw.Flush()
}
