// Package commands implements the zwallet command line interface.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ziesha-network/zwallet/internal/app"
	"github.com/ziesha-network/zwallet/zkeyring"
)

var errNoMnemonic = fmt.Errorf("no mnemonic given, use --mnemonic or %s", app.EnvMnemonic)

type options struct {
	cfg      app.Config
	mnemonic string
	lookup   func(string) (string, bool)
}

func Execute() error {
	return NewRootCmd(os.LookupEnv).Execute()
}

// NewRootCmd builds the command tree. Environment variables are read through lookup.
func NewRootCmd(lookup func(string) (string, bool)) *cobra.Command {
	o := &options{lookup: lookup}

	root := &cobra.Command{
		Use:          "zwallet",
		Short:        "Wallet for the Ziesha MPN payment network",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.cfg.WithDefaults(o.lookup)
			if err != nil {
				return err
			}
			cfg.LogOutput = cmd.ErrOrStderr()
			o.cfg = cfg
			if o.mnemonic == "" {
				o.mnemonic, _ = o.lookup(app.EnvMnemonic)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.cfg.Home, "home", "", "wallet dir (default ~/.zwallet, env "+app.EnvHome+")")
	flags.StringVar(&o.cfg.NodeURL, "node", "", "node address (default "+app.DefaultNodeURL+", env "+app.EnvNode+")")
	flags.StringVar(&o.cfg.Network, "network", "", "network name (default "+app.DefaultNetwork+", env "+app.EnvNetwork+")")
	flags.StringVar(&o.cfg.LogLevel, "log-level", "", "log level (default "+app.DefaultLogLevel+")")
	flags.StringVarP(&o.mnemonic, "mnemonic", "m", "", "BIP39 mnemonic of the wallet (env "+app.EnvMnemonic+")")

	root.AddCommand(
		addressCmd(o),
		accountCmd(o),
		signCmd(o),
		verifyCmd(o),
		sendCmd(o),
		historyCmd(o),
		resendCmd(o),
		broadcastCmd(o),
		clearHistoryCmd(o),
		newMnemonicCmd(),
	)
	return root
}

func (o *options) keyring() (*zkeyring.Keyring, error) {
	if o.mnemonic == "" {
		return nil, errNoMnemonic
	}
	return zkeyring.FromMnemonic(o.mnemonic)
}

// wire builds the app, with the wallet's keyring if withKey is set.
func (o *options) wire(withKey bool) (*app.Wire, error) {
	if !withKey {
		return app.NewWire(o.cfg, nil)
	}
	kr, err := o.keyring()
	if err != nil {
		return nil, err
	}
	w, err := app.NewWire(o.cfg, kr)
	if err != nil {
		kr.Zero()
		return nil, err
	}
	return w, nil
}
