package app

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	DefaultNodeURL  = "213.14.138.127:8765"
	DefaultNetwork  = "pelmeni-3"
	DefaultLogLevel = "warn"

	EnvNode     = "ZWALLET_NODE"
	EnvNetwork  = "ZWALLET_NETWORK"
	EnvHome     = "ZWALLET_HOME"
	EnvMnemonic = "ZWALLET_MNEMONIC"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home     string // wallet directory, e.g. $HOME/.zwallet
	NodeURL  string // node address, e.g. http://127.0.0.1:8765
	Network  string // network name sent with every node request
	LogLevel string

	LogOutput  io.Writer             // optional; defaults to os.Stderr
	HTTP       *http.Client          // optional; defaults to http.DefaultClient
	Registerer prometheus.Registerer // optional; defaults to a fresh registry
}

// WithDefaults fills unset fields from the environment (via lookup, usually os.LookupEnv) and then from the built-in
// defaults.
func (c Config) WithDefaults(lookup func(string) (string, bool)) (Config, error) {
	fromEnv := func(field *string, key, def string) {
		if *field != "" {
			return
		}
		if v, ok := lookup(key); ok && v != "" {
			*field = v
			return
		}
		*field = def
	}

	fromEnv(&c.NodeURL, EnvNode, DefaultNodeURL)
	fromEnv(&c.Network, EnvNetwork, DefaultNetwork)
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	fromEnv(&c.Home, EnvHome, "")
	if c.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, err
		}
		c.Home = filepath.Join(dir, ".zwallet")
	}
	if c.LogOutput == nil {
		c.LogOutput = os.Stderr
	}
	return c, nil
}
