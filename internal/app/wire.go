// Package app builds the wallet's dependency graph from a Config.
package app

import (
	"net/http"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ziesha-network/zwallet/internal/history"
	"github.com/ziesha-network/zwallet/internal/logging"
	"github.com/ziesha-network/zwallet/internal/metrics"
	"github.com/ziesha-network/zwallet/internal/node"
	"github.com/ziesha-network/zwallet/internal/wallet"
	"github.com/ziesha-network/zwallet/zkeyring"
)

// Wire bundles the stores, clients and services used by the CLI.
type Wire struct {
	Config  Config
	Logger  logging.Logger
	Metrics *metrics.Metrics
	Node    *node.Client
	History *history.FileStore
	Keyring *zkeyring.Keyring // nil if no keyring was supplied
	Wallet  *wallet.Service   // nil if no keyring was supplied
}

// NewWire constructs the dependency graph from cfg. Commands that do not need a key (e.g. verification) pass a nil
// keyring.
func NewWire(cfg Config, kr *zkeyring.Keyring) (*Wire, error) {
	logger, err := logging.NewLogger(cfg.LogOutput, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	registerer := cfg.Registerer
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	m, err := metrics.New(registerer)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	w := &Wire{
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
		Node:    node.NewClient(cfg.NodeURL, cfg.Network, httpClient, logger, m),
		History: history.NewFileStore(filepath.Join(cfg.Home, "history")),
	}
	if kr != nil {
		w.Keyring = kr.WithMetrics(m)
		w.Wallet = wallet.New(w.Node, w.History, w.Keyring, logger)
	}
	return w, nil
}
