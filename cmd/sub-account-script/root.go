package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dotbitHQ/sub-account-custom-script/node"
	"github.com/dotbitHQ/sub-account-custom-script/node/store"
)

type app struct {
	configPath string
	dataDir    string
	logLevel   string
	feeTable   string

	cfg node.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:           "sub-account-script",
		Short:         "Validate sub-account registration fees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&a.dataDir, "data-dir", "", "witness store directory (overrides config)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")
	pf.StringVar(&a.feeTable, "fee-table", "", "witness|builtin (overrides config)")

	root.AddCommand(
		newVerifyCmd(a),
		newExecCmd(a),
		newPriceCmd(a),
		newWitnessCmd(a),
		newEncodeCmd(a),
		newStoreCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := node.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = a.dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("fee-table") {
		cfg.FeeTable = a.feeTable
	}
	if err := node.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log, err := node.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) runner() *node.Runner {
	return node.NewRunner(a.cfg.FeeTableSource(), a.log)
}

func (a *app) openStore() (*store.DB, error) {
	db, err := store.Open(a.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open witness store: %w", err)
	}
	return db, nil
}
