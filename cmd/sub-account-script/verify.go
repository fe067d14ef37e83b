package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotbitHQ/sub-account-custom-script/node"
)

func newVerifyCmd(a *app) *cobra.Command {
	var (
		argHex     []string
		witnessHex []string
		setRef     string
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Validate one transaction's arguments against its witnesses",
		Long: "verify runs the fee check on a raw argument vector. Witnesses come either from\n" +
			"repeated --witness flags or from a stored set (--set id|label).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			argv, err := decodeHexList(argHex, "arg")
			if err != nil {
				return err
			}
			witnesses, err := a.loadWitnesses(witnessHex, setRef)
			if err != nil {
				return err
			}

			out := a.runner().Run(argv, node.NewMemWitnessSource(witnesses))
			if err := writeJSON(cmd.OutOrStdout(), newVerifyReport(out)); err != nil {
				return err
			}
			if out.Err != nil {
				return &exitError{code: out.ExitCode, err: out.Err}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&argHex, "arg", nil, "hex argument (repeat in order)")
	cmd.Flags().StringArrayVar(&witnessHex, "witness", nil, "hex witness (repeat in order)")
	cmd.Flags().StringVar(&setRef, "set", "", "stored witness set id or label")
	cmd.MarkFlagsMutuallyExclusive("witness", "set")
	return cmd
}

// loadWitnesses decodes inline witnesses or fetches a stored set.
func (a *app) loadWitnesses(witnessHex []string, setRef string) ([][]byte, error) {
	if setRef == "" {
		return decodeHexList(witnessHex, "witness")
	}
	db, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	id, ok, err := db.Resolve(setRef)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("witness set %q not found", setRef)
	}
	ws, ok, err := db.GetWitnessSet(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("witness set %s not found", id)
	}
	return ws, nil
}
