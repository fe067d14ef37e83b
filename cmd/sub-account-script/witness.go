package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotbitHQ/sub-account-custom-script/crypto"
	"github.com/dotbitHQ/sub-account-custom-script/script"
)

type witnessReport struct {
	Version    uint32 `json:"version"`
	Witness    string `json:"witness"`
	Body       string `json:"body"`
	Commitment string `json:"commitment"`
	SetID      string `json:"set_id,omitempty"`
}

func newWitnessCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "witness",
		Short: "Build fee-table witnesses and their commitments",
	}
	cmd.AddCommand(newWitnessBuildCmd(a), newWitnessCommitmentCmd())
	return cmd
}

func newWitnessBuildCmd(a *app) *cobra.Command {
	var (
		tablePath string
		version   uint32
		label     string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Encode a fee table as a tagged witness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadFeeTable(tablePath)
			if err != nil {
				return err
			}
			body := table.Encode()
			commitment := script.ComputeCommitment(crypto.CKBHasher{}, body)
			witness := script.BuildWitness(version, table)
			r := witnessReport{
				Version:    version,
				Witness:    hex.EncodeToString(witness),
				Body:       hex.EncodeToString(body),
				Commitment: hex.EncodeToString(commitment[:]),
			}

			if label != "" {
				db, err := a.openStore()
				if err != nil {
					return err
				}
				defer db.Close()
				id, err := db.PutWitnessSet(label, [][]byte{witness})
				if err != nil {
					return err
				}
				r.SetID = id.String()
			}
			return writeJSON(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().StringVar(&tablePath, "table", "", "fee table YAML (default: built-in table)")
	cmd.Flags().Uint32Var(&version, "version", 1, "witness version field")
	cmd.Flags().StringVar(&label, "store", "", "also store the witness as a one-element set under this label")
	return cmd
}

func newWitnessCommitmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commitment <witness-hex>",
		Short: "Print the commitment of a tagged witness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := decodeHex(args[0])
			if err != nil {
				return fmt.Errorf("witness: %w", err)
			}
			if len(blob) < script.WitnessHeaderBytes+script.WitnessVersionBytes {
				return fmt.Errorf("witness is %d bytes, shorter than its header", len(blob))
			}
			if string(blob[:script.WitnessHeaderBytes]) != string(script.WitnessHeader[:]) {
				return fmt.Errorf("witness does not start with %q", script.WitnessHeader[:])
			}
			body := blob[script.WitnessHeaderBytes+script.WitnessVersionBytes:]
			if _, err := script.DecodeFeeTable(body); err != nil {
				return err
			}
			c := script.ComputeCommitment(crypto.CKBHasher{}, body)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(c[:]))
			return err
		},
	}
}
