package main

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dotbitHQ/sub-account-custom-script/node/store"
)

type setReport struct {
	ID        string   `json:"id"`
	Label     string   `json:"label,omitempty"`
	Count     int      `json:"count"`
	ByteSize  int      `json:"byte_size,omitempty"`
	Witnesses []string `json:"witnesses,omitempty"`
}

func newStoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored witness sets",
	}
	cmd.AddCommand(newStorePutCmd(a), newStoreGetCmd(a), newStoreListCmd(a), newStoreRmCmd(a))
	return cmd
}

func (a *app) withStore(fn func(db *store.DB) error) error {
	db, err := a.openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func newStorePutCmd(a *app) *cobra.Command {
	var (
		label      string
		witnessHex []string
	)
	cmd := &cobra.Command{
		Use:   "put",
		Short: "Store a transaction's witnesses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			witnesses, err := decodeHexList(witnessHex, "witness")
			if err != nil {
				return err
			}
			return a.withStore(func(db *store.DB) error {
				id, err := db.PutWitnessSet(label, witnesses)
				if err != nil {
					return err
				}
				a.log.Info("witness set stored", zap.Stringer("id", id), zap.String("label", label), zap.Int("count", len(witnesses)))
				return writeJSON(cmd.OutOrStdout(), setReport{ID: id.String(), Label: label, Count: len(witnesses)})
			})
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "optional name for the set")
	cmd.Flags().StringArrayVar(&witnessHex, "witness", nil, "hex witness (repeat in order)")
	return cmd
}

func newStoreGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id|label>",
		Short: "Print a stored witness set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(db *store.DB) error {
				id, ok, err := db.Resolve(args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("witness set %q not found", args[0])
				}
				ws, ok, err := db.GetWitnessSet(id)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("witness set %s not found", id)
				}
				return writeJSON(cmd.OutOrStdout(), setReport{ID: id.String(), Count: len(ws), Witnesses: encodeHexList(ws)})
			})
		},
	}
}

func newStoreListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored witness sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(db *store.DB) error {
				sets, err := db.ListWitnessSets()
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), lo.Map(sets, func(s store.SetInfo, _ int) setReport {
					return setReport{ID: s.ID.String(), Label: s.Label, Count: s.Count, ByteSize: s.ByteSize}
				}))
			})
		},
	}
}

func newStoreRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id|label>",
		Short: "Delete a stored witness set and its labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(db *store.DB) error {
				id, ok, err := db.Resolve(args[0])
				if err != nil {
					return err
				}
				if ok {
					ok, err = db.DeleteWitnessSet(id)
					if err != nil {
						return err
					}
				}
				if !ok {
					return fmt.Errorf("witness set %q not found", args[0])
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), id.String())
				return err
			})
		},
	}
}
