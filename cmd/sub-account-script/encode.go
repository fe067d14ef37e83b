package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotbitHQ/sub-account-custom-script/molecule"
	"github.com/dotbitHQ/sub-account-custom-script/script"
)

// Character set ids as registered on-chain.
const (
	charSetEmoji uint32 = 0
	charSetDigit uint32 = 1
	charSetEn    uint32 = 2
)

func charSetOf(r rune) uint32 {
	switch {
	case r >= '0' && r <= '9':
		return charSetDigit
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-':
		return charSetEn
	default:
		return charSetEmoji
	}
}

// accountChars splits label into one AccountChar per rune.
func accountChars(label string) molecule.AccountChars {
	chars := make(molecule.AccountChars, 0, len(label))
	for _, r := range label {
		chars = append(chars, molecule.AccountChar{CharSetName: charSetOf(r), Bytes: []byte(string(r))})
	}
	return chars
}

func newEncodeCmd(_ *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode sub-account records and argument vectors",
	}
	cmd.AddCommand(newEncodeSubAccountCmd(), newEncodeArgsCmd())
	return cmd
}

func newEncodeSubAccountCmd() *cobra.Command {
	var (
		sa      molecule.SubAccount
		account string
		suffix  string
	)
	cmd := &cobra.Command{
		Use:   "sub-account",
		Short: "Encode a SubAccount record as hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if account == "" {
				return fmt.Errorf("--account is required")
			}
			sa.Account = accountChars(account)
			sa.Suffix = []byte(suffix)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(sa.Encode()))
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&account, "account", "", "account label without suffix")
	f.StringVar(&suffix, "suffix", ".bit", "parent account suffix")
	f.Uint64Var(&sa.RegisteredAt, "registered-at", 0, "registration timestamp")
	f.Uint64Var(&sa.ExpiredAt, "expired-at", 0, "expiry timestamp")
	f.Uint64Var(&sa.Nonce, "nonce", 0, "record nonce")
	return cmd
}

// parseEntry parses "<years>:<sub-account hex>".
func parseEntry(s string) (script.SubAccountArg, error) {
	yearsStr, saHex, ok := strings.Cut(s, ":")
	if !ok {
		return script.SubAccountArg{}, fmt.Errorf("entry %q: want <years>:<hex>", s)
	}
	years, err := strconv.ParseUint(yearsStr, 10, 32)
	if err != nil {
		return script.SubAccountArg{}, fmt.Errorf("entry %q: years: %w", s, err)
	}
	sa, err := decodeHex(saHex)
	if err != nil {
		return script.SubAccountArg{}, fmt.Errorf("entry %q: %w", s, err)
	}
	return script.SubAccountArg{ExpirationYears: uint32(years), SubAccount: sa}, nil
}

func newEncodeArgsCmd() *cobra.Command {
	var (
		args          script.Args
		action        string
		commitmentHex string
		entries       []string
	)
	cmd := &cobra.Command{
		Use:   "args",
		Short: "Encode an argument vector as a list of hex strings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args.Action = script.Action(action)
			if commitmentHex != "" {
				c, err := decodeHex(commitmentHex)
				if err != nil {
					return fmt.Errorf("commitment: %w", err)
				}
				if len(c) != script.CommitmentBytes {
					return fmt.Errorf("commitment is %d bytes, want %d", len(c), script.CommitmentBytes)
				}
				var fixed [script.CommitmentBytes]byte
				copy(fixed[:], c)
				args.Commitment = &fixed
			}
			for _, e := range entries {
				sa, err := parseEntry(e)
				if err != nil {
					return err
				}
				args.SubAccounts = append(args.SubAccounts, sa)
			}
			return writeJSON(cmd.OutOrStdout(), encodeHexList(script.EncodeArgs(&args)))
		},
	}
	f := cmd.Flags()
	f.StringVar(&action, "action", string(script.ActionCreateSubAccount), "action name")
	f.Uint64Var(&args.Quote, "quote", 0, "USD per CKB scaled by 1e6")
	f.Uint64Var(&args.OwnerProfit, "owner-profit", 0, "owner profit in shannon")
	f.Uint64Var(&args.DasProfit, "das-profit", 0, "DAS profit in shannon")
	f.StringVar(&commitmentHex, "commitment", "", "10-byte witness commitment (hex); omit for the built-in table")
	f.StringArrayVar(&entries, "entry", nil, "<years>:<sub-account hex> (repeat)")
	return cmd
}
