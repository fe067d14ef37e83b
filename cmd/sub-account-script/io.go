package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/dotbitHQ/sub-account-custom-script/molecule"
	"github.com/dotbitHQ/sub-account-custom-script/script"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	return hex.DecodeString(s)
}

func decodeHexList(items []string, what string) ([][]byte, error) {
	out := make([][]byte, len(items))
	for i, s := range items {
		b, err := decodeHex(s)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", what, i, err)
		}
		out[i] = b
	}
	return out, nil
}

func encodeHexList(items [][]byte) []string {
	return lo.Map(items, func(b []byte, _ int) string { return hex.EncodeToString(b) })
}

// feeTableEntry is one row of a fee-table YAML file. Prices are USD scaled by 1e6.
type feeTableEntry struct {
	Length uint8  `yaml:"length"`
	New    uint64 `yaml:"new"`
	Renew  uint64 `yaml:"renew"`
}

// loadFeeTable reads a fee table from YAML, or returns the built-in table when
// path is empty.
func loadFeeTable(path string) (script.FeeTable, error) {
	if path == "" {
		return script.DefaultFeeTable(), nil
	}
	raw, err := os.ReadFile(path) // #nosec G304 -- operator-supplied file.
	if err != nil {
		return nil, fmt.Errorf("read fee table: %w", err)
	}
	var entries []feeTableEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse fee table %s: %w", path, err)
	}
	table := script.FeeTable(lo.Map(entries, func(e feeTableEntry, _ int) molecule.PriceConfig {
		return molecule.PriceConfig{Length: e.Length, New: e.New, Renew: e.Renew}
	}))
	if err := script.ValidateFeeTable(table); err != nil {
		return nil, err
	}
	return table, nil
}
