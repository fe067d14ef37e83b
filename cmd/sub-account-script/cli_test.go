package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dotbitHQ/sub-account-custom-script/script"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return cliResult{code: code, stdout: out.String(), stderr: errOut.String()}
}

func decodeOut[T any](t *testing.T, r cliResult) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &v), "stdout=%s stderr=%s", r.stdout, r.stderr)
	return v
}

func writeTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- length: 1\n  new: 16000000\n  renew: 8000000\n"), 0o600))
	return path
}

// fixture builds a one-record create transaction paying owner shannon.
func fixture(t *testing.T, dataDir string, owner string) (args []string, witness string) {
	t.Helper()
	built := runCLI(t, "", "--data-dir", dataDir, "witness", "build", "--table", writeTable(t))
	require.Zero(t, built.code, built.stderr)
	w := decodeOut[witnessReport](t, built)

	sa := runCLI(t, "", "--data-dir", dataDir, "encode", "sub-account", "--account", "a")
	require.Zero(t, sa.code, sa.stderr)

	enc := runCLI(t, "", "--data-dir", dataDir, "encode", "args",
		"--quote", "100", "--owner-profit", owner, "--commitment", w.Commitment,
		"--entry", "1:"+strings.TrimSpace(sa.stdout))
	require.Zero(t, enc.code, enc.stderr)
	return decodeOut[[]string](t, enc), w.Witness
}

func verifyArgs(dataDir string, args []string, extra ...string) []string {
	out := []string{"--data-dir", dataDir, "verify"}
	for _, a := range args {
		out = append(out, "--arg", a)
	}
	return append(out, extra...)
}

func TestPriceCmd(t *testing.T) {
	r := runCLI(t, "", "--data-dir", t.TempDir(), "price", "--length", "3", "--years", "2", "--quote", "500000")
	require.Zero(t, r.code, r.stderr)
	p := decodeOut[priceReport](t, r)
	require.Equal(t, "8.000000", p.USD)
	// 8 USD at 0.5 USD per CKB.
	require.Equal(t, uint64(1_600_000_000), p.Shannon)
	require.Equal(t, "16.00000000", p.CKB)
}

func TestPriceCmd_GetPriceRejected(t *testing.T) {
	r := runCLI(t, "", "--data-dir", t.TempDir(), "price", "--action", "get_price")
	require.Equal(t, 2, r.code)
	require.Contains(t, r.stderr, string(script.ERR_ACTION_NOT_SUPPORTED))
}

func TestVerifyCmd_AcceptAndReject(t *testing.T) {
	dataDir := t.TempDir()

	args, witness := fixture(t, dataDir, "16000000000000")
	r := runCLI(t, "", verifyArgs(dataDir, args, "--witness", "00", "--witness", witness)...)
	require.Zero(t, r.code, r.stderr)
	rep := decodeOut[verifyReport](t, r)
	require.True(t, rep.Ok)
	require.Equal(t, "160000.00000000", rep.TotalCKB)
	require.NotNil(t, rep.WitnessIndex)
	require.Equal(t, 1, *rep.WitnessIndex)
	require.Len(t, rep.Records, 1)
	require.Equal(t, "a", rep.Records[0].Account)

	args, witness = fixture(t, dataDir, "16000000000")
	r = runCLI(t, "", verifyArgs(dataDir, args, "--witness", witness)...)
	require.Equal(t, int(script.ERR_INVALID_PROFIT.ExitCode()), r.code)
	rep = decodeOut[verifyReport](t, r)
	require.False(t, rep.Ok)
	require.Equal(t, string(script.ERR_INVALID_PROFIT), rep.Code)
}

func TestVerifyCmd_MissingWitness(t *testing.T) {
	dataDir := t.TempDir()
	args, _ := fixture(t, dataDir, "16000000000000")
	r := runCLI(t, "", verifyArgs(dataDir, args, "--witness", "00")...)
	require.Equal(t, int(script.ERR_CAN_NOT_FIND_WITNESS.ExitCode()), r.code)
}

func TestVerifyCmd_FromStoredSet(t *testing.T) {
	dataDir := t.TempDir()
	args, witness := fixture(t, dataDir, "16000000000000")

	put := runCLI(t, "", "--data-dir", dataDir, "store", "put", "--label", "tx1", "--witness", witness)
	require.Zero(t, put.code, put.stderr)
	stored := decodeOut[setReport](t, put)

	r := runCLI(t, "", verifyArgs(dataDir, args, "--set", "tx1")...)
	require.Zero(t, r.code, r.stderr)

	got := runCLI(t, "", "--data-dir", dataDir, "store", "get", stored.ID)
	require.Zero(t, got.code, got.stderr)
	require.Equal(t, []string{witness}, decodeOut[setReport](t, got).Witnesses)

	list := runCLI(t, "", "--data-dir", dataDir, "store", "list")
	require.Zero(t, list.code, list.stderr)
	sets := decodeOut[[]setReport](t, list)
	require.Len(t, sets, 1)
	require.Equal(t, "tx1", sets[0].Label)

	rm := runCLI(t, "", "--data-dir", dataDir, "store", "rm", "tx1")
	require.Zero(t, rm.code, rm.stderr)
	r = runCLI(t, "", verifyArgs(dataDir, args, "--set", "tx1")...)
	require.Equal(t, 2, r.code)
}

func TestVerifyCmd_BuiltInTable(t *testing.T) {
	dataDir := t.TempDir()
	sa := runCLI(t, "", "encode", "sub-account", "--account", "abcde")
	require.Zero(t, sa.code, sa.stderr)
	enc := runCLI(t, "", "encode", "args", "--action", "renew_sub_account",
		"--quote", "1000000", "--owner-profit", "100000000",
		"--entry", "1:"+strings.TrimSpace(sa.stdout))
	require.Zero(t, enc.code, enc.stderr)

	r := runCLI(t, "", verifyArgs(dataDir, decodeOut[[]string](t, enc), "--fee-table", "builtin")...)
	require.Zero(t, r.code, r.stderr)
	rep := decodeOut[verifyReport](t, r)
	require.Nil(t, rep.WitnessIndex)
	require.Equal(t, "1.00000000", rep.TotalCKB)
}

func TestWitnessCommitmentCmd(t *testing.T) {
	built := runCLI(t, "", "witness", "build")
	require.Zero(t, built.code, built.stderr)
	w := decodeOut[witnessReport](t, built)

	r := runCLI(t, "", "witness", "commitment", w.Witness)
	require.Zero(t, r.code, r.stderr)
	require.Equal(t, w.Commitment, strings.TrimSpace(r.stdout))

	r = runCLI(t, "", "witness", "commitment", "00")
	require.Equal(t, 2, r.code)
}

func TestExecCmd(t *testing.T) {
	dataDir := t.TempDir()
	good, witness := fixture(t, dataDir, "16000000000000")
	bad, _ := fixture(t, dataDir, "1")

	var in bytes.Buffer
	enc := json.NewEncoder(&in)
	require.NoError(t, enc.Encode(Request{Op: "verify", Args: good, Witnesses: []string{witness}}))
	require.NoError(t, enc.Encode(Request{Op: "price", Action: "create_sub_account", Length: 2, Years: 1, Quote: 1_000_000}))
	require.NoError(t, enc.Encode(Request{Op: "verify", Args: bad, Witnesses: []string{witness}}))
	require.NoError(t, enc.Encode(Request{Op: "mine"}))

	r := runCLI(t, in.String(), "--data-dir", dataDir, "exec", "--workers", "2")
	require.Zero(t, r.code, r.stderr)

	dec := json.NewDecoder(strings.NewReader(r.stdout))
	var resps []Response
	for dec.More() {
		var resp Response
		require.NoError(t, dec.Decode(&resp))
		resps = append(resps, resp)
	}
	require.Len(t, resps, 4)
	require.True(t, resps[0].Ok)
	require.True(t, resps[1].Ok)
	require.Equal(t, uint64(800_000_000), resps[1].Price.Shannon)
	require.False(t, resps[2].Ok)
	require.Equal(t, script.ERR_INVALID_PROFIT.ExitCode(), resps[2].Verify.ExitCode)
	require.Contains(t, resps[3].Err, "unknown op")
}

func TestConfigFlagValidation(t *testing.T) {
	r := runCLI(t, "", "--log-level", "loud", "price")
	require.Equal(t, 2, r.code)
	require.Contains(t, r.stderr, "log_level")
}
