package node

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dotbitHQ/sub-account-custom-script/crypto"
	"github.com/dotbitHQ/sub-account-custom-script/molecule"
	"github.com/dotbitHQ/sub-account-custom-script/script"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func subAccount(label string) []byte {
	sa := &molecule.SubAccount{Suffix: []byte(".bit")}
	for _, r := range label {
		sa.Account = append(sa.Account, molecule.AccountChar{CharSetName: 2, Bytes: []byte(string(r))})
	}
	return sa.Encode()
}

func witnessJob(owner uint64, label string) Job {
	table := script.FeeTable{{Length: 1, New: 16_000_000, Renew: 8_000_000}}
	commitment := script.ComputeCommitment(crypto.CKBHasher{}, table.Encode())
	argv := script.EncodeArgs(&script.Args{
		Action:      script.ActionCreateSubAccount,
		Quote:       100,
		OwnerProfit: owner,
		Commitment:  &commitment,
		SubAccounts: []script.SubAccountArg{{ExpirationYears: 1, SubAccount: subAccount(label)}},
	})
	return Job{
		Argv:      argv,
		Witnesses: NewMemWitnessSource([][]byte{{0x00}, script.BuildWitness(1, table)}),
	}
}

func TestRunner_Accepts(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRunner(script.FeeTableFromWitness, zap.New(core))

	job := witnessJob(16_000_000_000_000, "a")
	out := r.Run(job.Argv, job.Witnesses)
	require.NoError(t, out.Err)
	require.Zero(t, out.ExitCode)
	require.NotEmpty(t, out.RunID)
	require.Equal(t, 1, out.Result.WitnessIndex)
	require.Equal(t, uint64(16_000_000_000_000), out.Result.TotalCKB)

	entries := logs.FilterMessage("validation accepted").All()
	require.Len(t, entries, 1)
	require.Equal(t, out.RunID, entries[0].ContextMap()["run_id"])
}

func TestRunner_RejectsWithExitCode(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRunner(script.FeeTableFromWitness, zap.New(core))

	job := witnessJob(1, "a")
	out := r.Run(job.Argv, job.Witnesses)
	require.Error(t, out.Err)
	require.Equal(t, script.ERR_INVALID_PROFIT.ExitCode(), out.ExitCode)
	require.Nil(t, out.Result)
	require.Equal(t, 1, logs.FilterMessage("validation rejected").Len())
}

func TestRunner_BuiltInTable(t *testing.T) {
	r := NewRunner(script.FeeTableBuiltIn, nil)
	argv := script.EncodeArgs(&script.Args{
		Action:      script.ActionRenewSubAccount,
		Quote:       1_000_000,
		OwnerProfit: 400_000_000,
		SubAccounts: []script.SubAccountArg{{ExpirationYears: 2, SubAccount: subAccount("abcd")}},
	})
	out := r.Run(argv, NewMemWitnessSource(nil))
	require.NoError(t, out.Err)
	require.Equal(t, -1, out.Result.WitnessIndex)
	// 2e6 USD units per year for 4 chars, two years, at 1 USD per CKB.
	require.Equal(t, uint64(400_000_000), out.Result.TotalCKB)
}

func TestRunner_RunBatchKeepsOrder(t *testing.T) {
	r := NewRunner(script.FeeTableFromWitness, nil)
	jobs := make([]Job, 0, 16)
	for i := 0; i < 16; i++ {
		owner := uint64(16_000_000_000_000)
		if i%2 == 1 {
			owner = 1
		}
		jobs = append(jobs, witnessJob(owner, "z"))
	}

	outs, err := r.RunBatch(context.Background(), jobs, 4)
	require.NoError(t, err)
	require.Len(t, outs, len(jobs))
	for i, out := range outs {
		if i%2 == 1 {
			require.Equal(t, script.ERR_INVALID_PROFIT.ExitCode(), out.ExitCode, "job %d", i)
		} else {
			require.Zero(t, out.ExitCode, "job %d", i)
		}
	}
}

func TestRunner_RunBatchCanceled(t *testing.T) {
	r := NewRunner(script.FeeTableFromWitness, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RunBatch(ctx, []Job{witnessJob(1, "a")}, 2)
	require.ErrorIs(t, err, context.Canceled)
}
