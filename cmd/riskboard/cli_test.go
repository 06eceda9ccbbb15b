package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-riskboard/pkg/testsupport"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func applicantArgs() []string {
	return []string{
		"--set", "int_rate=13.99",
		"--set", "term=36",
		"--set", "dti=18.5",
		"--set", "fico_range_high=720",
		"--set", "acc_open_past_24mths=2",
		"--set", "mo_sin_old_rev_tl_op=60",
		"--set", "bc_open_to_buy=4000",
		"--set", "mort_acc=1",
		"--set", "total_bc_limit=12000",
		"--set", "avg_cur_bal=8500",
		"--set", "open_rv_24m=1",
	}
}

func TestScoreCommand(t *testing.T) {
	stub := testsupport.NewStubScoringServer(t, testsupport.Probability(0.342))

	args := append([]string{"score", "--endpoint", stub.Endpoint()}, applicantArgs()...)
	out, err := runCLI(t, args...)
	require.NoError(t, err)
	assert.Equal(t, "Default probability: 34% (Moderate risk)\n", out)
	require.Equal(t, 1, stub.Calls())
	assert.Equal(t, 8500.0, stub.Payloads()[0]["avg_cur_bal"])
}

func TestScoreCommand_JSON(t *testing.T) {
	stub := testsupport.NewStubScoringServer(t, testsupport.Probability(0.75))

	args := append([]string{"score", "--json", "--endpoint", stub.Endpoint()}, applicantArgs()...)
	out, err := runCLI(t, args...)
	require.NoError(t, err)

	var got struct {
		DefaultProbability float64 `json:"default_probability"`
		Gauge              struct {
			Percent int    `json:"percent"`
			Bucket  string `json:"bucket"`
			Color   string `json:"color"`
		} `json:"gauge"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 0.75, got.DefaultProbability)
	assert.Equal(t, 75, got.Gauge.Percent)
	assert.Equal(t, "high", got.Gauge.Bucket)
	assert.Equal(t, "#ef4444", got.Gauge.Color)
}

func TestScoreCommand_InvalidInput(t *testing.T) {
	stub := testsupport.NewStubScoringServer(t)

	_, err := runCLI(t, "score", "--endpoint", stub.Endpoint(), "--set", "int_rate=41")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Interest Rate (%) cannot be greater than 40.")
	assert.Contains(t, err.Error(), "Term (Months) is required.")
	assert.Equal(t, 0, stub.Calls())

	_, err = runCLI(t, "score", "--endpoint", stub.Endpoint(), "--set", "int_rate")
	assert.ErrorIs(t, err, errBadAssignment)

	_, err = runCLI(t, "score", "--endpoint", stub.Endpoint(), "--set", "annual_inc=1")
	assert.ErrorIs(t, err, errUnknownField)
}

func TestScoreCommand_ServiceFailure(t *testing.T) {
	stub := testsupport.NewStubScoringServer(t, testsupport.ScoringResponse{Status: 500, Body: `{"detail":"down"}`})

	args := append([]string{"score", "--endpoint", stub.Endpoint()}, applicantArgs()...)
	_, err := runCLI(t, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error")
}

func TestFieldsCommand(t *testing.T) {
	out, err := runCLI(t, "fields")
	require.NoError(t, err)
	assert.Contains(t, out, "fico_range_high")
	assert.Contains(t, out, "FICO Range High")
	assert.Contains(t, out, "850")
}

func TestRootCommand_RejectsBadConfig(t *testing.T) {
	_, err := runCLI(t, "fields", "--endpoint", "not a url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint")
}
