package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckClean(t *testing.T) {
	stdout, _, err := executeCommand(t, "check", filepath.Join("testdata", "src", "lib.rs"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ 2 item(s) in 1 file(s) expand cleanly")
}

func TestCheckCleanJSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "--format", "json", "check", filepath.Join("testdata", "src", "lib.rs"))
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, CheckResult{Files: 1, Items: 2}, resp.Data)
}

func TestCheckReportsFailures(t *testing.T) {
	stdout, _, err := executeCommand(t, "check", filepath.Join("testdata", "src"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, stdout, "broken.rs:2:11: error[E202]: expected at least one parameter")
	assert.Contains(t, stdout, "broken.rs:5:14: error[E202]: unexpected self receiver")
	assert.Contains(t, stdout, "broken.rs:7:1: error[E201]: unexpected attr(s)")
	assert.Contains(t, stdout, "broken.rs:11:1: error[E201]: expected `fn`")
	assert.Contains(t, stdout, "✗ 4 item(s) failed to expand")
}

func TestCheckFailuresJSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "--format", "json", "check", filepath.Join("testdata", "src", "nested", "broken.rs"))
	require.Error(t, err)

	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code    string            `json:"code"`
			Message string            `json:"message"`
			Details []CheckDiagnostic `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E202", resp.Error.Code)
	require.Len(t, resp.Error.Details, 4)

	first := resp.Error.Details[0]
	assert.Equal(t, "nothing", first.Item)
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, 11, first.Column)
	assert.Equal(t, "expected at least one parameter", first.Message)

	assert.Equal(t, "E201", resp.Error.Details[2].Code)
	assert.Equal(t, "unexpected attr(s)", resp.Error.Details[2].Message)
}
