package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestExpandToStdout(t *testing.T) {
	stdout, _, err := executeCommand(t, "expand", filepath.Join("testdata", "src", "lib.rs"))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "lib.rs", []byte(stdout))
}

func TestExpandIsDeterministic(t *testing.T) {
	path := filepath.Join("testdata", "src", "lib.rs")
	first, _, err := executeCommand(t, "expand", path)
	require.NoError(t, err)
	second, _, err := executeCommand(t, "expand", path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpandWrite(t *testing.T) {
	dir := t.TempDir()
	src, err := os.ReadFile(filepath.Join("testdata", "src", "lib.rs"))
	require.NoError(t, err)
	target := filepath.Join(dir, "lib.rs")
	require.NoError(t, os.WriteFile(target, src, 0o644))

	stdout, _, err := executeCommand(t, "expand", "--write", target)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Expanded 2 item(s) in 1 file(s)")

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("testdata", "golden", "lib.rs.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(written))
}

func TestExpandOutputDirectory(t *testing.T) {
	outDir := t.TempDir()

	_, _, err := executeCommand(t, "expand", "-o", outDir, filepath.Join("testdata", "src"))
	require.Error(t, err, "broken.rs has failing items")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, err = os.Stat(filepath.Join(outDir, "lib.rs"))
	assert.NoError(t, err)

	broken, err := os.ReadFile(filepath.Join(outDir, "nested", "broken.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(broken), `::core::compile_error! { "expected at least one parameter" }`)
	assert.Contains(t, string(broken), `::core::compile_error! { "unexpected self receiver" }`)
	assert.Contains(t, string(broken), `::core::compile_error! { "unexpected attr(s)" }`)
	assert.Contains(t, string(broken), "::core::compile_error! { \"expected `fn`\" }")
	assert.NotContains(t, string(broken), "fn nothing")
}

func TestExpandFailuresGoToStderr(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "expand", filepath.Join("testdata", "src", "nested", "broken.rs"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, stderr, "broken.rs:2:11: error[E202]: expected at least one parameter")
	assert.Contains(t, stderr, "broken.rs:5:14: error[E202]: unexpected self receiver")
	assert.Contains(t, stdout, "compile_error!")
}

func TestExpandJSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "--format", "json", "expand", filepath.Join("testdata", "src", "lib.rs"))
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ExpandResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Items)
	assert.Equal(t, 0, resp.Data.Failed)
	require.Len(t, resp.Data.Files, 1)
	require.Len(t, resp.Data.Files[0].Items, 2)
	assert.Equal(t, "push", resp.Data.Files[0].Items[0].Name)
	assert.Equal(t, "describe", resp.Data.Files[0].Items[1].Name)
	assert.NotEmpty(t, resp.Data.Files[0].Items[0].ExpansionID)
}

func TestExpandWriteAndOutputConflict(t *testing.T) {
	_, _, err := executeCommand(t, "expand", "--write", "-o", t.TempDir(), filepath.Join("testdata", "src", "lib.rs"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestExpandMissingPath(t *testing.T) {
	stdout, _, err := executeCommand(t, "expand", filepath.Join("testdata", "nope.rs"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E005]")
}

func TestExpandWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "asmethod.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("attribute: method\ntype_param_prefix: GEN\nallow_lint: false\nindent_width: 2\n"), 0o644))
	srcPath := filepath.Join(dir, "lib.rs")
	require.NoError(t, os.WriteFile(srcPath, []byte("#[method]\nfn show(v: impl Display) {}\n"), 0o644))

	stdout, _, err := executeCommand(t, "--config", cfgPath, "expand", srcPath)
	require.NoError(t, err)

	want := "fn show<GEN0: Display>(v: GEN0) {}\n" +
		"\n" +
		"trait show<GEN0> {\n" +
		"  fn show(self);\n" +
		"}\n" +
		"\n" +
		"impl<GEN0: Display> show<GEN0> for GEN0 {\n" +
		"  fn show(self) {\n" +
		"    show(self)\n" +
		"  }\n" +
		"}\n"
	assert.Equal(t, want, stdout)
}

func TestExpandBadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "asmethod.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("indent_width: 0\n"), 0o644))

	stdout, _, err := executeCommand(t, "--config", cfgPath, "expand", filepath.Join("testdata", "src", "lib.rs"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E008]")
}
