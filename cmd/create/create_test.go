package create

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofai/proofai-cli/cmd/cmdutils"
	"github.com/proofai/proofai-cli/config"
	"github.com/proofai/proofai-cli/internal/metadata"
)

func runCreate(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateAgent(t *testing.T) {
	f := cmdutils.NewFactory()
	dir := t.TempDir()

	out, err := runCreate(t, NewAgentCmd(f), "My Agent", "--dir", dir)
	require.NoError(t, err)

	projectDir := filepath.Join(dir, "my_agent")
	assert.Contains(t, out, "Created agent project in")
	assert.Contains(t, out, "main.py")
	assert.Contains(t, out, "Next steps:")
	assert.FileExists(t, filepath.Join(projectDir, "metadata.json"))
	assert.FileExists(t, filepath.Join(projectDir, "main.py"))

	// The scaffold must pass validation untouched.
	res, err := metadata.Validate(filepath.Join(projectDir, metadata.DescriptorName))
	require.NoError(t, err)
	assert.Equal(t, metadata.TypeAgent, res.Type)
	assert.Equal(t, "My Agent", res.Name)
}

func TestCreateModelHasNoStarterCode(t *testing.T) {
	f := cmdutils.NewFactory()
	dir := t.TempDir()

	_, err := runCreate(t, NewModelCmd(f), "Forecast Model", "--dir", dir)
	require.NoError(t, err)

	projectDir := filepath.Join(dir, "forecast_model")
	assert.FileExists(t, filepath.Join(projectDir, "metadata.json"))
	assert.NoFileExists(t, filepath.Join(projectDir, "main.py"))

	res, err := metadata.Validate(filepath.Join(projectDir, metadata.DescriptorName))
	require.NoError(t, err)
	assert.Equal(t, metadata.TypeModel, res.Type)
}

func TestCreateRequiresName(t *testing.T) {
	f := cmdutils.NewFactory()

	_, err := runCreate(t, NewDatasetCmd(f), "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset name is required")
}

func TestCreateRefusesExistingDirectory(t *testing.T) {
	f := cmdutils.NewFactory()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "my_agent"), 0o755))

	_, err := runCreate(t, NewAgentCmd(f), "My Agent", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateForceOverwrites(t *testing.T) {
	f := cmdutils.NewFactory()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "my_agent"), 0o755))

	_, err := runCreate(t, NewAgentCmd(f), "My Agent", "--dir", dir, "--force")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "my_agent", "metadata.json"))
}

func TestCreateJSONOutput(t *testing.T) {
	config.Global.JSON = true
	defer func() { config.Global = config.GlobalFlags{} }()

	f := cmdutils.NewFactory()
	dir := t.TempDir()

	out, err := runCreate(t, NewDatasetCmd(f), "Eval Set", "--dir", dir)
	require.NoError(t, err)

	var result createResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "DATASET", result.Type)
	assert.Equal(t, "Eval Set", result.Name)
	assert.Equal(t, filepath.Join(dir, "eval_set"), result.Dir)
	assert.Equal(t, []string{"metadata.json"}, result.Files)
}
