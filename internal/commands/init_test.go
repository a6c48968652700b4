package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/regnskap/internal/kpi"
	"github.com/cleared-dev/regnskap/internal/lines"
	"github.com/cleared-dev/regnskap/internal/mapping"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "regnskap-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "regnskap")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/regnskap")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runRegnskap(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestInit_CreatesFiles(t *testing.T) {
	dir := t.TempDir()
	out, err := runRegnskap(t, "init", dir, "--name", "Test AS", "--year", "2024")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Initialized engagement for Test AS 2024")

	for _, f := range []string{"regnskap.yaml", "regnskapslinjer.csv", "intervaller.csv", "kpi.csv", "overstyringer.csv"} {
		info, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "%s should exist", f)
		assert.False(t, info.IsDir())
	}
	info, err := os.Stat(filepath.Join(dir, "ut"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runRegnskap(t, "init", dir, "--name", "My Company", "--year", "2023")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "regnskap.yaml"))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: My Company")
	assert.Contains(t, contents, "year: 2023")
	assert.Contains(t, contents, "trial_balance: saldobalanse.csv")
}

func TestInit_Definitions(t *testing.T) {
	dir := t.TempDir()
	_, err := runRegnskap(t, "init", dir, "--name", "Test AS")
	require.NoError(t, err)

	svc, err := lines.Load(filepath.Join(dir, "regnskapslinjer.csv"), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, lines.DefaultDefinitions(), svc.All())

	rules, err := mapping.Load(filepath.Join(dir, "intervaller.csv"))
	require.NoError(t, err)
	assert.Equal(t, mapping.DefaultIntervals(), rules)

	kpis, err := kpi.Load(filepath.Join(dir, "kpi.csv"))
	require.NoError(t, err)
	assert.Len(t, kpis, len(kpi.DefaultDefinitions()))

	data, err := os.ReadFile(filepath.Join(dir, "overstyringer.csv"))
	require.NoError(t, err)
	assert.Equal(t, "konto;regnr;updated\n", string(data))
}

func TestInit_RequiresName(t *testing.T) {
	dir := t.TempDir()
	_, err := runRegnskap(t, "init", dir)
	require.Error(t, err, "init without --name should fail")
}

func TestInit_RefusesExisting(t *testing.T) {
	dir := t.TempDir()
	_, err := runRegnskap(t, "init", dir, "--name", "Test AS")
	require.NoError(t, err)

	out, err := runRegnskap(t, "init", dir, "--name", "Test AS")
	require.Error(t, err)
	assert.Contains(t, out, "already exists")
}

func TestVersion(t *testing.T) {
	out, err := runRegnskap(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "regnskap version dev")
}

func TestInit_Git(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available, skipping")
	}

	dir := t.TempDir()
	out, err := runRegnskap(t, "init", dir, "--name", "Test AS", "--year", "2024", "--git")
	require.NoError(t, err, out)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "ut/")

	out, err = runRegnskap(t, "override", "set", "8400", "200", "--repo", dir)
	require.NoError(t, err, out)

	log := exec.Command("git", "log", "--format=%s|%an")
	log.Dir = dir
	logOut, err := log.Output()
	require.NoError(t, err)
	assert.Equal(t, "override: 8400 -> 200|regnskap\ninit: Test AS 2024|regnskap\n", string(logOut))
}
