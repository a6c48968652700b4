package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newEngagement initializes an engagement and copies the sample trial
// balance into it.
func newEngagement(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runRegnskap(t, "init", dir, "--name", "Test AS", "--year", "2024")
	require.NoError(t, err, out)

	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "saldobalanse.csv"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "saldobalanse.csv"), data, 0o644))
	return dir
}

func TestBuild_WritesOutputs(t *testing.T) {
	dir := newEngagement(t)

	out, err := runRegnskap(t, "build", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Built statement for Test AS 2024")
	assert.Contains(t, out, "13 of 14 accounts mapped")

	for _, f := range []string{"oppstilling.csv", "detaljer_konto.csv", "detaljlinjer.csv", "kpi.csv", "umappet.csv", "regnskap.xlsx"} {
		_, err := os.Stat(filepath.Join(dir, "ut", f))
		assert.NoError(t, err, "%s should exist", f)
	}

	data, err := os.ReadFile(filepath.Join(dir, "ut", "oppstilling.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n280;Årsresultat;Resultat;4;6;0.00;45000.00;45000.00;=160-200\n")

	data, err = os.ReadFile(filepath.Join(dir, "ut", "umappet.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "8400;Gammel konto")
}

func TestBuild_UnmappedWarning(t *testing.T) {
	dir := newEngagement(t)

	out, err := runRegnskap(t, "build", "--repo", dir, "--format", "csv", "--log-format", "json")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"kind":"unmapped-accounts"`)
	assert.Contains(t, out, `"accounts":[8400]`)
	assert.Contains(t, out, `"build_id"`)

	_, err = os.Stat(filepath.Join(dir, "ut", "regnskap.xlsx"))
	assert.True(t, os.IsNotExist(err), "only csv was requested")
}

func TestBuild_Strict(t *testing.T) {
	dir := newEngagement(t)

	out, err := runRegnskap(t, "build", "--repo", dir, "--strict")
	require.Error(t, err)
	assert.Contains(t, out, "1 unmapped account(s): 8400")
}

func TestBuild_OverrideMakesStrictPass(t *testing.T) {
	dir := newEngagement(t)

	out, err := runRegnskap(t, "override", "set", "8400", "200", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Account 8400 -> line 200")

	out, err = runRegnskap(t, "build", "--repo", dir, "--strict", "--log-level", "error")
	require.NoError(t, err, out)
	assert.Contains(t, out, "14 of 14 accounts mapped")

	out, err = runRegnskap(t, "override", "list", "--repo", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "8400\t200")

	out, err = runRegnskap(t, "override", "rm", "8400", "--repo", dir)
	require.NoError(t, err, out)

	_, err = runRegnskap(t, "override", "rm", "8400", "--repo", dir)
	assert.Error(t, err)

	_, err = runRegnskap(t, "build", "--repo", dir, "--strict")
	assert.Error(t, err)
}

func TestBuild_NoConfig(t *testing.T) {
	out, err := runRegnskap(t, "build", "--repo", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "reading config")
}

func TestMap(t *testing.T) {
	dir := newEngagement(t)

	out, err := runRegnskap(t, "map", "--repo", dir, "--log-level", "error")
	require.NoError(t, err, out)
	assert.Contains(t, out, "KONTO")
	assert.Regexp(t, `1920\s+Bankinnskudd\s+655\s+`, out)
	assert.Contains(t, out, "1 unmapped account(s)")

	out, err = runRegnskap(t, "map", "--repo", dir, "--unmapped", "--log-level", "error")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "KONTO")
	assert.Contains(t, out, "8400")
}
