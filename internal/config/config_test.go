package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test AS", 2024)
	cfg.Client.OrgNumber = "999888777"
	cfg.Build.Strict = true
	cfg.Sources.Format = "xlsx"
	cfg.Git.AutoCommit = true

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company", 2025)

	assert.Equal(t, "My Company", cfg.Client.Name)
	assert.Equal(t, 2025, cfg.Year)
	assert.Equal(t, "saldobalanse.csv", cfg.Sources.TrialBalance)
	assert.Equal(t, "regnskapslinjer.csv", cfg.Sources.Lines)
	assert.False(t, cfg.Build.Strict)
	assert.True(t, cfg.Build.ApplyResultSign)
	assert.Equal(t, []string{"csv", "xlsx"}, cfg.Output.Formats)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Sources.Format)
	assert.False(t, cfg.Git.AutoCommit)
	assert.Equal(t, "regnskap", cfg.Git.AuthorName)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("year: [1"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test AS", 2024)
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test AS")
	assert.Contains(t, contents, "year: 2024")
	assert.Contains(t, contents, "trial_balance: saldobalanse.csv")
	assert.Contains(t, contents, "apply_result_sign: true")
	assert.NotContains(t, contents, "org_number")
}

func TestResolve(t *testing.T) {
	root := filepath.Join(t.TempDir(), "klient")
	cfg := Default("Test AS", 2024)
	cfg.Sources.KPIs = ""
	cfg.Sources.Intervals = filepath.Join(string(filepath.Separator), "delt", "intervaller.csv")

	got := cfg.Resolve(root)
	assert.Equal(t, filepath.Join(root, "saldobalanse.csv"), got.Sources.TrialBalance)
	assert.Equal(t, cfg.Sources.Intervals, got.Sources.Intervals)
	assert.Empty(t, got.Sources.KPIs)
	assert.Equal(t, filepath.Join(root, "ut"), got.Output.Dir)
	assert.Equal(t, "saldobalanse.csv", cfg.Sources.TrialBalance, "Resolve must not modify the receiver")
}
