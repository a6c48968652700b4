package kpi

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kpi.csv")
	require.NoError(t, Save(path, DefaultDefinitions()))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultDefinitions(), got)
}

func TestLoad_Testdata(t *testing.T) {
	got, err := Load("../../testdata/kpi.csv")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
