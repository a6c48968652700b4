package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTo_Levels(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewTo(&buf, "warn", FormatJSON)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewTo_DefaultsToInfoConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewTo(&buf, "", "")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())

	log.Info().Int("detail_level", 1).Msg("chain resolved")
	assert.Contains(t, buf.String(), "chain resolved")
	assert.Contains(t, buf.String(), "detail_level=1")
}

func TestNewTo_Invalid(t *testing.T) {
	_, err := NewTo(&bytes.Buffer{}, "loud", "")
	assert.Error(t, err)

	_, err = NewTo(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), NewWithWriter(&buf))

	log := FromContext(ctx)
	log.Info().Msg("test")
	assert.NotZero(t, buf.Len())
}

func TestFromContext_Default(t *testing.T) {
	log := FromContext(context.Background())
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}
