package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fstophq/fstop-cli/pkg/models"
)

func TestResolveSettingDefaults(t *testing.T) {
	settings := models.NewSettings()

	tests := []struct {
		key      string
		expected any
	}{
		{models.KeyTheme, "dark"},
		{models.KeyLanguage, "en"},
		{models.KeyCheckUpdates, true},
		{models.KeyProcessingEngine, models.EngineAuto},
		{models.KeyPreferDiscreteGPU, true},
		{models.KeyAIProvider, models.ProviderNone},
		{models.KeyAutoTag, false},
		{models.KeyAdjustmentVisibility + ".grain", true},
		{models.KeyAdjustmentVisibility + ".color_calibration", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := resolveSetting(settings, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveSettingStoredValueWins(t *testing.T) {
	settings := models.NewSettings().
		With(models.KeyTheme, "light").
		With(models.KeyProcessingEngine, models.EngineCPU)

	got, err := resolveSetting(settings, models.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", got)

	got, err = resolveSetting(settings, models.KeyProcessingEngine)
	require.NoError(t, err)
	assert.Equal(t, models.EngineCPU, got)
}

func TestResolveSettingUnknownKey(t *testing.T) {
	_, err := resolveSetting(models.NewSettings(), "general.bogus")
	assert.Error(t, err)

	_, err = resolveSetting(models.NewSettings(), models.KeyAdjustmentVisibility+".bokeh")
	assert.Error(t, err)
}

func TestResolveSettingNormalizesShortcuts(t *testing.T) {
	settings := models.NewSettings().
		With(models.KeyTaggingShortcuts, []string{"Street", "landscape", "street "})

	got, err := resolveSetting(settings, models.KeyTaggingShortcuts)
	require.NoError(t, err)
	assert.Equal(t, []string{"landscape", "street"}, got)
}

func TestFormatSettingValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"string", "dark", "dark"},
		{"empty string", "", `""`},
		{"bool", true, "true"},
		{"string slice", []string{"landscape", "portrait"}, "landscape, portrait"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatSettingValue(tt.value))
		})
	}
}
