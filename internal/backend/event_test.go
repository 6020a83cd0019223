package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hytide/launcher/internal/apperr"
	"github.com/hytide/launcher/internal/model"
)

func TestDecodeProgress(t *testing.T) {
	payload := map[string]any{
		"stage":       "downloading",
		"percent":     float64(42),
		"message":     "Downloading game files...",
		"currentFile": "assets/world.pak",
		"speed":       "2.4MB/s",
		"downloaded":  float64(1048576),
		"total":       float64(5242880),
	}

	p := DecodeProgress(payload)
	assert.Equal(t, model.StageDownloading, p.Stage)
	assert.Equal(t, 42, p.Percent)
	assert.Equal(t, "Downloading game files...", p.Message)
	assert.Equal(t, "assets/world.pak", p.CurrentFile)
	assert.Equal(t, "2.4MB/s", p.Speed)
	assert.Equal(t, int64(1048576), p.Downloaded)
	assert.Equal(t, int64(5242880), p.Total)
}

func TestDecodeProgressDefaultsMissingFields(t *testing.T) {
	p := DecodeProgress(map[string]any{})
	assert.Equal(t, model.StageIdle, p.Stage)
	assert.Equal(t, 0, p.Percent)
	assert.Empty(t, p.Message)
	assert.Zero(t, p.Downloaded)
	assert.Zero(t, p.Total)
}

func TestDecodeProgressToleratesMistypedFields(t *testing.T) {
	payload := map[string]any{
		"stage":      12,
		"percent":    "forty",
		"message":    nil,
		"downloaded": "lots",
	}

	p := DecodeProgress(payload)
	assert.Equal(t, model.StageIdle, p.Stage)
	assert.Equal(t, 0, p.Percent)
	assert.Zero(t, p.Downloaded)
}

func TestDecodeProgressClampsPercent(t *testing.T) {
	assert.Equal(t, 100, DecodeProgress(map[string]any{"percent": float64(250)}).Percent)
	assert.Equal(t, 0, DecodeProgress(map[string]any{"percent": float64(-3)}).Percent)
}

func TestDecodeAsset(t *testing.T) {
	asset := DecodeAsset(map[string]any{
		"asset": map[string]any{"url": "https://updates.example/launcher.bin", "sha256": "abc123"},
	})
	require.NotNil(t, asset)
	assert.Equal(t, "https://updates.example/launcher.bin", asset.URL)
	assert.Equal(t, "abc123", asset.SHA256)

	assert.Nil(t, DecodeAsset(map[string]any{}))
	assert.Nil(t, DecodeAsset(map[string]any{"asset": "not-an-object"}))
	assert.Nil(t, DecodeAsset(map[string]any{"asset": map[string]any{"sha256": "no-url"}}))
}

func TestDecodeSelfUpdateProgress(t *testing.T) {
	downloaded, total := DecodeSelfUpdateProgress(map[string]any{
		"downloaded": float64(2048),
		"total":      float64(8192),
	})
	assert.Equal(t, int64(2048), downloaded)
	assert.Equal(t, int64(8192), total)

	downloaded, total = DecodeSelfUpdateProgress(map[string]any{})
	assert.Zero(t, downloaded)
	assert.Zero(t, total)
}

func TestDecodeError(t *testing.T) {
	appErr := DecodeError(map[string]any{
		"kind":      "CONFIG_ERROR",
		"message":   "Could not persist branch",
		"technical": "disk full",
	})
	assert.Equal(t, apperr.ErrorTypeConfig, appErr.Type)
	assert.Equal(t, "Could not persist branch", appErr.Message)
	assert.Equal(t, "disk full", appErr.Technical)
	assert.False(t, appErr.Timestamp.IsZero())
}

func TestDecodeErrorDefaults(t *testing.T) {
	appErr := DecodeError(map[string]any{})
	assert.Equal(t, apperr.ErrorTypeBackend, appErr.Type)
	assert.NotEmpty(t, appErr.Message)

	appErr = DecodeError(map[string]any{"kind": "SOMETHING_NEW", "message": "hm"})
	assert.Equal(t, apperr.ErrorTypeBackend, appErr.Type)
}
