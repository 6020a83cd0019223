package backend

import (
	"time"

	"github.com/hytide/launcher/internal/apperr"
	"github.com/hytide/launcher/internal/model"
)

// Event names pushed by the backend. Game download and launcher self-update
// share one channel and are disambiguated solely by name.
const (
	EventDownloadProgress   = "download-progress"
	EventSelfUpdateAvail    = "selfupdate-available"
	EventSelfUpdateProgress = "selfupdate-progress"
	EventBackendError       = "backend-error"
)

// Event is one unsolicited push from the backend. Payload is treated as
// untyped at the boundary; decode helpers normalize it field by field.
type Event struct {
	Name    string
	Payload map[string]any
}

// DecodeProgress normalizes a download-progress payload. Absent or mistyped
// fields default to zero values; a partial event must never crash rendering.
func DecodeProgress(payload map[string]any) model.Progress {
	percent := payloadInt(payload, "percent")
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return model.Progress{
		Stage:       model.ParseStage(payloadString(payload, "stage")),
		Percent:     percent,
		Message:     payloadString(payload, "message"),
		CurrentFile: payloadString(payload, "currentFile"),
		Speed:       payloadString(payload, "speed"),
		Downloaded:  payloadInt64(payload, "downloaded"),
		Total:       payloadInt64(payload, "total"),
	}
}

// DecodeSelfUpdateProgress normalizes a selfupdate-progress payload into the
// launcher's own byte counters.
func DecodeSelfUpdateProgress(payload map[string]any) (downloaded, total int64) {
	return payloadInt64(payload, "downloaded"), payloadInt64(payload, "total")
}

// DecodeAsset extracts the update asset from a selfupdate-available payload.
// Returns nil when the payload carries no usable asset.
func DecodeAsset(payload map[string]any) *model.UpdateAsset {
	raw, ok := payload["asset"].(map[string]any)
	if !ok {
		return nil
	}

	asset := &model.UpdateAsset{
		URL:    payloadString(raw, "url"),
		SHA256: payloadString(raw, "sha256"),
	}
	if asset.URL == "" {
		return nil
	}
	return asset
}

// DecodeError converts a backend-error payload into the active error shown
// to the user. Unknown kinds fall back to the generic backend type.
func DecodeError(payload map[string]any) *apperr.AppError {
	message := payloadString(payload, "message")
	if message == "" {
		message = "The backend reported an error"
	}

	errType := apperr.ErrorTypeBackend
	switch apperr.ErrorType(payloadString(payload, "kind")) {
	case apperr.ErrorTypeLaunch:
		errType = apperr.ErrorTypeLaunch
	case apperr.ErrorTypeUpdate:
		errType = apperr.ErrorTypeUpdate
	case apperr.ErrorTypeConfig:
		errType = apperr.ErrorTypeConfig
	case apperr.ErrorTypeVersionFetch:
		errType = apperr.ErrorTypeVersionFetch
	}

	appErr := apperr.New(errType, message)
	appErr.Technical = payloadString(payload, "technical")
	appErr.Timestamp = time.Now()
	return appErr
}

func payloadString(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}

// payloadInt64 reads a numeric field. JSON decoding yields float64; scripted
// test payloads may use native ints, so both are accepted.
func payloadInt64(payload map[string]any, key string) int64 {
	switch v := payload[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

func payloadInt(payload map[string]any, key string) int {
	return int(payloadInt64(payload, key))
}
