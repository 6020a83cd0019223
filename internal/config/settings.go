package config

import (
	"strings"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyBackendAddress = "backend_address"
	KeyServerAddress  = "game_server_address"
	KeyLanguage       = "app_language"
	KeyNewsRotation   = "news_rotation_seconds"
	KeyWindowWidth    = "window_width"
	KeyWindowHeight   = "window_height"
)

// Default values
const (
	DefaultBackendAddress = "ws://127.0.0.1:8090/rpc"
	DefaultLanguage       = "system"
	DefaultNewsRotation   = 15
	DefaultWindowWidth    = 980
	DefaultWindowHeight   = 620
)

// News rotation bounds in seconds
const (
	minNewsRotation = 5
	maxNewsRotation = 120
)

// Settings manages launcher configuration persisted through Fyne
// preferences. Backend-owned state (branch, version, identity) never lives
// here.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetBackendAddress returns the websocket address of the backend host
func (s *Settings) GetBackendAddress() string {
	addr := strings.TrimSpace(s.app.Preferences().String(KeyBackendAddress))
	if addr == "" {
		s.SetBackendAddress(DefaultBackendAddress)
		return DefaultBackendAddress
	}
	return addr
}

// SetBackendAddress sets the websocket address of the backend host
func (s *Settings) SetBackendAddress(addr string) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = DefaultBackendAddress
	}
	s.app.Preferences().SetString(KeyBackendAddress, addr)
}

// GetServerAddress returns the game server joined by play commands. Empty
// means the backend's default server.
func (s *Settings) GetServerAddress() string {
	return strings.TrimSpace(s.app.Preferences().String(KeyServerAddress))
}

// SetServerAddress sets the game server address
func (s *Settings) SetServerAddress(addr string) {
	s.app.Preferences().SetString(KeyServerAddress, strings.TrimSpace(addr))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetNewsRotationSeconds returns the news card rotation interval
func (s *Settings) GetNewsRotationSeconds() int {
	value := s.app.Preferences().Int(KeyNewsRotation)
	if value <= 0 {
		s.SetNewsRotationSeconds(DefaultNewsRotation)
		return DefaultNewsRotation
	}
	return value
}

// SetNewsRotationSeconds sets the news rotation interval, clamped to a
// readable range
func (s *Settings) SetNewsRotationSeconds(seconds int) {
	if seconds < minNewsRotation {
		seconds = minNewsRotation
	}
	if seconds > maxNewsRotation {
		seconds = maxNewsRotation
	}
	s.app.Preferences().SetInt(KeyNewsRotation, seconds)
}

// GetWindowSize returns the persisted main window size
func (s *Settings) GetWindowSize() (width, height int) {
	width = s.app.Preferences().IntWithFallback(KeyWindowWidth, DefaultWindowWidth)
	height = s.app.Preferences().IntWithFallback(KeyWindowHeight, DefaultWindowHeight)
	if width < 640 {
		width = 640
	}
	if height < 480 {
		height = 480
	}
	return width, height
}

// SetWindowSize persists the main window size
func (s *Settings) SetWindowSize(width, height int) {
	s.app.Preferences().SetInt(KeyWindowWidth, width)
	s.app.Preferences().SetInt(KeyWindowHeight, height)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}
