package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconFolder   = "📁"
	IconClose    = "×"
	IconLanguage = "🌐"
	IconUpdate   = "⬆"
)

// Text fragments
const (
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	NicknameEntryWidth float32 = 180
	SelectMinWidth     float32 = 140
	NewsCardMinHeight  float32 = 140
	ErrorDialogWidth   float32 = 420
	ErrorDialogHeight  float32 = 260
)
