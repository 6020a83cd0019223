package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle        = "app_title"
	KeyPlay            = "play"
	KeyNickname        = "nickname"
	KeyBranch          = "branch"
	KeyVersion         = "version"
	KeySettings        = "settings"
	KeyFile            = "file"
	KeyLanguage        = "language"
	KeySave            = "save"
	KeyCancel          = "cancel"
	KeyBackendAddress  = "backend_address"
	KeyServerAddress   = "server_address"
	KeyNewsRotation    = "news_rotation"
	KeySettingsSaved   = "settings_saved"
	KeyUpdateAvailable = "update_available"
	KeyUpdateNow       = "update_now"
	KeyUpdating        = "updating"
	KeyNews            = "news"
	KeyReadMore        = "read_more"
	KeyOpenLogsFolder  = "open_logs_folder"
	KeyOpenGameFolder  = "open_game_folder"
	KeyDiagnostics     = "diagnostics"
	KeyErrorTitle      = "error_title"
	KeyErrorDetails    = "error_details"
	KeyDismiss         = "dismiss"
	KeyLauncherVersion = "launcher_version"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:        "Hytide Launcher",
		KeyPlay:            "Play",
		KeyNickname:        "Nickname",
		KeyBranch:          "Branch",
		KeyVersion:         "Version",
		KeySettings:        "Settings",
		KeyFile:            "File",
		KeyLanguage:        "Language",
		KeySave:            "Save",
		KeyCancel:          "Cancel",
		KeyBackendAddress:  "Backend address",
		KeyServerAddress:   "Game server",
		KeyNewsRotation:    "News rotation (seconds)",
		KeySettingsSaved:   "Settings saved successfully!",
		KeyUpdateAvailable: "A launcher update is available",
		KeyUpdateNow:       "Update now",
		KeyUpdating:        "Updating launcher...",
		KeyNews:            "News",
		KeyReadMore:        "Read more",
		KeyOpenLogsFolder:  "Open Logs Folder",
		KeyOpenGameFolder:  "Open Game Folder",
		KeyDiagnostics:     "Run Diagnostics",
		KeyErrorTitle:      "Something went wrong",
		KeyErrorDetails:    "Details",
		KeyDismiss:         "Dismiss",
		KeyLauncherVersion: "Launcher version",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:        "Hytide Лаунчер",
		KeyPlay:            "Играть",
		KeyNickname:        "Никнейм",
		KeyBranch:          "Ветка",
		KeyVersion:         "Версия",
		KeySettings:        "Настройки",
		KeyFile:            "Файл",
		KeyLanguage:        "Язык",
		KeySave:            "Сохранить",
		KeyCancel:          "Отмена",
		KeyBackendAddress:  "Адрес бэкенда",
		KeyServerAddress:   "Игровой сервер",
		KeyNewsRotation:    "Ротация новостей (секунды)",
		KeySettingsSaved:   "Настройки успешно сохранены!",
		KeyUpdateAvailable: "Доступно обновление лаунчера",
		KeyUpdateNow:       "Обновить",
		KeyUpdating:        "Обновление лаунчера...",
		KeyNews:            "Новости",
		KeyReadMore:        "Подробнее",
		KeyOpenLogsFolder:  "Открыть папку логов",
		KeyOpenGameFolder:  "Открыть папку игры",
		KeyDiagnostics:     "Диагностика",
		KeyErrorTitle:      "Что-то пошло не так",
		KeyErrorDetails:    "Подробности",
		KeyDismiss:         "Закрыть",
		KeyLauncherVersion: "Версия лаунчера",
	}
}
