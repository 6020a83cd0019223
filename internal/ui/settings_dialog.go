package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/hytide/launcher/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	backendEntry   *widget.Entry
	serverEntry    *widget.Entry
	rotationEntry  *widget.Entry
	languageSelect *widget.Select
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved is
// called after a confirmed save.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Backend connection
	sd.backendEntry = widget.NewEntry()
	sd.backendEntry.SetPlaceHolder(config.DefaultBackendAddress)

	sd.serverEntry = widget.NewEntry()
	sd.serverEntry.SetPlaceHolder("host:port")

	// News rotation interval
	sd.rotationEntry = widget.NewEntry()
	sd.rotationEntry.SetPlaceHolder("5-120")

	// Language selection
	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyBackendAddress)+":"),
		sd.backendEntry,

		widget.NewLabel(sd.localization.GetText(KeyServerAddress)+":"),
		sd.serverEntry,

		widget.NewLabel(sd.localization.GetText(KeyNewsRotation)+":"),
		sd.rotationEntry,

		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(460, 360))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.backendEntry.SetText(sd.settings.GetBackendAddress())
	sd.serverEntry.SetText(sd.settings.GetServerAddress())
	sd.rotationEntry.SetText(strconv.Itoa(sd.settings.GetNewsRotationSeconds()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.backendEntry.Text != "" {
		sd.settings.SetBackendAddress(sd.backendEntry.Text)
	}

	sd.settings.SetServerAddress(sd.serverEntry.Text)

	if seconds, err := strconv.Atoi(sd.rotationEntry.Text); err == nil {
		sd.settings.SetNewsRotationSeconds(seconds)
	}

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	dialog.ShowInformation(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySettingsSaved),
		sd.window,
	)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
