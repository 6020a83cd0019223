package ui

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/hytide/launcher/internal/apperr"
	"github.com/hytide/launcher/internal/config"
	"github.com/hytide/launcher/internal/launcher"
	"github.com/hytide/launcher/internal/logging"
	"github.com/hytide/launcher/internal/model"
	"github.com/hytide/launcher/internal/platform"
	"github.com/hytide/launcher/internal/session"
)

// RootUI represents the main launcher window. It is a pure view over the
// session store: every widget renders from snapshots and every interaction
// goes through controller commands.
type RootUI struct {
	window       fyne.Window
	ctrl         *launcher.Controller
	settings     *config.Settings
	localization *Localization
	log          *logrus.Entry

	nicknameEntry *widget.Entry
	branchSelect  *widget.Select
	versionSelect *widget.Select
	playBtn       *widget.Button
	progressBar   *widget.ProgressBar
	statusLabel   *widget.Label
	detailLabel   *widget.Label
	versionLabel  *widget.Label

	updateBanner *fyne.Container
	updateLabel  *widget.Label
	updateBtn    *widget.Button

	newsCard    *widget.Card
	newsExcerpt *widget.Label
	newsLink    *widget.Hyperlink

	// rendering suppresses Select OnChanged callbacks while widgets are
	// being synced from a snapshot.
	rendering bool

	shownError  *apperr.AppError
	unsubscribe func()
	stopNews    chan struct{}
}

// NewRootUI creates and initializes the main launcher window
func NewRootUI(window fyne.Window, app fyne.App, ctrl *launcher.Controller) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		ctrl:         ctrl,
		settings:     settings,
		localization: localization,
		log:          logging.NewLogger("ui"),
		stopNews:     make(chan struct{}),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()

	// Every accepted store mutation repaints the window. The listener runs
	// on controller goroutines; fyne.Do hops to the UI thread.
	ui.unsubscribe = ctrl.Store().Subscribe(func(st session.State) {
		fyne.Do(func() { ui.render(st) })
	})
	ui.render(ctrl.Store().Snapshot())

	ui.startNewsRotation()
	window.SetOnClosed(ui.teardown)

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// Identity row
	ui.nicknameEntry = widget.NewEntry()
	ui.nicknameEntry.SetPlaceHolder(ui.localization.GetText(KeyNickname))
	ui.nicknameEntry.OnSubmitted = func(nick string) {
		ui.runCommand(func(ctx context.Context) error {
			return ui.ctrl.Rename(ctx, nick)
		})
	}

	// Channel and version selection
	ui.branchSelect = widget.NewSelect(
		[]string{model.BranchRelease.String(), model.BranchPreRelease.String()},
		func(selected string) {
			if ui.rendering {
				return
			}
			branch, err := model.ParseBranch(selected)
			if err != nil {
				return
			}
			ui.runCommand(func(ctx context.Context) error {
				return ui.ctrl.SelectBranch(ctx, branch)
			})
		},
	)

	ui.versionSelect = widget.NewSelect(nil, func(selected string) {
		if ui.rendering {
			return
		}
		ui.runCommand(func(ctx context.Context) error {
			return ui.ctrl.SelectVersion(ctx, selected)
		})
	})

	// Play row
	ui.playBtn = widget.NewButton(IconPlay+" "+ui.localization.GetText(KeyPlay), ui.onPlayClick)
	ui.playBtn.Importance = widget.HighImportance

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Hide()
	ui.statusLabel = widget.NewLabel("")
	ui.detailLabel = widget.NewLabel("")
	ui.detailLabel.TextStyle = fyne.TextStyle{Italic: true}

	// Self-update banner, hidden until the backend offers an asset
	ui.updateLabel = widget.NewLabel(ui.localization.GetText(KeyUpdateAvailable))
	ui.updateBtn = widget.NewButton(IconUpdate+" "+ui.localization.GetText(KeyUpdateNow), ui.onUpdateClick)
	ui.updateBanner = container.NewBorder(nil, nil, nil, ui.updateBtn, ui.updateLabel)
	ui.updateBanner.Hide()

	// News card
	ui.newsExcerpt = widget.NewLabel("")
	ui.newsExcerpt.Wrapping = fyne.TextWrapWord
	ui.newsLink = widget.NewHyperlink(ui.localization.GetText(KeyReadMore), nil)
	ui.newsLink.Hide()
	ui.newsCard = widget.NewCard(ui.localization.GetText(KeyNews), "",
		container.NewVBox(ui.newsExcerpt, ui.newsLink))

	ui.versionLabel = widget.NewLabel("")
	ui.versionLabel.TextStyle = fyne.TextStyle{Italic: true}

	selectionRow := container.NewHBox(
		widget.NewLabel(ui.localization.GetText(KeyBranch)), ui.branchSelect,
		widget.NewLabel(ui.localization.GetText(KeyVersion)), ui.versionSelect,
	)
	identityRow := container.NewBorder(nil, nil,
		widget.NewLabel(ui.localization.GetText(KeyNickname)), nil, ui.nicknameEntry)

	playRow := container.NewVBox(
		ui.playBtn,
		ui.progressBar,
		container.NewHBox(ui.statusLabel, ui.detailLabel),
	)

	content := container.NewBorder(
		container.NewVBox(ui.updateBanner, identityRow, selectionRow), // top
		container.NewVBox(playRow, ui.versionLabel),                   // bottom
		nil,
		nil,
		ui.newsCard, // center
	)

	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	logsItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpenLogsFolder), ui.onOpenLogs)
	gameDirItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpenGameFolder), ui.onOpenGameFolder)
	diagItem := fyne.NewMenuItem(ui.localization.GetText(KeyDiagnostics), ui.onRunDiagnostics)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, logsItem, gameDirItem, diagItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// render syncs every widget with one store snapshot. Must run on the UI
// thread.
func (ui *RootUI) render(st session.State) {
	ui.rendering = true
	defer func() { ui.rendering = false }()

	if ui.nicknameEntry.Text != st.Nickname {
		ui.nicknameEntry.SetText(st.Nickname)
	}
	ui.nicknameEntry.Disable()
	if !st.IdentityLoading && !st.IsDownloading {
		ui.nicknameEntry.Enable()
	}

	ui.branchSelect.SetSelected(st.Branch.String())
	if !equalStrings(ui.versionSelect.Options, st.Versions) {
		ui.versionSelect.SetOptions(st.Versions)
	}
	ui.versionSelect.SetSelected(st.SelectedVersion)

	if st.IsDownloading {
		ui.playBtn.Disable()
		ui.branchSelect.Disable()
		ui.versionSelect.Disable()
		ui.progressBar.Show()
		ui.progressBar.SetValue(float64(st.Progress.Percent) / 100)
		ui.detailLabel.SetText(st.Progress.DetailLabel())
	} else {
		ui.playBtn.Enable()
		ui.branchSelect.Enable()
		ui.versionSelect.Enable()
		ui.progressBar.Hide()
		ui.detailLabel.SetText("")
	}
	ui.statusLabel.SetText(st.StatusMessage)

	ui.renderUpdateBanner(st.SelfUpdate)
	ui.renderNews(st)

	if st.LauncherVersion != "" {
		ui.versionLabel.SetText(fmt.Sprintf("%s: %s",
			ui.localization.GetText(KeyLauncherVersion), st.LauncherVersion))
	}

	ui.showError(st.ActiveError)
}

// renderUpdateBanner shows the self-update offer or its progress
func (ui *RootUI) renderUpdateBanner(su model.SelfUpdateState) {
	if su.IsUpdating {
		label := ui.localization.GetText(KeyUpdating)
		if su.Total > 0 {
			label = fmt.Sprintf("%s %s / %s", label,
				model.FormatBytes(su.Downloaded), model.FormatBytes(su.Total))
		}
		ui.updateLabel.SetText(label)
		ui.updateBtn.Disable()
		ui.updateBanner.Show()
		return
	}

	if su.PendingAsset == nil {
		ui.updateBanner.Hide()
		return
	}

	ui.updateLabel.SetText(ui.localization.GetText(KeyUpdateAvailable))
	ui.updateBtn.Enable()
	ui.updateBanner.Show()
}

// renderNews shows the current item of the rotating feed
func (ui *RootUI) renderNews(st session.State) {
	if len(st.News) == 0 || st.NewsIndex >= len(st.News) {
		ui.newsCard.SetSubTitle("")
		ui.newsExcerpt.SetText("")
		ui.newsLink.Hide()
		return
	}

	item := st.News[st.NewsIndex]
	ui.newsCard.SetSubTitle(item.Title)
	ui.newsExcerpt.SetText(item.Excerpt)

	if dest, err := url.Parse(item.DestURL); err == nil && item.DestURL != "" {
		ui.newsLink.SetURL(dest)
		ui.newsLink.Show()
	} else {
		ui.newsLink.Hide()
	}
}

// showError opens the error dialog once per active error
func (ui *RootUI) showError(appErr *apperr.AppError) {
	if appErr == nil || appErr == ui.shownError {
		return
	}
	ui.shownError = appErr

	message := widget.NewLabel(appErr.Message)
	message.Wrapping = fyne.TextWrapWord
	body := container.NewVBox(message)

	if appErr.Technical != "" {
		technical := widget.NewLabel(appErr.Technical)
		technical.Wrapping = fyne.TextWrapWord
		details := widget.NewAccordion(widget.NewAccordionItem(
			ui.localization.GetText(KeyErrorDetails), technical))
		body.Add(details)
	}

	d := dialog.NewCustom(ui.localization.GetText(KeyErrorTitle),
		ui.localization.GetText(KeyDismiss), body, ui.window)
	d.SetOnClosed(func() {
		ui.ctrl.DismissError()
	})
	d.Resize(fyne.NewSize(ErrorDialogWidth, ErrorDialogHeight))
	d.Show()
}

// runCommand invokes a controller command off the UI thread and logs its
// rejection. Rejections surface to the user through the store's active
// error, not through this return value.
func (ui *RootUI) runCommand(cmd func(context.Context) error) {
	go func() {
		if err := cmd(context.Background()); err != nil {
			ui.log.WithError(err).Debug("command rejected")
		}
	}()
}

// onPlayClick handles the play button click
func (ui *RootUI) onPlayClick() {
	nickname := ui.nicknameEntry.Text
	ui.runCommand(func(ctx context.Context) error {
		return ui.ctrl.Play(ctx, nickname)
	})
}

// onUpdateClick starts the launcher self-update
func (ui *RootUI) onUpdateClick() {
	ui.runCommand(func(ctx context.Context) error {
		return ui.ctrl.RequestSelfUpdate(ctx)
	})
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.nicknameEntry.SetPlaceHolder(ui.localization.GetText(KeyNickname))
	ui.playBtn.SetText(IconPlay + " " + ui.localization.GetText(KeyPlay))
	ui.updateBtn.SetText(IconUpdate + " " + ui.localization.GetText(KeyUpdateNow))
	ui.newsLink.SetText(ui.localization.GetText(KeyReadMore))
	ui.newsCard.SetTitle(ui.localization.GetText(KeyNews))
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.restartNewsRotation()
	})
}

// onOpenLogs reveals the log directory in the system file manager
func (ui *RootUI) onOpenLogs() {
	dir, err := logging.LogDir()
	if err != nil {
		ui.log.WithError(err).Warn("log directory unavailable")
		return
	}
	if err := platform.OpenFolder(dir); err != nil {
		ui.log.WithError(err).Warn("failed to open log directory")
	}
}

// onOpenGameFolder reveals the backend-managed game directory. The folder
// may not exist before the first download, so it is created on demand.
func (ui *RootUI) onOpenGameFolder() {
	dir, err := platform.GameDataDir(logging.AppDirName)
	if err != nil {
		ui.log.WithError(err).Warn("game directory unavailable")
		return
	}
	if err := platform.EnsureDirectory(dir); err != nil {
		ui.log.WithError(err).Warn("failed to create game directory")
		return
	}
	if err := platform.OpenFolder(dir); err != nil {
		ui.log.WithError(err).Warn("failed to open game directory")
	}
}

// onRunDiagnostics requests a backend diagnostics report and shows it
func (ui *RootUI) onRunDiagnostics() {
	go func() {
		report, err := ui.ctrl.RunDiagnostics(context.Background())
		if err != nil {
			// The store carries the error; the dialog follows from render
			return
		}

		text := fmt.Sprintf("Backend %s on %s/%s, %d CPUs\nGame installed: %v\n%s",
			report.BackendVersion, report.OS, report.Arch, report.NumCPU,
			report.GameInstalled, report.Details)

		fyne.Do(func() {
			dialog.ShowInformation(ui.localization.GetText(KeyDiagnostics), text, ui.window)
		})
	}()
}

// startNewsRotation advances the news card on the configured interval
func (ui *RootUI) startNewsRotation() {
	interval := time.Duration(ui.settings.GetNewsRotationSeconds()) * time.Second
	stop := ui.stopNews

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				ui.ctrl.NextNews()
			}
		}
	}()
}

// restartNewsRotation picks up an interval change from settings
func (ui *RootUI) restartNewsRotation() {
	close(ui.stopNews)
	ui.stopNews = make(chan struct{})
	ui.startNewsRotation()
}

// teardown releases the store subscription and background tickers
func (ui *RootUI) teardown() {
	if ui.unsubscribe != nil {
		ui.unsubscribe()
	}
	close(ui.stopNews)
}

// equalStrings reports whether two option lists match
func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
