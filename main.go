package main

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/hytide/launcher/internal/backend"
	"github.com/hytide/launcher/internal/catalog"
	"github.com/hytide/launcher/internal/config"
	"github.com/hytide/launcher/internal/launcher"
	"github.com/hytide/launcher/internal/logging"
	"github.com/hytide/launcher/internal/session"
	"github.com/hytide/launcher/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.hytide.launcher"
	AppName = "Hytide Launcher"

	DialTimeout = 15 * time.Second
)

func main() {
	log := logging.NewLogger("main")
	log.Infof("%s v%s starting", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewLauncherTheme())

	settings := config.NewSettings(myApp)
	width, height := settings.GetWindowSize()

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(float32(width), float32(height)))

	// Connect to the backend host process
	dialCtx, cancelDial := context.WithTimeout(context.Background(), DialTimeout)
	client, err := backend.Dial(dialCtx, settings.GetBackendAddress())
	cancelDial()
	if err != nil {
		log.WithError(err).Fatal("backend host unreachable")
	}
	defer client.Close()

	// Wire the session core
	store := session.NewStore()
	ctrl := launcher.New(client, client.Events(), store, catalog.New(client),
		launcher.WithServerAddress(settings.GetServerAddress()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go ctrl.Run(ctx)
	go func() {
		if err := ctrl.Bootstrap(ctx); err != nil {
			log.WithError(err).Error("bootstrap incomplete")
		}
	}()

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, ctrl)

	// Show and run
	myWindow.ShowAndRun()
}
