package main

import (
	"context"
	"flag"
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

// Minimal entrypoint with a backend address flag, useful when pointing the
// launcher at a development backend.
func main() {
	addr := flag.String("backend", config.DefaultBackendAddress, "backend websocket address")
	server := flag.String("server", "", "game server address passed to play")
	flag.Parse()

	log := logging.NewLogger("main")

	myApp := app.NewWithID("com.hytide.launcher")
	myApp.Settings().SetTheme(ui.NewLauncherTheme())

	myWindow := myApp.NewWindow("Hytide Launcher")
	myWindow.Resize(fyne.NewSize(config.DefaultWindowWidth, config.DefaultWindowHeight))

	dialCtx, cancelDial := context.WithTimeout(context.Background(), 15*time.Second)
	client, err := backend.Dial(dialCtx, *addr)
	cancelDial()
	if err != nil {
		log.WithError(err).Fatal("backend host unreachable")
	}
	defer client.Close()

	store := session.NewStore()
	ctrl := launcher.New(client, client.Events(), store, catalog.New(client),
		launcher.WithServerAddress(*server))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go ctrl.Run(ctx)
	go func() {
		if err := ctrl.Bootstrap(ctx); err != nil {
			log.WithError(err).Error("bootstrap incomplete")
		}
	}()

	ui.NewRootUI(myWindow, myApp, ctrl)

	myWindow.ShowAndRun()
}
