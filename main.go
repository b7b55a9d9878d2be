package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/torriplayer/torriplayer/backend"
	"github.com/torriplayer/torriplayer/res"
	"github.com/torriplayer/torriplayer/ui"
	uios "github.com/torriplayer/torriplayer/ui/os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

func main() {
	flag.Parse()
	if *backend.FlagVersion {
		fmt.Println(res.AppVersion)
		return
	}
	if *backend.FlagHelp {
		fmt.Printf("%s, a minimal audio and video player\n", res.DisplayName)
		fmt.Printf("usage: %s [options] [file or URL]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		return
	}

	myApp, err := backend.StartupApp(res.AppName, res.DisplayName, res.AppVersionTag)
	if err != nil {
		if errors.Is(err, backend.ErrAnotherInstance) {
			return
		}
		log.Fatalf("fatal startup error: %v", err.Error())
	}

	geometry := uios.GeometryFor(uios.PrimaryWorkArea())

	fyneApp := app.NewWithID("io.github.torriplayer")
	mainWindow := ui.NewMainWindow(fyneApp, res.DisplayName, myApp.Config, myApp.LocalPlayer, myApp.Formats, geometry)
	myApp.OnReactivate = func() { fyne.Do(mainWindow.Show) }
	myApp.OnExit = func() { fyne.Do(mainWindow.Quit) }
	remote := mainWindow.RemoteControl()
	myApp.MPRISHandler.Commands = remote
	myApp.StartIPCServer(remote, remote)

	if l := myApp.Config.Application.LastLaunchedVersion; l != myApp.VersionTag() {
		log.Printf("Upgraded from %s to %s", l, myApp.VersionTag())
		myApp.Config.Application.LastLaunchedVersion = myApp.VersionTag()
	}

	fyneApp.Lifecycle().SetOnStarted(func() {
		if uri := backend.NormalizeMediaURI(backend.MediaCLIArg()); uri != "" {
			_ = mainWindow.Controller.OpenURI(uri)
		} else if *backend.FlagPlay {
			_ = mainWindow.Controller.Play()
		}
	})

	mainWindow.Show()
	fyneApp.Run()

	log.Println("Running shutdown tasks...")
	myApp.Shutdown()
}
