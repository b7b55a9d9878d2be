package backend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"reflect"
	"time"

	"github.com/torriplayer/torriplayer/backend/ipc"
	"github.com/torriplayer/torriplayer/backend/player"
	"github.com/torriplayer/torriplayer/backend/player/mpv"
	"github.com/torriplayer/torriplayer/backend/util"

	"github.com/20after4/configdir"
)

const (
	configFile    = "config.toml"
	portableDir   = "torriplayer_portable"
	defaultVolume = 100
)

var (
	ErrAnotherInstance = errors.New("another instance is running")
)

type App struct {
	Config       *Config
	LocalPlayer  *mpv.Player
	Formats      *FormatCatalog
	MPRISHandler *MPRISHandler

	// UI callbacks to be set in main
	OnReactivate func()
	OnExit       func()

	appName       string
	appVersionTag string
	configDir     string
	portableMode  bool

	isFirstLaunch bool // set by config file reader
	bgrndCtx      context.Context
	cancel        context.CancelFunc
	ipcServer     *http.Server

	lastWrittenCfg Config
}

func (a *App) VersionTag() string {
	return a.appVersionTag
}

func StartupApp(appName, displayAppName, appVersionTag string) (*App, error) {
	var confDir string
	portableMode := false
	if p := checkPortablePath(); p != "" {
		confDir = path.Join(p, "config")
		portableMode = true
	} else {
		confDir = configdir.LocalConfig(appName)
	}
	// ensure config dir exists
	configdir.MakePath(confDir)

	a := &App{
		appName:       appName,
		appVersionTag: appVersionTag,
		configDir:     confDir,
		portableMode:  portableMode,
	}
	a.readConfig()

	if !a.Config.Application.AllowMultiInstance {
		if cli, err := ipc.Connect(); err == nil {
			log.Println("Another instance is running. Forwarding command line request...")
			forwardCommandLine(cli)
			return nil, ErrAnotherInstance
		}
	}

	log.Printf("Starting %s...", appName)
	log.Printf("Using config dir: %s", confDir)

	a.bgrndCtx, a.cancel = context.WithCancel(context.Background())
	a.startConfigWriter(a.bgrndCtx)

	if err := a.initMPV(displayAppName); err != nil {
		return nil, err
	}
	if err := a.setupMPV(); err != nil {
		return nil, err
	}
	a.Formats = NewFormatCatalog(a.LocalPlayer)
	a.LocalPlayer.OnStateChanged(func(s player.State) {
		SetSystemSleepDisabled(s == player.Playing)
	})

	// OS media center integration
	a.setupMPRIS(displayAppName)

	return a, nil
}

func (a *App) IsFirstLaunch() bool {
	return a.isFirstLaunch
}

func (a *App) IsPortableMode() bool {
	return a.portableMode
}

// StartIPCServer serves remote control requests from later instances.
// Must be called once the UI handlers exist.
func (a *App) StartIPCServer(pb ipc.PlaybackHandler, wd ipc.WindowHandler) {
	if a.Config.Application.AllowMultiInstance {
		return
	}
	listener, err := ipc.Listen()
	if err != nil {
		log.Printf("failed to start IPC listener: %v", err)
		return
	}
	a.ipcServer = ipc.NewServer(pb, wd)
	go func() {
		if err := a.ipcServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("IPC server error: %v", err)
		}
	}()
}

func forwardCommandLine(cli *ipc.Client) {
	var err error
	switch {
	case MediaCLIArg() != "":
		err = cli.Open(NormalizeMediaURI(MediaCLIArg()))
	case *FlagPlay:
		err = cli.Play()
	case *FlagPause:
		err = cli.Pause()
	case *FlagStop:
		err = cli.Stop()
	}
	if err == nil && VolumeCLIArg >= 0 {
		err = cli.SetVolume(VolumeCLIArg)
	}
	if err != nil {
		log.Printf("error sending command to running instance: %v", err)
	}
	if !HaveCommandLineOptions() {
		cli.Show()
	}
}

func checkPortablePath() string {
	if p, err := os.Executable(); err == nil {
		pdirPath := path.Join(filepath.Dir(p), portableDir)
		if s, err := os.Stat(pdirPath); err == nil && s.IsDir() {
			return pdirPath
		}
	}
	return ""
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func (a *App) configFilePath() string {
	return path.Join(a.configDir, configFile)
}

func (a *App) readConfig() {
	cfgPath := a.configFilePath()
	cfgExists := fileExists(cfgPath)
	a.isFirstLaunch = !cfgExists
	cfg, err := ReadConfigFile(cfgPath, a.appVersionTag)
	if err != nil {
		if cfgExists {
			log.Printf("Error reading app config file: %v", err)
		}
		cfg = DefaultConfig(a.appVersionTag)
		if cfgExists {
			backupCfgName := fmt.Sprintf("%s.bak", configFile)
			log.Printf("Config file may be malformed: copying to %s", backupCfgName)
			_ = util.CopyFile(cfgPath, path.Join(a.configDir, backupCfgName))
		}
	}
	a.Config = cfg
	a.lastWrittenCfg = *cfg
}

// periodically save config file so abnormal exit won't lose settings
func (a *App) startConfigWriter(ctx context.Context) {
	tick := time.NewTicker(2 * time.Minute)
	go func() {
		for {
			select {
			case <-ctx.Done():
				tick.Stop()
				return
			case <-tick.C:
				a.SaveConfigFile()
			}
		}
	}()
}

func (a *App) SaveConfigFile() {
	if reflect.DeepEqual(&a.lastWrittenCfg, a.Config) {
		return
	}
	if err := a.Config.WriteConfigFile(a.configFilePath()); err != nil {
		log.Printf("failed to write config file: %v", err)
		return
	}
	a.lastWrittenCfg = *a.Config
}

func (a *App) callOnReactivate() {
	if a.OnReactivate != nil {
		a.OnReactivate()
	}
}

func (a *App) initMPV(windowTitle string) error {
	p := mpv.New()
	c := a.Config.LocalPlayback
	err := p.Init(mpv.Options{
		ClientName:          a.appName,
		WindowTitle:         windowTitle,
		InMemoryCacheSizeMB: c.InMemoryCacheSizeMB,
		HardwareDecoding:    c.HardwareDecoding,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize mpv player: %w", err)
	}
	a.LocalPlayer = p
	return nil
}

func (a *App) setupMPV() error {
	if err := a.LocalPlayer.SetVolume(startupVolume(VolumeCLIArg)); err != nil {
		return err
	}

	devs, err := a.LocalPlayer.ListAudioDevices()
	if err != nil {
		return err
	}

	desiredDevice := a.Config.LocalPlayback.AudioDeviceName
	var desiredDeviceAvailable bool
	for _, dev := range devs {
		if dev.Name == desiredDevice {
			desiredDeviceAvailable = true
			break
		}
	}
	if !desiredDeviceAvailable {
		// The audio device the user has configured is not available.
		// Use the default (autoselect) device but leave the setting unchanged,
		// in case the device is later available on a subsequent run of the app
		// (e.g. a USB audio device that is currently unplugged)
		desiredDevice = "auto"
	}
	return a.LocalPlayer.SetAudioDevice(desiredDevice)
}

// startupVolume is the -volume argument if given, else full volume.
func startupVolume(cliArg int) int {
	if cliArg >= 0 {
		return player.ClampVolume(cliArg)
	}
	return defaultVolume
}

func (a *App) setupMPRIS(mprisAppName string) {
	a.MPRISHandler = NewMPRISHandler(mprisAppName, a.LocalPlayer, a.Formats)
	a.MPRISHandler.OnRaise = func() error { a.callOnReactivate(); return nil }
	a.MPRISHandler.OnQuit = func() error {
		if a.OnExit == nil {
			return errors.New("no quit handler registered")
		}
		go func() {
			time.Sleep(10 * time.Millisecond)
			a.OnExit()
		}()
		return nil
	}
	a.MPRISHandler.Start()
}

func (a *App) Shutdown() {
	a.MPRISHandler.Shutdown()
	if a.ipcServer != nil {
		a.ipcServer.Close()
		ipc.DestroyConn()
	}
	SetSystemSleepDisabled(false)
	if a.LocalPlayer.State() != player.Stopped {
		a.LocalPlayer.Stop()
	}
	a.cancel()
	a.LocalPlayer.Destroy()
	a.SaveConfigFile()
}
