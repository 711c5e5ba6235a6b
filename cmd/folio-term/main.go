// Command folio-term runs the portfolio scene in a terminal, using the
// mouse as a single touch.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/sound"
	"github.com/phanxgames/folio/termhost"
)

func main() {
	var (
		configPath string
		scriptPath string
		shotDir    string
		debug      bool
		mute       bool
	)
	flag.StringVar(&configPath, "config", "folio.yaml", "YAML config file (missing file = defaults)")
	flag.StringVar(&scriptPath, "script", "", "JSON input script to run; exits when done")
	flag.StringVar(&shotDir, "screenshots", "screenshots", "directory for script snapshots")
	flag.BoolVar(&debug, "debug", false, "debug mode: stderr logging, camera pan")
	flag.BoolVar(&mute, "mute", false, "ring the terminal bell instead of playing sounds")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("[folio] ")

	if err := run(configPath, scriptPath, shotDir, debug, mute); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, scriptPath, shotDir string, debug, mute bool) error {
	cfg, err := folio.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
	}

	var runner *folio.TestRunner
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return err
		}
		if runner, err = folio.LoadTestScript(data); err != nil {
			return err
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	scene := folio.NewScene(cfg)
	var player folio.SoundPlayer = termhost.BellPlayer{Screen: screen}
	if !mute {
		if sp, err := termhost.NewSpeakerPlayer(sound.NewBank(sound.SampleRate)); err == nil {
			defer sp.Close()
			player = sp
		}
	}
	scene.SetSoundPlayer(player)

	host := termhost.New(screen, scene)
	host.ScreenshotDir = shotDir
	if runner != nil {
		host.Script = runner
		host.ExitWhenDone = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return host.Run(ctx)
}
