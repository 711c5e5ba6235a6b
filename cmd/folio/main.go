// Command folio runs the portfolio scene in a window.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/phanxgames/folio"
	"github.com/phanxgames/folio/ebitenhost"
	"github.com/phanxgames/folio/sound"
)

func main() {
	var (
		configPath string
		assetsDir  string
		scriptPath string
		shotDir    string
		debug      bool
		exitOnDone bool
		showFPS    bool
	)
	flag.StringVar(&configPath, "config", "folio.yaml", "YAML config file (missing file = defaults)")
	flag.StringVar(&assetsDir, "assets", "assets", "directory of PNG textures")
	flag.StringVar(&scriptPath, "script", "", "JSON input script to run")
	flag.StringVar(&shotDir, "screenshots", "screenshots", "directory for script screenshots")
	flag.BoolVar(&debug, "debug", false, "debug mode: stderr logging, camera pan/pinch")
	flag.BoolVar(&exitOnDone, "exit", true, "exit when the script finishes")
	flag.BoolVar(&showFPS, "fps", false, "show FPS overlay")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("[folio] ")

	cfg, err := folio.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if debug {
		cfg.Debug = true
	}

	renderer, err := ebitenhost.NewRenderer()
	if err != nil {
		log.Fatal(err)
	}
	if err := renderer.LoadTextures(assetsDir); err != nil {
		log.Printf("textures: %v (drawing placeholders)", err)
	}

	scene := folio.NewScene(cfg)
	scene.SetSoundPlayer(ebitenhost.NewAudioPlayer(sound.NewBank(sound.SampleRate)))

	game := ebitenhost.NewGame(scene, renderer)
	game.ScreenshotDir = shotDir
	game.ShowFPS = showFPS || cfg.Debug
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		runner, err := folio.LoadTestScript(data)
		if err != nil {
			log.Fatal(err)
		}
		game.Script = runner
		game.ExitWhenDone = exitOnDone
	}

	if err := ebitenhost.Run(game, "folio"); err != nil {
		log.Fatal(err)
	}
}
