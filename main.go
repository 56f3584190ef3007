package main

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/wclock/internal/config"
	"github.com/iburimskiy/wclock/internal/game"
)

func main() {
	cfg := config.Load(configPath())

	sw, sh := ebiten.Monitor().Size()
	win := game.Configure(cfg, sw, sh)
	log.Printf("Window: %dx%d at %d,%d", win.Width, win.Height, win.X, win.Y)

	g := game.New(cfg)
	if err := ebiten.RunGameWithOptions(g, game.RunOptions(cfg)); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

// configPath returns the first argument or, without one, the config file
// named after the executable.
func configPath() string {
	if len(os.Args) > 1 {
		log.Printf("Config file: %s", os.Args[1])
		return os.Args[1]
	}

	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	name := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
	path := config.FindFile(name)
	log.Printf("Config file: %s", path)
	return path
}
