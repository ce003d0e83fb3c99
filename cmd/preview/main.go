// Command preview plays a creative file in the terminal.
//
//	preview -config creative.yaml [-seed 42]
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/mbark223/playablelab-sub000/internal/playable"
	"github.com/mbark223/playablelab-sub000/internal/tui"
)

func main() {
	path := flag.String("config", "", "creative YAML file; empty uses the default for -mode")
	mode := flag.String("mode", "slots", "mode used when no -config is given")
	seed := flag.Int64("seed", 0, "random seed; 0 picks one from the clock")
	flag.Parse()

	// The TUI owns the terminal, so keep log output to errors on stderr.
	log.SetOutput(os.Stderr)
	log.SetLevel(log.ErrorLevel)

	cfg, err := loadConfig(*path, *mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := tui.Run(cfg, playable.NewRand(*seed)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path, mode string) (playable.Configuration, error) {
	if path == "" {
		m, ok := playable.ParseMode(mode)
		if !ok {
			return playable.Configuration{}, fmt.Errorf("unknown mode %q", mode)
		}
		return playable.DefaultConfiguration(m), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return playable.Configuration{}, fmt.Errorf("read creative: %w", err)
	}
	return playable.ParseYAML(data)
}
