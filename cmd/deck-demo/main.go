// Command deck-demo is a terminal host for the swipeable deck
//
// Drag the top card with the mouse, or use arrow and hjkl keys to commit.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/card-deck/audio"
	"github.com/lixenwraith/card-deck/config"
	"github.com/lixenwraith/card-deck/core"
	"github.com/lixenwraith/card-deck/scheduler"
)

var configFlag = flag.String("config", "", "Path to a TOML config file (default ./deck.toml if present)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := setupLogging(cfg.Log.File, cfg.LogLevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	core.RegisterTerminal(screen)
	defer func() {
		// HandleCrash exits on panic, so Fini here is the normal-exit path
		core.HandleCrash(recover())
		screen.Fini()
	}()

	acfg := audio.DefaultConfig()
	acfg.Enabled = cfg.Audio.Enabled
	acfg.MasterVolume = cfg.Audio.MasterVolume
	acfg.SampleRate = cfg.Audio.SampleRate
	player := audio.NewPlayer(acfg, log)
	defer player.Close()

	a := newApp(screen, cfg, scheduler.TimeProvider{}, player, log)
	log.Info("started", "cards", cfg.Demo.Cards, "quota", cfg.Demo.Quota)
	run(screen, a, time.Second/time.Duration(cfg.Demo.FrameRate))
	log.Info("stopped")
}

// run pumps terminal events and frame ticks until the app asks to quit
func run(screen tcell.Screen, a *app, frame time.Duration) {
	events := make(chan tcell.Event, 256)
	core.Go(func() {
		// PollEvent returns nil once the screen is finalized
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	a.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.tick()
			a.draw()
		}
	}
}
