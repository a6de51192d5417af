package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/word-fall/arcade"
	"github.com/lixenwraith/word-fall/audio"
	"github.com/lixenwraith/word-fall/config"
	"github.com/lixenwraith/word-fall/content"
	"github.com/lixenwraith/word-fall/engine"
	"github.com/lixenwraith/word-fall/observe"
)

const version = "0.3.0"

var (
	configPath = flag.String("config", "", "path to the YAML configuration file (default ./word-fall.yaml)")
	debugFlag  = flag.Bool("debug", false, "write debug logs to logs/word-fall.log")
	seedFlag   = flag.Int64("seed", 0, "random seed for word placement, 0 seeds from the clock")
	muteFlag   = flag.Bool("mute", false, "start with sound muted")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "word-fall: %v\n", err)
		return 1
	}
	if *seedFlag != 0 {
		cfg.Game.Seed = *seedFlag
	}
	if *muteFlag {
		cfg.Audio.Mute = true
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	if *debugFlag {
		level = slog.LevelDebug
	}
	if logFile := setupLogging(*debugFlag || cfg.Log.File != "", cfg.Log.File, level); logFile != nil {
		defer logFile.Close()
	}
	slog.Info("word-fall starting", "version", version, "config", *configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics provider first so instruments bind to it
	if cfg.Metrics.Enabled {
		shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "word-fall", ServiceVersion: version})
		if err != nil {
			slog.Warn("metrics disabled", "err", err)
			cfg.Metrics.Enabled = false
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = shutdown(sctx)
			}()
		}
	}

	learned, err := content.LoadLearned(cfg.Content.LearnedFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "word-fall: %v\n", err)
		return 1
	}
	fallback := loadVocabulary(cfg.Content.AssetsDir)

	sound := audio.NewEngine(cfg.Audio.Player())
	if err := sound.Start(); err != nil {
		slog.Warn("audio unavailable, continuing without sound", "err", err)
	} else {
		slog.Info("audio started", "backend", sound.Backend())
		defer sound.Stop()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "word-fall: terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "word-fall: terminal: %v\n", err)
		return 1
	}
	// Normal exit terminal cleanup; Fini is idempotent
	defer screen.Fini()
	defer recoverCrash(screen, "WORD-FALL")

	w, h := screen.Size()
	session, err := arcade.NewSession(cfg.Arcade(max(w, 1), max(h, 1)), learned.Words,
		arcade.WithSound(sound),
		arcade.WithFallback(fallback),
	)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "word-fall: %v\n", err)
		return 1
	}

	game := engine.NewGame(ctx, screen, session,
		engine.WithMetrics(observe.DefaultMetrics()),
		engine.WithMuter(sound),
		engine.WithLogger(slog.Default()),
	)

	if err := play(ctx, cfg, screen, game); err != nil {
		slog.Error("run error", "err", err)
	}
	screen.Fini()

	res := game.Finish()
	added := content.MergeLearned(learned, res)
	printResult(os.Stdout, res, added, learned.XP)

	if err := content.SaveLearned(cfg.Content.LearnedFile, learned); err != nil {
		fmt.Fprintf(os.Stderr, "word-fall: %v\n", err)
		return 1
	}

	played, dropped := sound.Stats()
	slog.Info("word-fall stopped", "session", res.SessionID, "sounds_played", played, "sounds_dropped", dropped)
	return 0
}

// play runs the frame loop, the terminal event poller and the optional
// metrics server until the player leaves or ctx is cancelled
func play(ctx context.Context, cfg *config.Config, screen tcell.Screen, game *engine.Game) error {
	g, gctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 256)
	loopDone := make(chan struct{})

	g.Go(func() error {
		defer close(loopDone)
		defer recoverCrash(screen, "GAME LOOP")
		return engine.NewLoop(engine.NewTimeProvider(), cfg.Game.FPS, game).Run(gctx, events)
	})

	// Fini unblocks PollEvent once the loop is gone
	g.Go(func() error {
		<-loopDone
		screen.Fini()
		return nil
	})

	g.Go(func() error {
		defer recoverCrash(screen, "EVENT POLLER")
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-loopDone:
				return nil
			}
		}
	})

	if cfg.Metrics.Enabled {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           observe.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			slog.Info("metrics listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				// The game keeps running without its scrape endpoint
				slog.Error("metrics server", "err", err)
			}
			return nil
		})
		g.Go(func() error {
			<-loopDone
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(sctx)
		})
	}

	return g.Wait()
}

// loadVocabulary returns the assets word lists, or the built-in list when none load
func loadVocabulary(dir string) []arcade.VocabularyItem {
	mgr := content.NewManager(dir, slog.Default())
	if err := mgr.Discover(); err != nil {
		slog.Warn("vocabulary discovery failed", "dir", dir, "err", err)
		return arcade.FallbackVocabulary
	}
	words, err := mgr.LoadAll()
	if err != nil {
		slog.Info("using built-in vocabulary", "dir", dir, "reason", err)
		return arcade.FallbackVocabulary
	}
	return words
}

// recoverCrash restores the terminal before reporting a panic
func recoverCrash(screen tcell.Screen, where string) {
	if r := recover(); r != nil {
		screen.Fini()
		// \r\n for raw mode compatibility
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", where, r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
}
