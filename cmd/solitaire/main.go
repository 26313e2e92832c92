package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Luto101/Solitaire/internal/config"
	"github.com/Luto101/Solitaire/internal/game"
	"github.com/Luto101/Solitaire/internal/scores"
	"github.com/Luto101/Solitaire/internal/terminal"
)

const bestScoresShown = 10

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	hardMode   = flag.Bool("hard", false, "draw three cards from the stock")
	seed       = flag.Uint64("seed", 0, "deal seed (0 picks a random one)")
	showScores = flag.Bool("scores", false, "show the best scores and exit")
	replayID   = flag.String("replay", "", "step through the saved replay of a session and exit")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting solitaire",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("solitaire stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "solitaire: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received shutdown signal", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	store, err := scores.Open(ctx, cfg.Scores, logger)
	if err != nil {
		return fmt.Errorf("open score store: %w", err)
	}
	defer store.Close()

	screen, err := terminal.New(logger)
	if err != nil {
		return err
	}
	defer screen.Close()

	if *showScores {
		return showBest(ctx, screen, store, "Solitaire", uuid.Nil)
	}
	if *replayID != "" {
		if cfg.Game.ReplayDir == "" {
			return errors.New("-replay needs game.replay_dir to be set")
		}
		r, err := game.LoadReplayFromFile(cfg.Game.ReplayDir, *replayID)
		if err != nil {
			return err
		}
		return screen.PlayReplay(ctx, r)
	}

	recycle, err := game.ParseRecyclePolicy(cfg.Game.Recycle)
	if err != nil {
		return err
	}
	confirm, err := game.ParseConfirmPolicy(cfg.Game.ConfirmPolicy)
	if err != nil {
		return err
	}

	sess, err := game.NewSession(game.Options{
		HardMode: cfg.Game.HardMode,
		Seed:     cfg.Game.Seed,
		Recycle:  recycle,
		Confirm:  confirm,
	}, logger)
	if err != nil {
		return err
	}

	var rec *game.ReplayRecorder
	if cfg.Game.ReplayDir != "" {
		rec = game.RecordSession(sess, cfg.Game.ReplayDir, logger)
	}

	moves, err := sess.Run(ctx, screen, screen, screen)
	if rec != nil {
		if err := rec.Save(); err != nil {
			logger.Error("failed to save replay", zap.Error(err))
		}
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	if moves == game.QuitSentinel || moves <= 0 {
		return nil
	}

	score := scores.Score{
		ID:       sess.ID(),
		Start:    sess.Started(),
		End:      time.Now(),
		Moves:    moves,
		HardMode: sess.HardMode(),
	}
	if err := store.Save(ctx, score); err != nil {
		// A lost score should not hide the victory screen.
		logger.Error("failed to save score", zap.Error(err), zap.String("score_id", score.ID.String()))
	}
	return showBest(ctx, screen, store, fmt.Sprintf("You won in %d moves!", moves), score.ID)
}

func showBest(ctx context.Context, screen *terminal.Screen, store scores.Store, title string, latest uuid.UUID) error {
	all, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list scores: %w", err)
	}
	return screen.ShowScores(ctx, title, scores.Best(all, bestScoresShown), highlighted(all, latest))
}

// highlighted picks the score to mark: the given one, or the most recently
// started game when none is given.
func highlighted(all []scores.Score, latest uuid.UUID) uuid.UUID {
	if latest != uuid.Nil {
		return latest
	}
	if l, ok := scores.Latest(all); ok {
		return l.ID
	}
	return uuid.Nil
}

// applyFlags lets explicitly set command-line flags override the config.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hard":
			cfg.Game.HardMode = *hardMode
		case "seed":
			cfg.Game.Seed = *seed
		}
	})
}

// initLogger initializes the zap logger based on configuration. Output goes
// to the configured file because the terminal belongs to the game screen.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
