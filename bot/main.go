package main

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	mrand "math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pokerbot/bot/agent"
	"pokerbot/bot/config"
	"pokerbot/bot/game"
	"pokerbot/bot/policy"
	"pokerbot/bot/replay"
	"pokerbot/bot/store"
)

var (
	cfg    *config.Config
	logger zerolog.Logger
)

//
// ===== bootstrap =====
//

func newLogger(c *config.Config, w io.Writer) zerolog.Logger {
	if c.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(c.Level()).With().Timestamp().Logger()
}

func secureBaseSeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err == nil {
		return int64(binary.LittleEndian.Uint64(b[:]) ^ uint64(time.Now().UnixNano()) ^ uint64(os.Getpid()))
	}
	return time.Now().UnixNano() ^ 0x5A5A5A5A5A5A5A5A
}

func watchSignals(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Info().Msg("shutdown signal received")
	cancel()
}

// openJournal returns the Postgres journal when DATABASE_URL is set and an
// in-memory one otherwise. close is always safe to call.
func openJournal(ctx context.Context) (j store.Journal, closeFn func(), err error) {
	if cfg.DatabaseURL == "" {
		logger.Info().Msg("DATABASE_URL empty; journaling in memory")
		return store.NewMemory(), func() {}, nil
	}
	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping db: %w", err)
	}
	return db, db.Close, nil
}

//
// ===== commands =====
//

var rootCmd = &cobra.Command{
	Use:   "pokerbot",
	Short: "Heuristic bot for heads-up discard hold'em",
	Long: `Decision bot for a two-player fixed-limit hold'em variant with a
discard-and-draw street. Configuration comes from the environment (and .env);
flags override it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		logger = newLogger(cfg, os.Stderr)
		return nil
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay <events.jsonl|->",
	Short: "Play the bot through a recorded event log and print its actions",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve session stats from the decision journal",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the journal schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for migrate")
		}
		ctx := cmd.Context()
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := store.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info().Msg("migrated")
		return nil
	},
}

func runReplay(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go watchSignals(cancel)

	var in io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	journal, closeJournal, err := openJournal(ctx)
	if err != nil {
		return err
	}
	defer closeJournal()

	seed := cfg.Seed
	if seed == 0 {
		seed = secureBaseSeed()
	}
	sess := store.Session{ID: uuid.New(), BotName: cfg.BotName, Variant: cfg.PolicyVariant().String(), Seed: seed}
	if err := journal.CreateSession(ctx, sess); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	logger.Info().
		Str("session", sess.ID.String()).
		Str("variant", sess.Variant).
		Int64("seed", seed).
		Msg("replay starting")

	pol := policy.New(mrand.New(mrand.NewSource(seed)), policy.WithVariant(cfg.PolicyVariant()))
	player := agent.NewPlayer(cfg.BotName, pol,
		agent.WithJournal(journal),
		agent.WithLogger(logger),
		agent.WithSession(sess.ID),
	)

	out := cmd.OutOrStdout()
	n, err := replay.Run(ctx, in, player, func(s replay.Step) error {
		_, err := fmt.Fprintf(out, "round %d street %d: %s\n", s.Round, s.Street, s.Action)
		return err
	})
	if err != nil {
		return fmt.Errorf("replay after %d actions: %w", n, err)
	}

	t, err := journal.SessionStats(ctx, sess.ID)
	if err != nil {
		return err
	}
	sum := t.Summary(game.BigBlind)
	fmt.Fprintf(out, "deals=%d net=%d bb/100=%.1f af=%.2f discards=%d raises=%d calls=%d checks=%d folds=%d\n",
		sum.Deals, sum.NetChips, sum.BBPer100, sum.AF, sum.Discards, sum.Raises, sum.Calls, sum.Checks, sum.Folds)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required for serve")
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           Router(db, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("stats server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	go watchSignals(cancel)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	return <-errCh
}

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json, console)")
	pf.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres DSN for the decision journal")

	replayCmd.Flags().StringVar(&cfg.BotName, "name", cfg.BotName, "Bot name recorded in the journal")
	replayCmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one)")
	replayCmd.Flags().StringVar(&cfg.Variant, "variant", cfg.Variant, "Policy variant (faithful, suit-draw)")

	serveCmd.Flags().StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP listen address")

	rootCmd.AddCommand(replayCmd, serveCmd, migrateCmd)
	rootCmd.SetUsageTemplate(rootCmd.UsageTemplate() + "\nEnvironment:\n" + config.Usage())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
