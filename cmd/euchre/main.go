// cmd/euchre/main.go

// Command euchre runs a configured tournament and prints per-pass
// leaderboards and the final result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/crashka/euchre-plt/internal/config"
	"github.com/crashka/euchre-plt/internal/rating"
	"github.com/crashka/euchre-plt/internal/tournament"
)

func main() {
	var (
		cfgPath = flag.String("config", "tournaments.yml", "tournament definition file")
		name    = flag.String("tournament", "", "tournament name to run (required)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if *name == "" {
		fmt.Fprintln(os.Stderr, "usage: euchre -config tournaments.yml -tournament <name>")
		os.Exit(2)
	}

	if err := run(*cfgPath, *name, logger); err != nil {
		logger.WithError(err).Fatal("tournament failed")
	}
}

func run(cfgPath, name string, logger *logrus.Logger) error {
	root, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	def, err := root.Tournament(name)
	if err != nil {
		return err
	}

	// stop at the next pass boundary on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	teams, err := root.BuildRoster(ctx, def, logger)
	if err != nil {
		return err
	}
	store, err := config.BuildStore(ctx, def.Rating.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	engine := rating.NewEngine(def.RatingProfile(name), store)
	sched, err := tournament.New(def.TournamentConfig(name), teams, engine, newTextSink(os.Stdout), logger)
	if err != nil {
		return err
	}

	res, err := sched.Run(ctx)
	if err != nil {
		return err
	}
	if res.Stopped {
		logger.Warn("tournament stopped early at pass boundary")
	}
	if !res.RatingsDurable {
		logger.Warn("ratings were not durably persisted; see log for details")
	}
	return nil
}
