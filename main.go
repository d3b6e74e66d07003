// Command arena plays MCTS agents against each other on the bundled games.
//
//	arena -config arena.yaml             # run the configured experiment
//	arena -config arena.yaml -check      # check the game against the State contract
//	arena -config arena.yaml -throughput # measure episodes per second per agent
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"gamesearch/config"
	"gamesearch/conformance"
	"gamesearch/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("config", "", "Path to the yaml config file")
	check := flag.Bool("check", false, "Check the configured game with the conformance harness and exit")
	throughput := flag.Bool("throughput", false, "Measure search throughput of the configured agents and exit")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *check:
		runCheck(cfg)
	case *throughput:
		runThroughput(ctx, cfg)
	default:
		dir, err := experiments.Run(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		log.Info().Msgf("results stored in %s", dir)
	}
}

func runCheck(cfg *config.Config) {
	state, err := experiments.NewGame(cfg.Game)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	if err := conformance.Run(state, conformance.WithSeed(cfg.Seed)); err != nil {
		log.Fatal().Err(err).Msgf("%s breaks the game.State contract", cfg.Game)
	}
	log.Info().Msgf("%s satisfies the game.State contract", cfg.Game)
}

func runThroughput(ctx context.Context, cfg *config.Config) {
	state, err := experiments.NewGame(cfg.Game)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	if _, err := experiments.Throughput(ctx, cfg.Game, state, cfg.Agents); err != nil {
		log.Fatal().Err(err).Msg("throughput experiment failed")
	}
}
