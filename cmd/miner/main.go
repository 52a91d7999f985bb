package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/services/miner"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/settings"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/stores/mempool"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/ulogger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "miner",
		Usage: "build and mine one proof-of-work block from a mempool directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mempool",
				Aliases: []string{"m"},
				Usage:   "directory of candidate transaction JSON files",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "file the block report is written to",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "number of nonce-search workers",
			},
			&cli.StringFlag{
				Name:  "loglevel",
				Value: "INFO",
				Usage: "log level (DEBUG, INFO, WARN, ERROR)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := ulogger.New("miner", ulogger.WithLevel(c.String("loglevel")))

	tSettings := settings.NewSettings()
	if c.IsSet("mempool") {
		tSettings.MempoolDir = c.String("mempool")
	}

	if c.IsSet("output") {
		tSettings.OutputFile = c.String("output")
	}

	if c.IsSet("workers") {
		tSettings.Miner.Workers = c.Int("workers")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := mempool.NewStore(logger, tSettings)

	solution, err := miner.NewMiner(logger, tSettings, store).MineBlock(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(tSettings.OutputFile)
	if err != nil {
		return fmt.Errorf("error creating output file %s: %w", tSettings.OutputFile, err)
	}
	defer f.Close()

	if _, err = solution.WriteTo(f); err != nil {
		return err
	}

	logger.Infof("wrote block report to %s", tSettings.OutputFile)

	return nil
}
