// Command bot connects a crowd of headless players to a game server and
// drives them from the world snapshots they receive.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/automoto/wreckfield/network"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

type options struct {
	url      string
	count    int
	prefix   string
	rate     int
	duration time.Duration
	seed     uint64
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bot", flag.ContinueOnError)
	var opts options
	fs.StringVar(&opts.url, "url", "ws://localhost:3001/ws", "Game server websocket URL")
	fs.IntVar(&opts.count, "count", 4, "Number of bots")
	fs.StringVar(&opts.prefix, "name", "bot", "Name prefix")
	fs.IntVar(&opts.rate, "rate", 20, "Decisions per second")
	fs.DurationVar(&opts.duration, "duration", 0, "Stop after this long (0 runs until interrupted)")
	fs.Uint64Var(&opts.seed, "seed", 1, "Random seed for bot decisions")
	logLevel := fs.String("loglevel", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.count <= 0 || opts.rate <= 0 {
		return errors.New("count and rate must be positive")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(*logLevel),
	})))

	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	slog.Info("starting bots", "url", opts.url, "count", opts.count, "rate", opts.rate)

	g, gctx := errgroup.WithContext(ctx)
	for i := range opts.count {
		name := fmt.Sprintf("%s-%d", opts.prefix, i+1)
		rng := rand.New(rand.NewPCG(opts.seed, uint64(i)))
		g.Go(func() error {
			return drive(gctx, opts, name, rng)
		})
	}
	return g.Wait()
}

// drive runs one bot until ctx ends, its game is over or the server goes
// away. Only a failed join is reported as an error.
func drive(ctx context.Context, opts options, name string, rng *rand.Rand) error {
	log := slog.With("bot", name)
	client := network.NewClient(log)
	if err := client.Connect(ctx, opts.url, name); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	defer func() { _ = client.Disconnect() }()

	bot := network.NewBot(network.DefaultBotConfig(), rng)
	ticker := time.NewTicker(time.Second / time.Duration(opts.rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-client.Done():
			log.Info("server closed the connection")
			return nil
		case over := <-client.GameOver():
			log.Info("game over", "score", over.FinalScore)
			return nil
		case <-ticker.C:
			snap := client.LatestSnapshot()
			if snap == nil {
				continue
			}
			in := bot.Decide(client.PlayerID(), snap.World)
			if err := client.SendInput(ctx, in); err != nil {
				log.Debug("input not sent", "err", err)
			}
		}
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
