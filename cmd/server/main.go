package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/fsgateway/internal/infrastructure/config"
	"github.com/GriffinCanCode/fsgateway/internal/infrastructure/logging"
	"github.com/GriffinCanCode/fsgateway/internal/server"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, args); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Error("Failed to create server", zap.Error(err))
		return err
	}
	defer srv.Close()

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// applyFlags overlays command line flags on the environment configuration.
// Only flags actually given override the environment.
func applyFlags(cfg *config.Config, args []string) error {
	flags := pflag.NewFlagSet("fsgateway", pflag.ContinueOnError)
	root := flags.String("root", cfg.Gateway.Root, "Sandbox root directory")
	prefix := flags.String("prefix", cfg.Gateway.Prefix, "API path prefix")
	port := flags.String("port", cfg.Server.Port, "Server port")
	host := flags.String("host", cfg.Server.Host, "Server host")
	static := flags.String("static", "", "Serve files from this directory outside the API prefix")
	dev := flags.Bool("dev", cfg.Logging.Development, "Development mode (console logs, debug level)")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flags.Arg(0))
	}

	cfg.Gateway.Root = *root
	cfg.Gateway.Prefix = config.NormalizePrefix(*prefix)
	cfg.Server.Port = *port
	cfg.Server.Host = *host
	if flags.Changed("static") {
		cfg.Gateway.Mode = config.ModeStatic
		cfg.Gateway.StaticDir = *static
	}
	if flags.Changed("dev") {
		cfg.Logging.Development = *dev
		if *dev {
			cfg.Logging.Level = "debug"
		}
	}
	return nil
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if cfg.Logging.Development {
		lc := logging.DevelopmentConfig()
		lc.Level = cfg.Logging.Level
		return logging.New(lc)
	}
	lc := logging.DefaultConfig()
	lc.Level = cfg.Logging.Level
	return logging.New(lc)
}
