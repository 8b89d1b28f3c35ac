package main

// @title           Try Once API
// @version         1.0
// @description     E-commerce backend: auth, products, orders and sales.

// @host      localhost:5000
// @BasePath  /

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fatflowers/tryonce/internal/app"
	"github.com/fatflowers/tryonce/pkg/config"
	"github.com/fatflowers/tryonce/pkg/logger"
)

var version = "dev"

var (
	cfgFile string
	envFile string
)

var errExit = errors.New("exit")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tryonce-api",
		Short:         "Try Once e-commerce API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve()
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (same as APP_CONFIG_FILE)")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before configuration")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})
	return root
}

func startupLogger() *zap.SugaredLogger {
	if l, err := logger.New(); err == nil {
		return l
	}
	// Logging might not be ready; fallback to zap example
	return zap.NewExample().Sugar()
}

func serve() error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	if cfgFile != "" {
		if err := os.Setenv("APP_CONFIG_FILE", cfgFile); err != nil {
			return err
		}
	}

	a := app.New()
	startCtx, cancel := context.WithTimeout(context.Background(), app.DefaultStartTimeout)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		startupLogger().Errorw("Failed to start server", "err", err)
		return errExit
	}

	// Block until signal or a fatal server error
	sig := <-a.Wait()

	stopCtx, cancel2 := context.WithTimeout(context.Background(), app.DefaultStopTimeout)
	defer cancel2()
	if err := a.Stop(stopCtx); err != nil {
		startupLogger().Errorf("failed to stop app: %v", err)
		return errExit
	}
	if sig.ExitCode != 0 {
		return fmt.Errorf("%w: code %d", errExit, sig.ExitCode)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
