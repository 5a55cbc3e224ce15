package main

import (
	"context"
	"fmt"
	"github.com/egaotan/solana-http-server/config"
	"github.com/egaotan/solana-http-server/encoder"
	"github.com/egaotan/solana-http-server/server"
	"github.com/egaotan/solana-http-server/store"
	"github.com/egaotan/solana-http-server/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"syscall"
)

const storeQueue = 1024

func main() {
	var configFile string
	root := &cobra.Command{
		Use:          "solana-http-server",
		Short:        "Builds unsigned solana instructions and signs messages over http",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configFile)
		},
	}
	root.Flags().StringVarP(&configFile, "config", "c", "", "path to a json config file")
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(configFile string) error {
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	go shutdown(cancel, quit)

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)
	logger := utils.NewLog(cfg.LogPath, config.ServerLog, cfg.LogMaxSize)

	var st *store.Store
	if cfg.StoreEnabled() {
		dao, err := store.NewDao(cfg.DBUrl, cfg.DBScheme, cfg.DBUser, cfg.DBPasswd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		st = store.NewStore(ctx, utils.NewLog(cfg.LogPath, config.StoreLog, cfg.LogMaxSize), dao, storeQueue)
	}

	fmt.Printf("solana http server starting on port %d\n", cfg.Port)
	fmt.Printf("health check: http://localhost:%d/health\n", cfg.Port)
	srv := server.NewServer(ctx, cfg, logger, encoder.NewEncoder(encoder.DefaultPrograms), st)
	srv.Service()
	return nil
}

func shutdown(cancel context.CancelFunc, quit <-chan os.Signal) {
	osCall := <-quit
	fmt.Printf("System call: %v, solana http server is shutting down......\n", osCall)
	cancel()
}
