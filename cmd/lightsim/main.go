package main

import (
	"context"
	"os"
	"os/signal"

	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/wrenholt/autolight/internal/config"
	"github.com/wrenholt/autolight/internal/repos"
	"github.com/wrenholt/autolight/internal/sim"
)

func main() {

	// read the config file
	config.InitialiseConfig()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:      log.InfoLevel,
		TimeFormat: "2006/01/02 15:04:05",
	})
	logger.Info("lightsim starting")

	repo, err := repos.NewStateRepo(logger, viper.GetString("sim.dbFile"))
	if err != nil {
		logger.Fatal("opening state database failed", "err", err)
	}
	defer repo.Close()

	server, err := sim.NewServer(logger, repo)
	if err != nil {
		logger.Fatal("initialising simulator failed", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quitChannel
		logger.Info("lightsim is closing")
		cancel()
	}()

	// drive the simulated output in the background, like the firmware loop
	go server.RunScheduler(ctx)

	if err := server.Run(ctx, viper.GetString("sim.listenAddress")); err != nil {
		logger.Fatal("simulator server failed", "err", err)
	}
}
