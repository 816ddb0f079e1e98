package main

import (
	"context"
	"os"
	"os/signal"

	"syscall"

	"github.com/charmbracelet/log"
	sse "github.com/r3labs/sse/v2"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wrenholt/autolight/internal/config"
	"github.com/wrenholt/autolight/internal/controller"
	"github.com/wrenholt/autolight/internal/device"
	"github.com/wrenholt/autolight/internal/ntp"
	"github.com/wrenholt/autolight/internal/tui"
)

func main() {

	// read the config file
	config.InitialiseConfig()

	// the terminal belongs to the panel, logs go to a rolling file
	logger := log.NewWithOptions(&lumberjack.Logger{
		Filename: viper.GetString("logFile"),
		MaxAge:   3,
	}, log.Options{
		Level:      log.InfoLevel,
		TimeFormat: "2006/01/02 15:04:05",
	})
	logger.Info("autolight starting", "device", viper.GetString("deviceAddress"))

	// create/wire up services
	deviceAPI := device.NewDeviceAPIService(logger)
	ctrl := controller.NewSyncController(logger, deviceAPI)
	timeSync := ntp.NewTimeSyncService(logger, deviceAPI)
	panel := tui.NewPanelTUI(logger, ctrl, viper.GetBool("admin"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// keep the device clock honest in the background
	go timeSync.Run(ctx)

	// surface remote state changes as a reload hint in the panel
	eventConsumer := device.NewDeviceEventConsumer(logger)
	eventChannel := make(chan *sse.Event)
	go eventConsumer.Subscribe(eventChannel)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-eventChannel:
				panel.NotifyRemoteChange()
			}
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quitChannel
		cancel()
	}()

	// run the terminal UI, blocks until the user quits
	if err := panel.Run(); err != nil {
		logger.Error("panel exited with error", "err", err)
	}

	// cleanup before exit
	eventConsumer.Unsubscribe()
	cancel()
	logger.Info("autolight is closing")
}
