package config

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// InitialiseConfig reads the application config file into viper.
// Settings are read at their point of use via viper.Get*.
func InitialiseConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath("/etc/autolight/")
	viper.AddConfigPath("$HOME/.config/autolight/")
	viper.AddConfigPath(".")

	setDefaults()

	err := viper.ReadInConfig()
	if err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			// defaults are enough to run against the simulator
			log.Warn("no config file found, using defaults")
			return
		}
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
}

func setDefaults() {
	// address of the light controller (or the simulator)
	viper.SetDefault("deviceAddress", "127.0.0.1:8080")
	// whether pin assignments are editable in the panel
	viper.SetDefault("admin", false)
	// "lat,lng" used for the sunset schedule preset
	viper.SetDefault("geoLocation", "51.48,0.00")
	viper.SetDefault("logFile", "logs/autolight.log")

	// simulator settings
	viper.SetDefault("sim.listenAddress", ":8080")
	viper.SetDefault("sim.dbFile", "lightsim.db")
	viper.SetDefault("sim.ntpActive", false)
}
