package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const fileName = "showdown.cfg.json"

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "")

	viper.SetDefault("server.url", "wss://sim.psim.us/showdown/websocket")
	viper.SetDefault("http.addr", ":42069")

	viper.SetDefault("data.pokedex", "data/pokedex.json")
	viper.SetDefault("data.moves", "data/moves.json")

	viper.SetDefault("battle.perspective", "p1")
	viper.SetDefault("battle.maxReconnects", 3)
	viper.SetDefault("battle.reconnectDelay", "2s")
	viper.SetDefault("battle.pingInterval", "20s")

	viper.SetEnvPrefix("SHOWDOWN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads showdown.cfg.json from configDir on top of the defaults.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(fileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// LoadDefaults configures defaults and environment overrides only.
func LoadDefaults() {
	setDefaults()
}

func GetString(key string) string {
	return viper.GetString(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration parses values such as "20s".
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}
