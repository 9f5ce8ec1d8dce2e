package config

import "github.com/spf13/viper"

type Config struct {
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	ServerPort   string
	HistoryLimit int
}

// Load reads configuration from the environment, falling back to defaults
// suitable for local development.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "gamebank")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("HISTORY_LIMIT", 50)

	return &Config{
		DBHost:       v.GetString("DB_HOST"),
		DBPort:       v.GetString("DB_PORT"),
		DBUser:       v.GetString("DB_USER"),
		DBPassword:   v.GetString("DB_PASSWORD"),
		DBName:       v.GetString("DB_NAME"),
		ServerPort:   v.GetString("SERVER_PORT"),
		HistoryLimit: v.GetInt("HISTORY_LIMIT"),
	}
}
