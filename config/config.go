package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port    string `mapstructure:"port"`
			Enabled bool   `mapstructure:"enabled"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Storage struct {
		DataDir  string `mapstructure:"dataDir"`
		FileName string `mapstructure:"fileName"`
	} `mapstructure:"storage"`
	Providers struct {
		Gemini struct {
			Model       string  `mapstructure:"model"`
			Temperature float32 `mapstructure:"temperature"`
		} `mapstructure:"gemini"`
		Unsplash struct {
			BaseURL string        `mapstructure:"baseURL"`
			Timeout time.Duration `mapstructure:"timeout"`
		} `mapstructure:"unsplash"`
		OpenCage struct {
			BaseURL  string        `mapstructure:"baseURL"`
			Timeout  time.Duration `mapstructure:"timeout"`
			CacheTTL time.Duration `mapstructure:"cacheTTL"`
		} `mapstructure:"opencage"`
	} `mapstructure:"providers"`
	Map struct {
		Zoom        int    `mapstructure:"zoom"`
		TileURL     string `mapstructure:"tileURL"`
		Attribution string `mapstructure:"attribution"`
		Width       int    `mapstructure:"width"`
		Height      int    `mapstructure:"height"`
	} `mapstructure:"map"`
	Repositories struct {
		Postgres struct {
			Enabled           bool   `mapstructure:"enabled"`
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	}
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Secrets and per-deployment overrides, e.g. TRAVEL_SERVER_HTTPPORT.
	v.SetEnvPrefix("travel")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
