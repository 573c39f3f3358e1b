package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type EnvConfig struct {
	Environment  string `envconfig:"ENVIRONMENT"`
	Port         string `envconfig:"PORT" default:"3000"`
	AppName      string `envconfig:"APP_NAME" default:"spaboot"`
	ProjectDir   string `envconfig:"PROJECT_DIR"`
	DistDir      string `envconfig:"DIST_DIR"`
	// Cache-Control max-age in seconds for files served from DistDir.
	StaticMaxAge int    `envconfig:"STATIC_MAX_AGE"`
	ViteConfig   string `envconfig:"VITE_CONFIG"`
	ViteURL      string `envconfig:"VITE_URL"`
}

func loadEnv(filenames ...string) (*EnvConfig, error) {
	var cfg EnvConfig

	// A missing .env file is fine, the environment may already be set.
	err := godotenv.Load(filenames...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	err = envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoadEnv(filenames ...string) *EnvConfig {
	cfg, err := loadEnv(filenames...)
	if err != nil {
		panic(err)
	}

	return cfg
}
