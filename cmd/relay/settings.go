package main

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Settings struct {
	Port            int           `env:"PORT,default=5000" validate:"min=1,max=65535"`
	BasePath        string        `env:"BASE_PATH"`
	AllowedOrigins  string        `env:"ALLOWED_ORIGINS,default=*" validate:"required"`
	LogEncoding     string        `env:"LOG_ENCODING,default=console" validate:"oneof=console json"`
	LogLevel        string        `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	SendBufferSize  int           `env:"SEND_BUFFER_SIZE,default=256" validate:"min=1"`
	MaxFrameSize    int64         `env:"MAX_FRAME_SIZE,default=65536" validate:"min=512"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=30s"`
}

func (s Settings) Origins() []string {
	return strings.Split(s.AllowedOrigins, ",")
}

// loadDotEnv populates the environment from a .env file when one exists.
// Variables already set take precedence.
func loadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func parseSettings(environment env.EnvSet) (Settings, error) {
	var settings Settings
	if err := env.Unmarshal(environment, &settings); err != nil {
		return Settings{}, err
	}

	if err := validator.New().Struct(settings); err != nil {
		return Settings{}, err
	}

	return settings, nil
}
