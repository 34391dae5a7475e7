package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config — настройки процесса из окружения (.env подхватывается в main).
type Config struct {
	Port           string `envconfig:"APP_PORT" default:"8080"`
	DBDriver       string `envconfig:"DB_DRIVER" default:"postgres"`
	DBDSN          string `envconfig:"DB_DSN"`
	SessionSecret  string `envconfig:"SESSION_SECRET" default:"dev_fallback_secret"`
	UploadDir      string `envconfig:"UPLOAD_DIR" default:"uploads"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"12582912"` // 12 MiB
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, errors.Wrap(err, "read environment")
	}
	return c, nil
}
