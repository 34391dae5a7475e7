package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"catalog/internal/config"
	"catalog/internal/db"
	"catalog/internal/server"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// .env ищем и в текущей папке, и выше — запускают и из корня, и из cmd/server
	_ = godotenv.Overload(".env", "../.env", "../../.env")

	app := &cli.App{
		Name:  "catalog",
		Usage: "product catalog server with admin area",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Action: runServe,
			},
			{
				Name:   "init-db",
				Usage:  "create tables and seed defaults, then exit",
				Action: runInitDB,
			},
		},
		DefaultCommand: "serve",
	}
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("catalog exited")
	}
}

func openDatabase() (config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	gdb, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := db.Migrate(gdb); err != nil {
		return config.Config{}, nil, err
	}
	return cfg, gdb, nil
}

func runInitDB(*cli.Context) error {
	_, gdb, err := openDatabase()
	if err != nil {
		return err
	}
	if err := db.Seed(gdb); err != nil {
		return err
	}
	log.Info("database initialized")
	return nil
}

func runServe(*cli.Context) error {
	cfg, gdb, err := openDatabase()
	if err != nil {
		return err
	}
	if err := db.Seed(gdb); err != nil {
		return err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	r := server.New(gdb, cfg).Router()
	log.WithField("port", cfg.Port).Info("server listening")
	return r.Run(":" + cfg.Port)
}
