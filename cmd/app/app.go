package main

import (
	"os"

	"github.com/content-os/commerce-sync/internal/app"
	config "github.com/content-os/commerce-sync/internal/cfg"
	"github.com/content-os/commerce-sync/pkg/logger"
)

//	@title			Commerce Sync API
//	@version		1.0
//	@description	Двухтрековая синхронизация товарного каталога для контентного конвейера

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
