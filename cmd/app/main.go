package main

import (
	"shine/config"
	"shine/di"
	"shine/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
