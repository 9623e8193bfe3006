package main

import (
	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/config"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/logger"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/server"
)

func main() {
	cfg, err := config.Load("./config")
	if err != nil {
		panic(err)
	}

	logger.Init(false)
	defer func() { _ = zap.L().Sync() }()

	decimal.MarshalJSONWithoutQuotes = true

	app := iris.New()
	server.RegisterAdminRoutes(app, cfg)

	addr := cfg.AdminServer.Addr()
	zap.L().Info("admin server listening", zap.String("addr", addr))
	if err := app.Run(
		iris.Addr(addr),
		iris.WithoutServerError(iris.ErrServerClosed),
	); err != nil {
		zap.L().Fatal("admin run failed", zap.Error(err))
	}
}
