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

	// 金额在 JSON 中输出为数字而不是字符串，前端按 number 消费
	decimal.MarshalJSONWithoutQuotes = true

	app := iris.New()
	server.RegisterRoutes(app, cfg)

	addr := cfg.Server.Addr()
	zap.L().Info("web server listening", zap.String("addr", addr))
	if err := app.Run(
		iris.Addr(addr),
		iris.WithoutServerError(iris.ErrServerClosed),
	); err != nil {
		zap.L().Fatal("app run failed", zap.Error(err))
	}
}
