package server

import (
	"errors"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/config"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/datamodels/product"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/repository/mysql"
	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/service"
)

// RegisterAdminRoutes 注册后台管理端的 HTTP 路由。
// 端口通常是 8081，与前台 Web 服务分离。
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config) {
	db := mysql.Init(&cfg.MySQL)

	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)

	productSvc := service.NewProductService(productRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo, nil, nil)

	api := app.Party("/api")

	api.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// ---------- 商品管理 ----------

	api.Post("/products", func(ctx iris.Context) {
		var req product.Product
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"message": "Invalid request body"})
			return
		}
		req.ID = 0
		if err := productSvc.Create(ctx.Request().Context(), &req); err != nil {
			zap.L().Error("create product failed", zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Server Error"})
			return
		}
		ctx.JSON(&req)
	})

	api.Put("/products/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		var req product.Product
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(400, iris.Map{"message": "Invalid request body"})
			return
		}
		req.ID = id
		if err := productSvc.Update(ctx.Request().Context(), &req); err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				ctx.StopWithJSON(404, iris.Map{"message": "Product Not Found"})
				return
			}
			zap.L().Error("update product failed", zap.Int64("id", id), zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Server Error"})
			return
		}
		ctx.JSON(iris.Map{"message": "Updated successfully!"})
	})

	api.Delete("/products/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		if err := productSvc.Delete(ctx.Request().Context(), id); err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				ctx.StopWithJSON(404, iris.Map{"message": "Product Not Found"})
				return
			}
			zap.L().Error("delete product failed", zap.Int64("id", id), zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Server Error"})
			return
		}
		ctx.JSON(iris.Map{"message": "Product deleted"})
	})

	api.Get("/products", func(ctx iris.Context) {
		page := ctx.URLParamIntDefault("page", 1)
		list, pagination, err := productSvc.ListPage(ctx.Request().Context(), page)
		if err != nil {
			zap.L().Error("list products failed", zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Server Error"})
			return
		}
		ctx.JSON(iris.Map{"products": list, "pagination": pagination})
	})

	// ---------- 订单概览 ----------

	api.Get("/orders/recent", func(ctx iris.Context) {
		limit := ctx.URLParamIntDefault("limit", 20)
		list, err := orderSvc.ListRecent(ctx.Request().Context(), limit)
		if err != nil {
			zap.L().Error("list recent orders failed", zap.Error(err))
			ctx.StopWithJSON(500, iris.Map{"message": "Server Error"})
			return
		}
		ctx.JSON(list)
	})

	// ---------- 监控 ----------

	api.Get("/monitor", func(ctx iris.Context) {
		ctx.JSON(service.GetMonitor().GetStats())
	})
}
