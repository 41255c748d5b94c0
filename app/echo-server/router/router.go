package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hkk4567/webbanhang/internal/middleware"
	"github.com/hkk4567/webbanhang/internal/rest"
)

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")

	reco.GET("/user", handler.RecommendForUser)
	reco.GET("/item", handler.SimilarItems)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler) {
	admin := api.Group("/admin/recommendations", middleware.AuthMiddleware(), middleware.AdminOnly())

	admin.POST("/retrain", handler.Retrain)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
}
