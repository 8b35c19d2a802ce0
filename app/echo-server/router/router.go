package router

import (
	"storeRating/domain"
	"storeRating/internal/middleware"
	"storeRating/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler, tokens middleware.TokenParser) {
	auth := api.Group("/auth")

	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.POST("/change-password", handler.ChangePassword, middleware.AuthMiddleware(tokens))
}

func SetupStoreRoutes(api *echo.Group, handler *rest.StoreHandler, tokens middleware.TokenParser) {
	stores := api.Group("/stores")

	stores.GET("", handler.ListStores)
	stores.GET("/owner/dashboard", handler.OwnerDashboard,
		middleware.AuthMiddleware(tokens), middleware.RequireRole(domain.RoleStoreOwner))
	stores.GET("/:id", handler.GetStore, middleware.OptionalAuth(tokens))
}

func SetupRatingRoutes(api *echo.Group, handler *rest.RatingHandler, tokens middleware.TokenParser) {
	ratings := api.Group("/ratings", middleware.AuthMiddleware(tokens))

	ratings.POST("", handler.Submit)
	ratings.GET("/my-ratings", handler.MyRatings)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler, tokens middleware.TokenParser) {
	admin := api.Group("/admin", middleware.AuthMiddleware(tokens), middleware.AdminOnly())

	admin.GET("/dashboard", handler.Dashboard)

	admin.POST("/users", handler.CreateUser)
	admin.GET("/users", handler.ListUsers)
	admin.GET("/users/:id", handler.GetUser)
	admin.PUT("/users/:id", handler.UpdateUser)
	admin.DELETE("/users/:id", handler.DeleteUser)

	admin.POST("/stores", handler.CreateStore)
	admin.GET("/stores", handler.ListStores)
	admin.GET("/stores/:id", handler.GetStore)
	admin.PUT("/stores/:id", handler.UpdateStore)
	admin.DELETE("/stores/:id", handler.DeleteStore)
}
