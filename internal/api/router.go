package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopfoundry/go-catalog-backend/internal/domain"
	"github.com/shopfoundry/go-catalog-backend/internal/service"
	"github.com/shopfoundry/go-catalog-backend/pkg/middleware"
)

// SetupRoutes registers all routes on the router. Reads are public;
// mutating routes go through the auth gate.
func SetupRoutes(router *gin.Engine, handlers *Handlers, services *service.Services, logger *zap.Logger) {
	authn := middleware.Authenticate(services.Tokens, logger)
	adminOnly := middleware.RequireRole(services.Users, logger, domain.RoleAdmin)

	router.GET("/", handlers.Status)
	router.GET("/health", handlers.Status)

	category := router.Group("/category")
	{
		category.GET("", handlers.ListCategories)
		category.GET("/:id", handlers.GetCategory)
		category.GET("/name/:name", handlers.GetCategoryByName)
		category.GET("/:id/products", handlers.CategoryProducts)
		category.POST("", authn, adminOnly, handlers.CreateCategory)
		category.PUT("/:id", authn, adminOnly, handlers.UpdateCategory)
		category.DELETE("/:id", authn, adminOnly, handlers.DeleteCategory)
	}

	product := router.Group("/product")
	{
		product.GET("", handlers.ListProducts)
		product.GET("/:id", handlers.GetProduct)
		product.POST("", authn, adminOnly, handlers.CreateProduct)
		product.PUT("/:id", authn, adminOnly, handlers.UpdateProduct)
		product.DELETE("/:id", authn, adminOnly, handlers.DeleteProduct)
	}

	user := router.Group("/user")
	{
		user.POST("/register", handlers.Register)
		user.POST("/login", handlers.Login)
		user.GET("", authn, handlers.Me)
		user.GET("/admin", authn, adminOnly, handlers.AdminOnly)
		user.GET("/all", authn, adminOnly, handlers.ListUsers)
		user.PUT("/:id", authn, handlers.UpdateUser)
		user.DELETE("/:id", authn, handlers.DeleteUser)
		user.DELETE("/delete/:id", authn, adminOnly, handlers.AdminDeleteUser)
	}

	role := router.Group("/role")
	{
		role.GET("", handlers.ListRoles)
		role.GET("/:id", handlers.GetRole)
		role.POST("", authn, adminOnly, handlers.CreateRole)
		role.PUT("/:id", authn, adminOnly, handlers.UpdateRole)
		role.DELETE("/:id", authn, adminOnly, handlers.DeleteRole)
	}
}
