// Package admin hosts the admin panel server: a separate router on its own
// port, gated by admin session tokens.
package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/database/books"
	"github.com/openshelf/openshelf/internal/database/categories"
	"github.com/openshelf/openshelf/internal/database/publishers"
	"github.com/openshelf/openshelf/internal/database/subscriptions"
	"github.com/openshelf/openshelf/internal/database/users"
	"github.com/openshelf/openshelf/internal/entities"
	httpx "github.com/openshelf/openshelf/internal/http"
	"github.com/openshelf/openshelf/internal/uploads"
)

// RouterConfig carries every dependency of the admin panel server.
type RouterConfig struct {
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware

	Users         *users.Repository
	Publishers    *publishers.Repository
	Books         *books.Repository
	Categories    *categories.Repository
	Subscriptions *subscriptions.Repository
	Uploads       *uploads.Store

	StaticPath    string
	TemplatesPath string

	SubscriptionDays int
}

// NewRouter builds the admin router. Everything under /api/admin except
// login requires an admin token; tokens issued to users or publishers
// never grant access here.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(httpx.CORSMiddleware())

	authController := NewAuthController(cfg.AuthService)
	usersController := NewUsersController(cfg.Users, cfg.Subscriptions, cfg.SubscriptionDays)
	publishersController := NewPublishersController(cfg.Publishers, cfg.Uploads)
	catalogController := NewCatalogController(cfg.Books, cfg.Categories, cfg.Uploads)

	router.POST("/api/admin/login", authController.Login)

	protected := router.Group("/api/admin", cfg.AuthMiddleware.RequireRole(entities.EntityTypeAdmin))
	{
		protected.GET("/users", usersController.List)
		protected.GET("/users/:id", usersController.Get)
		protected.POST("/users/update", usersController.Update)
		protected.POST("/users/delete", usersController.Delete)
		protected.POST("/users/add_subscription", usersController.AddSubscription)
		protected.POST("/users/remove_subscription", usersController.RemoveSubscription)

		protected.GET("/publishers", publishersController.List)
		protected.GET("/publishers/:id", publishersController.Get)
		protected.POST("/publishers/update", publishersController.Update)
		protected.POST("/publishers/delete", publishersController.Delete)

		protected.GET("/books", catalogController.ListBooks)
		protected.POST("/books/delete", catalogController.DeleteBook)

		protected.GET("/categories", catalogController.ListCategories)
		protected.POST("/categories/add", catalogController.AddCategory)
		protected.POST("/categories/delete", catalogController.DeleteCategory)
	}

	router.Static("/static", cfg.StaticPath)
	router.NoRoute(httpx.SPAFallback(cfg.TemplatesPath, "admin.html"))

	return router
}
