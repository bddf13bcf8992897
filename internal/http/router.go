package http

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/database/bookmarks"
	"github.com/openshelf/openshelf/internal/database/books"
	"github.com/openshelf/openshelf/internal/database/categories"
	"github.com/openshelf/openshelf/internal/database/history"
	"github.com/openshelf/openshelf/internal/database/publishers"
	"github.com/openshelf/openshelf/internal/database/subscriptions"
	"github.com/openshelf/openshelf/internal/database/users"
	"github.com/openshelf/openshelf/internal/entities"
	"github.com/openshelf/openshelf/internal/uploads"
)

// RouterConfig carries every dependency of the public storefront server.
type RouterConfig struct {
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware

	Users         *users.Repository
	Publishers    *publishers.Repository
	Books         *books.Repository
	Categories    *categories.Repository
	Subscriptions *subscriptions.Repository
	Bookmarks     *bookmarks.Repository
	History       *history.Repository
	Uploads       *uploads.Store

	StaticPath    string
	TemplatesPath string

	SubscriptionDays int
	HistoryLimit     int
}

// NewRouter builds the public storefront router: open catalog routes,
// role-gated user and publisher routes, upload-aware static serving and
// the SPA fallback.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())

	accounts := NewAccountsController(cfg.AuthService, cfg.Users, cfg.Subscriptions, cfg.SubscriptionDays)
	publishersController := NewPublishersController(cfg.AuthService, cfg.Publishers, cfg.Uploads)
	booksController := NewBooksController(cfg.Books, cfg.Uploads)
	reader := NewReaderController(cfg.Books, cfg.Subscriptions, cfg.Uploads)
	categoriesController := NewCategoriesController(cfg.Categories)
	library := NewLibraryController(cfg.Bookmarks, cfg.History, cfg.HistoryLimit)

	requireUser := cfg.AuthMiddleware.RequireRole(entities.EntityTypeUser)
	requirePublisher := cfg.AuthMiddleware.RequireRole(entities.EntityTypePublisher)

	// Open routes
	router.POST("/api/login", accounts.Login)
	router.POST("/api/user/register", accounts.RegisterUser)
	router.POST("/api/publisher/register", publishersController.Register)
	router.GET("/api/books", booksController.List)
	router.GET("/api/categories", categoriesController.List)
	router.GET("/api/publisher-details", publishersController.PublicDetails)

	// User routes
	router.POST("/api/user/profile", requireUser, accounts.UpdateProfile)
	router.POST("/api/user/subscribe", requireUser, accounts.Subscribe)
	router.GET("/api/books/read/:id", requireUser, reader.Read)
	router.GET("/api/user/bookmarks", requireUser, library.ListBookmarks)
	router.POST("/api/user/bookmarks/add", requireUser, library.AddBookmark)
	router.POST("/api/user/bookmarks/remove", requireUser, library.RemoveBookmark)
	router.GET("/api/user/history", requireUser, library.ListHistory)
	router.POST("/api/user/history/add", requireUser, library.TouchHistory)

	// Publisher routes
	router.GET("/api/books/publisher", requirePublisher, booksController.ListOwn)
	router.POST("/api/books/add", requirePublisher, booksController.Add)
	router.POST("/api/books/update", requirePublisher, booksController.Update)
	router.POST("/api/books/delete", requirePublisher, booksController.Delete)

	// Static assets; raw PDFs are only reachable through the protected
	// read endpoint, never by direct path.
	router.Use(blockDirectPDFAccess())
	router.Static("/static", cfg.StaticPath)

	// Unmatched /api/* paths are API 404s; anything else serves the SPA
	// shell and lets the client-side router take over.
	router.NoRoute(SPAFallback(cfg.TemplatesPath, "index.html"))

	return router
}

// blockDirectPDFAccess rejects any request that tries to fetch uploaded
// PDFs through the static file tree.
func blockDirectPDFAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		cleaned := filepath.ToSlash(filepath.Clean(c.Request.URL.Path))
		if strings.Contains(cleaned, "/uploads/pdfs") {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error: "Direct access to PDF files is forbidden",
			})
			return
		}
		c.Next()
	}
}

// SPAFallback serves the single HTML shell for non-API paths and a JSON
// 404 for unmatched API routes.
func SPAFallback(templatesPath, shell string) gin.HandlerFunc {
	shellPath := filepath.Join(templatesPath, shell)
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			RespondNotFound(c, "API endpoint not found")
			return
		}
		c.File(shellPath)
	}
}
