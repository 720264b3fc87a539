package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"packsite/backend/internal/handler"
	"packsite/backend/internal/middleware"
)

// RouterOptions collects everything the router needs. Handlers left nil
// simply don't get routes, which keeps tests free to wire a subset.
type RouterOptions struct {
	AuthHandler    *handler.AuthHandler
	BlogHandler    *handler.BlogHandler
	ArticleHandler *handler.ArticleHandler
	CatalogHandler *handler.CatalogHandler
	LeadHandler    *handler.LeadHandler
	UploadHandler  *handler.UploadHandler

	AuthMW      middleware.Authenticator
	LeadLimiter *middleware.RateLimitMiddleware

	UploadRoot     string
	AllowedOrigins []string
}

// NewRouter builds the gin engine: public read API, public lead intake,
// and the session-guarded admin API, plus /metrics and static uploads.
func NewRouter(opts RouterOptions) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: gin.LogFormatter(func(params gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s\" %d %s\n",
				params.ClientIP,
				params.TimeStamp.Format(time.RFC3339),
				params.Method,
				params.Path,
				params.StatusCode,
				params.Latency,
			)
		}),
	}))

	if opts.UploadRoot != "" {
		r.Static("/uploads", opts.UploadRoot)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		if opts.BlogHandler != nil {
			api.GET("/blogs", opts.BlogHandler.List)
			api.GET("/blogs/:slug", opts.BlogHandler.GetBySlug)
			api.GET("/blog-categories", opts.BlogHandler.Categories)
		}
		if opts.ArticleHandler != nil {
			api.GET("/articles", opts.ArticleHandler.List)
			api.GET("/articles/:slug", opts.ArticleHandler.GetBySlug)
		}
		if opts.CatalogHandler != nil {
			api.GET("/products", opts.CatalogHandler.ListProducts)
			api.GET("/portfolio", opts.CatalogHandler.ListPortfolio)
			api.GET("/catalog-images", opts.CatalogHandler.CatalogImages)
		}

		if opts.LeadHandler != nil {
			intake := api.Group("")
			if opts.LeadLimiter != nil {
				intake.Use(opts.LeadLimiter.Handle())
			}
			intake.POST("/contact", opts.LeadHandler.SubmitContact)
			intake.POST("/agent-applications", opts.LeadHandler.SubmitApplication)
		}

		if opts.AuthHandler != nil {
			authGroup := api.Group("/auth")
			authGroup.GET("/captcha", opts.AuthHandler.Captcha)
			authGroup.POST("/login", opts.AuthHandler.Login)
		}

		admin := api.Group("/admin")
		if opts.AuthMW != nil {
			admin.Use(opts.AuthMW.Handle())
		}
		if opts.AuthHandler != nil {
			admin.POST("/logout", opts.AuthHandler.Logout)
			admin.GET("/me", opts.AuthHandler.Me)
		}
		if opts.BlogHandler != nil {
			admin.GET("/blogs", opts.BlogHandler.AdminList)
			admin.GET("/blogs/:id", opts.BlogHandler.AdminGet)
			admin.POST("/blogs", opts.BlogHandler.Create)
			admin.PATCH("/blogs/:id", opts.BlogHandler.Update)
			admin.DELETE("/blogs/:id", opts.BlogHandler.Delete)

			admin.GET("/blog-categories", opts.BlogHandler.AdminCategories)
			admin.POST("/blog-categories", opts.BlogHandler.CreateCategory)
			admin.PUT("/blog-categories/:id", opts.BlogHandler.UpdateCategory)
			admin.DELETE("/blog-categories/:id", opts.BlogHandler.DeleteCategory)
		}
		if opts.ArticleHandler != nil {
			admin.GET("/articles", opts.ArticleHandler.AdminList)
			admin.GET("/articles/:id", opts.ArticleHandler.AdminGet)
			admin.POST("/articles", opts.ArticleHandler.Create)
			admin.PATCH("/articles/:id", opts.ArticleHandler.Update)
			admin.DELETE("/articles/:id", opts.ArticleHandler.Delete)
		}
		if opts.CatalogHandler != nil {
			admin.GET("/products", opts.CatalogHandler.AdminListProducts)
			admin.POST("/products", opts.CatalogHandler.CreateProduct)
			admin.PUT("/products/:id", opts.CatalogHandler.UpdateProduct)
			admin.DELETE("/products/:id", opts.CatalogHandler.DeleteProduct)

			admin.GET("/portfolio", opts.CatalogHandler.AdminListPortfolio)
			admin.POST("/portfolio", opts.CatalogHandler.CreatePortfolio)
			admin.PUT("/portfolio/:id", opts.CatalogHandler.UpdatePortfolio)
			admin.DELETE("/portfolio/:id", opts.CatalogHandler.DeletePortfolio)
		}
		if opts.LeadHandler != nil {
			admin.GET("/contacts", opts.LeadHandler.ListContacts)
			admin.GET("/contacts/export", opts.LeadHandler.ExportContacts)
			admin.PATCH("/contacts/:id", opts.LeadHandler.UpdateContact)
			admin.DELETE("/contacts/:id", opts.LeadHandler.DeleteContact)

			admin.GET("/agent-applications", opts.LeadHandler.ListApplications)
			admin.GET("/agent-applications/export", opts.LeadHandler.ExportApplications)
			admin.PATCH("/agent-applications/:id", opts.LeadHandler.UpdateApplication)
			admin.DELETE("/agent-applications/:id", opts.LeadHandler.DeleteApplication)
		}
		if opts.UploadHandler != nil {
			admin.POST("/uploads", opts.UploadHandler.UploadImage)
		}
	}

	return r
}

// corsConfig allows the configured site origins plus localhost for
// development.
func corsConfig(allowed []string) cors.Config {
	allowSet := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		allowSet[origin] = struct{}{}
	}

	return cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
		AllowOriginFunc: func(origin string) bool {
			if origin == "" {
				return false
			}
			if _, ok := allowSet[origin]; ok {
				return true
			}
			if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
				return true
			}
			return false
		},
	}
}
