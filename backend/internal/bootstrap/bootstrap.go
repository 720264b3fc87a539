package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"packsite/backend/internal/app"
	"packsite/backend/internal/config"
	"packsite/backend/internal/handler"
	"packsite/backend/internal/infra/captcha"
	"packsite/backend/internal/infra/notify"
	"packsite/backend/internal/infra/ratelimit"
	"packsite/backend/internal/infra/session"
	"packsite/backend/internal/middleware"
	"packsite/backend/internal/repository"
	"packsite/backend/internal/server"
	articlesvc "packsite/backend/internal/service/article"
	authsvc "packsite/backend/internal/service/auth"
	blogsvc "packsite/backend/internal/service/blog"
	catalogsvc "packsite/backend/internal/service/catalog"
	leadsvc "packsite/backend/internal/service/lead"
)

// Lead intake throttle: per IP, fixed window.
const (
	leadIntakeLimit  = 5
	leadIntakeWindow = time.Minute
)

// Application is the fully wired process: services for the commands,
// the router for the HTTP server.
type Application struct {
	Resources *app.Resources
	AuthSvc   *authsvc.Service
	BlogSvc   *blogsvc.Service
	LeadSvc   *leadsvc.Service
	Router    http.Handler
}

// BuildApplication wires repositories, services, handlers and the
// router on top of the connected resources.
func BuildApplication(ctx context.Context, logger *zap.SugaredLogger, resources *app.Resources, rt config.Runtime) (*Application, error) {
	blogRepo := repository.NewBlogRepository(resources.DB)
	categoryRepo := repository.NewCategoryRepository(resources.DB)
	articleRepo := repository.NewArticleRepository(resources.DB)
	catalogRepo := repository.NewCatalogRepository(resources.DB)
	leadRepo := repository.NewLeadRepository(resources.DB)
	userRepo := repository.NewUserRepository(resources.DB)

	sessions := session.NewManager(rt.SessionSecret, rt.SessionTTL)

	var registry session.Store
	if resources.Redis != nil {
		registry = session.NewRedisStore(resources.Redis, "")
	} else {
		registry = session.NewMemoryStore()
		logger.Infow("using in-memory session registry; sessions won't survive restarts")
	}

	captchaManager, err := initCaptchaManager(resources, logger)
	if err != nil {
		return nil, err
	}

	var limiter ratelimit.Limiter
	if resources.Redis != nil {
		limiter = ratelimit.NewRedisLimiter(resources.Redis, "")
	} else {
		limiter = ratelimit.NewMemoryLimiter()
	}

	var pusher notify.Pusher
	var recipient string
	if notifyOpts, configured := notify.LoadOptionsFromEnv(); configured {
		pusher = notify.NewLineClient(notifyOpts)
		recipient = notifyOpts.RecipientID
		logger.Infow("chat notifications enabled")
	} else {
		logger.Infow("chat notifications disabled; leads persist without a push")
	}

	authService := authsvc.NewService(userRepo, sessions, registry, captchaManager)
	blogService := blogsvc.NewService(blogRepo, categoryRepo)
	articleService := articlesvc.NewService(articleRepo)
	catalogService := catalogsvc.NewService(catalogRepo)
	leadService := leadsvc.NewService(leadRepo, pusher, recipient)

	router := server.NewRouter(server.RouterOptions{
		AuthHandler:    handler.NewAuthHandler(authService),
		BlogHandler:    handler.NewBlogHandler(blogService),
		ArticleHandler: handler.NewArticleHandler(articleService),
		CatalogHandler: handler.NewCatalogHandler(catalogService),
		LeadHandler:    handler.NewLeadHandler(leadService),
		UploadHandler:  handler.NewUploadHandler(rt.UploadRoot),
		AuthMW:         middleware.NewSessionMiddleware(sessions, registry),
		LeadLimiter:    middleware.NewRateLimitMiddleware(limiter, "lead", leadIntakeLimit, leadIntakeWindow),
		UploadRoot:     rt.UploadRoot,
		AllowedOrigins: rt.CORSOrigins,
	})

	return &Application{
		Resources: resources,
		AuthSvc:   authService,
		BlogSvc:   blogService,
		LeadSvc:   leadService,
		Router:    router,
	}, nil
}

func initCaptchaManager(resources *app.Resources, logger *zap.SugaredLogger) (*captcha.Manager, error) {
	captchaOpts, captchaEnabled, err := captcha.LoadOptionsFromEnv()
	if err != nil {
		logger.Errorw("load captcha config failed", "error", err)
		return nil, fmt.Errorf("load captcha config: %w", err)
	}

	if !captchaEnabled {
		return nil, nil
	}

	if resources.Redis == nil {
		return nil, fmt.Errorf("captcha enabled but redis not configured")
	}

	manager := captcha.NewManager(resources.Redis, captchaOpts)
	logger.Infow("login captcha enabled", "prefix", captchaOpts.Prefix, "ttl", captchaOpts.TTL)
	return manager, nil
}
