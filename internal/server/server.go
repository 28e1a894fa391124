package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/paperpress/internal/cache"
	"github.com/smallbiznis/paperpress/internal/config"
	"github.com/smallbiznis/paperpress/internal/observability/logger"
	"github.com/smallbiznis/paperpress/internal/observability/metrics"
	"github.com/smallbiznis/paperpress/internal/observability/tracing"
	"github.com/smallbiznis/paperpress/internal/render/export"
	"github.com/smallbiznis/paperpress/internal/render/preview"
	templatedomain "github.com/smallbiznis/paperpress/internal/template/domain"
)

const previewRateLimit = 30

// Server exposes the template catalog and rendering endpoints.
type Server struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB

	engine      *gin.Engine
	templateSvc templatedomain.Service
	previewer   preview.Renderer
	exporter    *export.PDFRenderer
	previewRate *rateLimiter
}

type ServerParam struct {
	fx.In

	Cfg         config.Config
	Log         *zap.Logger
	DB          *gorm.DB
	Engine      *gin.Engine
	TemplateSvc templatedomain.Service
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(cfg config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(tracing.GinMiddleware())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	return engine
}

func NewServer(p ServerParam) *Server {
	html := preview.NewHTMLRenderer()
	return &Server{
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		db:          p.DB,
		engine:      p.Engine,
		templateSvc: p.TemplateSvc,
		previewer:   preview.NewCachingRenderer(html, cache.NewTTLCache[string, string]()),
		exporter:    export.NewPDFRenderer(),
		previewRate: newRateLimiter(previewRateLimit, time.Minute),
	}
}

// RegisterRoutes mounts the API surface onto the engine.
func (s *Server) RegisterRoutes() {
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	api.Use(s.OrgScope())

	templates := api.Group("/templates")
	templates.GET("", s.ListTemplates)
	templates.POST("", s.CreateTemplate)
	templates.POST("/preview", s.PreviewDesign)
	templates.GET("/:id", s.GetTemplate)
	templates.PATCH("/:id", s.UpdateTemplate)
	templates.DELETE("/:id", s.DeleteTemplate)
	templates.POST("/:id/duplicate", s.DuplicateTemplate)
	templates.POST("/:id/default", s.SetDefaultTemplate)
	templates.POST("/:id/use", s.UseTemplate)
	templates.POST("/:id/export", s.ExportTemplatePDF)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (s *Server) Healthz(c *gin.Context) {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunHTTP starts the HTTP listener and ties it to the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("http server shutting down")
			return srv.Shutdown(ctx)
		},
	})
}

// Module wires the HTTP layer.
var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(RunHTTP),
)
