package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Spyyy004/designbuddy/internal/completion"
	"github.com/Spyyy004/designbuddy/internal/config"
	"github.com/Spyyy004/designbuddy/internal/domain"
	"github.com/Spyyy004/designbuddy/internal/handler"
	"github.com/Spyyy004/designbuddy/internal/repository"
	"github.com/Spyyy004/designbuddy/internal/service"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	blobRepo, err := repository.NewBlobRepository(&cfg.S3, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob repository: %w", err)
	}

	client := completion.NewClient(&cfg.OpenAI, log)
	caseStudyService := service.NewCaseStudyService(blobRepo, client, log)
	h := handler.NewHandler(caseStudyService, &cfg.App, log)

	router := NewRouter(h, cfg, log)
	router.Static("/static", cfg.App.StaticDir)
	router.StaticFile("/", cfg.App.StaticDir+"/index.html")

	server := &Server{
		httpServer: &http.Server{
			Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
			Handler: router,
			// The completion round trip can take tens of seconds, so the
			// write timeout has to outlast it.
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   180 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cfg: cfg,
		log: log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port))

	return server, nil
}

// NewRouter builds the route table without binding static assets or external
// collaborators, so tests can mount fake services behind real routes.
func NewRouter(h *handler.Handler, cfg *config.Config, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("Panic recovered", zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			domain.ErrorResult{Error: "Internal server error."})
	}))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.AllowedOrigin},
		AllowMethods:     []string{http.MethodPost},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", h.HealthCheck)
	router.POST("/upload", h.Upload)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, domain.ErrorResult{Error: "Route not found."})
	})

	return router
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
