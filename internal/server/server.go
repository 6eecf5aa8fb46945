package server

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"rfqplan/internal/api"
	"rfqplan/internal/config"
	"rfqplan/internal/store"
)

// Server HTTP服务器
type Server struct {
	router  *gin.Engine
	store   *store.Store
	handler *api.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 SQLite Store
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "rfqplan.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	s := &Server{
		router:  gin.Default(),
		store:   sqliteStore,
		handler: api.NewHandler(sqliteStore),
	}

	s.setupRoutes()

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 路由
	apiGroup := s.router.Group("/api")
	{
		s.handler.RegisterRoutes(apiGroup)
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 关闭底层存储
func (s *Server) Close() error {
	return s.store.Close()
}
