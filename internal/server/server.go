// Package server is the thin HTTP glue around the cleansing core: it
// accepts an upload, invokes one classify-and-export call and serves the
// two result files back as downloads. All classification semantics live in
// pkg/cleansing.
package server

import (
	"embed"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fachry26/acengcleansing/internal/config"
)

//go:embed static/index.html
var staticFiles embed.FS

// Server wires the routes to the cleansing core.
type Server struct {
	cfg    *config.Config
	log    *zap.Logger
	engine *gin.Engine
}

// New builds a Server and ensures the upload and processed directories
// exist.
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	for _, dir := range []string{cfg.UploadDir, cfg.ProcessedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.MaxMultipartMemory = cfg.MaxUploadMB << 20

	s := &Server{cfg: cfg, log: log, engine: engine}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/process-excel", s.handleProcess)
	s.engine.GET("/downloads/:filename", s.handleDownload)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	s.log.Info("starting server", zap.String("addr", s.cfg.Addr))
	return s.engine.Run(s.cfg.Addr)
}
