package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IBM-i2/analyze-connect/internal/apperr"
	"github.com/IBM-i2/analyze-connect/internal/config"
	"github.com/IBM-i2/analyze-connect/internal/core"
	"github.com/IBM-i2/analyze-connect/internal/core/model"
)

type Server struct {
	Data   *core.ExternalDataService
	Demo   *core.DemoDataService
	Config *config.Config
	Logger *slog.Logger
}

func NewServer(data *core.ExternalDataService, demo *core.DemoDataService, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Server{
		Data:   data,
		Demo:   demo,
		Config: cfg,
		Logger: logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(s.Logger), recordMetrics())

	r.GET("/config", s.ConnectorConfig)
	r.GET("/schema", s.serveFile(s.Config.Server.SchemaPath))
	r.GET("/charting-schemes", s.serveFile(s.Config.Server.ChartingSchemesPath))
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.POST("/all", s.All)
	r.POST("/search", s.Search)
	r.POST("/find-like-this", s.FindLikeThis)
	r.POST("/expand", s.Expand)
	r.POST("/test-data", s.TestData)

	return r
}

func (s *Server) ConnectorConfig(c *gin.Context) {
	c.JSON(http.StatusOK, connectorConfig())
}

func (s *Server) serveFile(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if path == "" {
			c.JSON(http.StatusNotFound, gin.H{"errorMessage": "not configured"})
			return
		}
		c.File(path)
	}
}

func (s *Server) All(c *gin.Context) {
	resp, err := s.Data.All(c.Request.Context())
	s.respond(c, resp, err)
}

func (s *Server) Search(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}
	resp, err := s.Data.Search(c.Request.Context(), req.Payload.Conditions)
	s.respond(c, resp, err)
}

func (s *Server) FindLikeThis(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}
	resp, err := s.Data.FindLikeThis(c.Request.Context(), req.Payload.Seeds)
	s.respond(c, resp, err)
}

func (s *Server) Expand(c *gin.Context) {
	req, ok := s.bind(c)
	if !ok {
		return
	}
	resp, err := s.Data.Expand(c.Request.Context(), req.Payload.Seeds)
	s.respond(c, resp, err)
}

func (s *Server) TestData(c *gin.Context) {
	resp, err := s.Demo.Retrieve(c.Request.Context())
	s.respond(c, resp, err)
}

func (s *Server) bind(c *gin.Context) (model.ConnectorRequest, bool) {
	var req model.ConnectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.log(c).Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": "invalid request body: " + err.Error()})
		return req, false
	}
	return req, true
}

func (s *Server) respond(c *gin.Context, resp *model.ConnectorResponse, err error) {
	if err != nil {
		status := statusFor(err)
		s.log(c).Error("request failed", "status", status, "error", err)
		c.JSON(status, gin.H{"errorMessage": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// statusFor maps an error kind to the status returned to the client.
// Failures of the external source are reported as a bad gateway.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrMalformedSeed), errors.Is(err, apperr.ErrInvalidCondition):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrAuth), errors.Is(err, apperr.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
