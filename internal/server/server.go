package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/equipcheck/validator/internal/config"
	"github.com/equipcheck/validator/internal/core"
	"github.com/equipcheck/validator/internal/core/compare"
	"github.com/equipcheck/validator/internal/llm"
)

type Server struct {
	Pipeline *core.Pipeline
	Defaults config.PipelineConfig
	Logger   *zap.Logger
}

func NewServer() *Server {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Warn("could not load config file, using env/defaults", zap.String("path", cfgPath), zap.Error(err))
		cfg = &config.Config{}
	}

	// Env vars override file values.
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "ollama"
		cfg.LLM.Model = "gpt-oss:latest"
		cfg.LLM.BaseURL = "http://localhost:11434"
	}

	client, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	// The limiter is owned here and handed into the retrying client; the
	// pipeline itself carries no cross-request state.
	var limiter *rate.Limiter
	if cfg.Retry.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Retry.RequestsPerSecond), 1)
	}
	policy := llm.DefaultRetryPolicy
	if cfg.Retry.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.Retry.MaxAttempts
	}
	if cfg.Retry.BaseDelayMS > 0 {
		policy.BaseDelay = time.Duration(cfg.Retry.BaseDelayMS) * time.Millisecond
	}

	return &Server{
		Pipeline: core.NewPipeline(llm.NewRetryClient(client, policy, limiter), logger),
		Defaults: cfg.Pipeline,
		Logger:   logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/validate", s.Validate)

	return r
}

type ValidateRequest struct {
	EquipmentRows []map[string]any `json:"equipment_rows" binding:"required"`
	SpecRows      []map[string]any `json:"spec_rows" binding:"required"`
	Options       struct {
		Verify         *bool `json:"verify"`
		MaxChunkSize   int   `json:"max_chunk_size"`
		MaxConcurrency int   `json:"max_concurrency"`
	} `json:"options"`
}

func (s *Server) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	opts := core.Options{
		Verify:         s.Defaults.Verify,
		MaxChunkSize:   firstPositive(req.Options.MaxChunkSize, s.Defaults.MaxChunkSize),
		MaxConcurrency: firstPositive(req.Options.MaxConcurrency, s.Defaults.MaxConcurrency),
	}
	if req.Options.Verify != nil {
		opts.Verify = *req.Options.Verify
	}

	requestID := uuid.New().String()
	logger := s.Logger.With(zap.String("request_id", requestID))
	logger.Info("validation requested",
		zap.Int("equipment_rows", len(req.EquipmentRows)),
		zap.Int("spec_rows", len(req.SpecRows)),
		zap.Bool("verify", opts.Verify))

	report, err := s.Pipeline.Run(c.Request.Context(), req.EquipmentRows, req.SpecRows, opts)
	if err != nil {
		logger.Error("validation failed", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"error": err.Error(), "request_id": requestID})
		return
	}

	c.JSON(http.StatusOK, report)
}

// statusForError maps the pipeline error taxonomy onto transport codes:
// credential failures are a provider outage from the caller's view,
// exhausted retries mean try again later, parse failures are a bad
// upstream response.
func statusForError(err error) int {
	switch llm.ErrorKind(err) {
	case llm.KindAuth:
		return http.StatusServiceUnavailable
	case llm.KindMaxRetries:
		return http.StatusTooManyRequests
	}
	var perr *compare.ParseError
	if errors.As(err, &perr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
