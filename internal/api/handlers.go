package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vendas/internal/extract"
	"vendas/internal/ledger"
	"vendas/internal/metrics"
	"vendas/internal/storage"
	"vendas/internal/stt"
	"vendas/internal/utils"
)

// Options carries the collaborators built once at startup.
type Options struct {
	Store     *storage.Store
	STT       stt.Provider
	Extractor *extract.Extractor
	Ledger    ledger.Appender
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	// Now stamps sale records; defaults to time.Now.
	Now func() time.Time
}

type Handler struct {
	store     *storage.Store
	stt       stt.Provider
	extractor *extract.Extractor
	ledger    ledger.Appender
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewHandler(opts Options) *Handler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	return &Handler{
		store:     opts.Store,
		stt:       opts.STT,
		extractor: opts.Extractor,
		ledger:    opts.Ledger,
		metrics:   m,
		logger:    opts.Logger.Named("webhook"),
		now:       now,
	}
}

// NewRouter builds the engine with the standard middleware stack.
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), recovery(logger), requestLogger(logger), corsMiddleware())
	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", healthCheck)
	r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	r.POST("/webhook/audio", h.receiveAudio)
}

// healthCheck returns server health status
func healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "vendas-webhook",
	})
}
