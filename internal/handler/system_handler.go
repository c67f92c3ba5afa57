package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/response"
)

const healthTimeout = 2 * time.Second

// Pinger is implemented by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler reports process and dependency health.
type SystemHandler struct {
	db        Pinger
	rdb       *redis.Client
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler. rdb may be nil.
func NewSystemHandler(db Pinger, rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		db:        db,
		rdb:       rdb,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

// Health godoc
// GET /health
// Pings PostgreSQL and, when configured, Redis.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error().Err(err).Msg("Database health check failed")
		response.FailMessage(c, http.StatusServiceUnavailable, "Banco de dados indisponível")
		return
	}

	redisStatus := "disabled"
	if h.rdb != nil {
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			h.log.Error().Err(err).Msg("Redis health check failed")
			response.FailMessage(c, http.StatusServiceUnavailable, "Redis indisponível")
			return
		}
		redisStatus = "ok"
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":     "ok",
		"database":   "ok",
		"redis":      redisStatus,
		"uptime":     time.Since(h.startTime).Round(time.Second).String(),
		"goroutines": runtime.NumGoroutine(),
	})
}
