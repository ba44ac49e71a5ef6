package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	dbStatus := "up"
	if err := s.pingDB(ctx); err != nil {
		s.log.Warn().Err(err).Msg("health: database ping failed")
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	cacheStatus := "disabled"
	if s.redisClient != nil {
		cacheStatus = "up"
		if err := s.redisClient.Ping(ctx).Err(); err != nil {
			s.log.Warn().Err(err).Msg("health: redis ping failed")
			cacheStatus = "down"
			if s.cfg.Session.Store == "redis" {
				status = http.StatusServiceUnavailable
			}
		}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status":      overall,
		"database":    dbStatus,
		"cache":       cacheStatus,
		"environment": s.cfg.AppEnv,
	})
}

func (s *Server) pingDB(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
