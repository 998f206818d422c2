package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinicdesk/internal/domain"
)

const (
	authorizationHeader = "Authorization"
	actorCtx            = "actor"
	userIDCtx           = "user_id"
	userRoleCtx         = "user_role"
)

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		logger := h.logger.With(
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
		)
		if id, ok := c.Get(userIDCtx); ok {
			logger = logger.With(zap.Any("user_id", id))
		}

		if status >= 500 {
			logger.Error("server error")
		} else if status >= 400 {
			logger.Warn("client error")
		} else {
			logger.Info("request processed")
		}
	}
}

func (h *Handler) errorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, err := range c.Errors {
			h.logger.Error("request error", zap.Error(err))
		}
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if len(h.config.HTTP.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = h.config.HTTP.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowHeaders("Authorization", "Accept", "X-Requested-With")
	corsConfig.AddExposeHeaders("Content-Disposition", reportArchiveHeader)
	corsConfig.MaxAge = 24 * time.Hour

	return cors.New(corsConfig)
}

func (h *Handler) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.metrics == nil {
			c.Next()
			return
		}

		h.metrics.InFlightGauge.Inc()
		start := time.Now()

		c.Next()

		h.metrics.InFlightGauge.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		h.metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		h.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		if header == "" {
			errorResponse(c, http.StatusUnauthorized, "пустой заголовок авторизации")
			return
		}

		headerParts := strings.Split(header, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			errorResponse(c, http.StatusUnauthorized, "неверный формат заголовка авторизации")
			return
		}

		actor, err := h.services.Auth.ParseToken(c.Request.Context(), headerParts[1])
		if err != nil {
			h.logger.Warn("отклонен токен", zap.Error(err))
			errorResponse(c, http.StatusUnauthorized, "недействительный токен")
			return
		}

		c.Set(actorCtx, actor)
		c.Set(userIDCtx, actor.ID)
		c.Set(userRoleCtx, actor.Role)

		c.Next()
	}
}

// roleMiddleware admits only the listed roles. It must run after authMiddleware.
func (h *Handler) roleMiddleware(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := getUserRole(c)
		if err != nil {
			unauthorizedResponse(c)
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		h.logger.Warn("доступ запрещен для роли",
			zap.String("role", string(role)),
			zap.String("path", c.FullPath()))
		forbiddenResponse(c)
	}
}

func getActor(c *gin.Context) (domain.Actor, error) {
	value, exists := c.Get(actorCtx)
	if !exists {
		return domain.Actor{}, errors.New("пользователь не авторизован")
	}

	actor, ok := value.(domain.Actor)
	if !ok {
		return domain.Actor{}, errors.New("некорректные данные пользователя")
	}

	return actor, nil
}

func getUserRole(c *gin.Context) (domain.UserRole, error) {
	userRole, exists := c.Get(userRoleCtx)
	if !exists {
		return "", errors.New("пользователь не авторизован")
	}

	role, ok := userRole.(domain.UserRole)
	if !ok {
		return "", errors.New("некорректная роль пользователя")
	}

	return role, nil
}
