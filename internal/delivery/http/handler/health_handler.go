package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthChecker - зависимость, умеющая отвечать на ping
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler - обработчик проверки живости сервиса и его зависимостей
type HealthHandler struct {
	checkers map[string]HealthChecker
	logger   *zap.Logger
}

// NewHealthHandler - создание нового HealthHandler
func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checkers: make(map[string]HealthChecker),
		logger:   logger,
	}
}

// Register добавляет зависимость под именем (redis, postgres)
func (h *HealthHandler) Register(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// Check godoc
// @Summary Проверка живости сервиса
// @Description Пингует зависимости и возвращает их статус
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	healthy := true
	dependencies := fiber.Map{}
	for name, checker := range h.checkers {
		if err := checker.Health(ctx); err != nil {
			h.logger.Warn("Dependency health check failed",
				zap.String("dependency", name), zap.Error(err))
			dependencies[name] = "unhealthy"
			healthy = false
			continue
		}
		dependencies[name] = "healthy"
	}

	status := "healthy"
	code := fiber.StatusOK
	if !healthy {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"dependencies": dependencies,
		"time":         time.Now().UTC(),
	})
}
