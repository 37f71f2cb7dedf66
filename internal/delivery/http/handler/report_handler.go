package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/weather-microservice/internal/pkg/utils"
	"github.com/weather-microservice/internal/pkg/validator"
	"github.com/weather-microservice/internal/usecase"
	"github.com/weather-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ReportHandler - обработчик архива отчётов
type ReportHandler struct {
	archiveUC *usecase.ReportArchiveUseCase
	logger    *zap.Logger
}

// NewReportHandler - создание нового ReportHandler
func NewReportHandler(archiveUC *usecase.ReportArchiveUseCase, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		archiveUC: archiveUC,
		logger:    logger,
	}
}

// GetRecentReports godoc
// @Summary Последние сохранённые отчёты о маршрутах
// @Description Возвращает последние отчёты из архива, новые первыми
// @Tags Reports
// @Accept json
// @Produce json
// @Param limit query int false "Максимальное число отчётов (1-100)" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.RecentReportsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/reports/recent [get]
func (h *ReportHandler) GetRecentReports(c *fiber.Ctx) error {
	var req dto.RecentReportsRequest
	req.Limit = c.QueryInt("limit", 20)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.archiveUC.GetRecentReports(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
