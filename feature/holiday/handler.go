package holiday

import (
	"strconv"
	"strings"

	"holiday-keeper/core/logger"
	"holiday-keeper/feature/holiday/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for holidays.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the holiday routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/holidays")
	group.Get("/", h.HandleSearch)
	group.Post("/:countryCode/:year", h.HandleRefresh)
	group.Delete("/:countryCode/:year", h.HandleDelete)
}

// envelope is the uniform success payload.
type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// HandleSearch returns a filtered, sorted page of holidays.
// @Summary Search Holidays
// @Description Search stored holidays by year, country and type, with paging.
// @Tags holidays
// @Accept json
// @Produce json
// @Param year query int false "Holiday year (e.g. 2025)"
// @Param countryCode query string false "ISO 3166-1 alpha-2 code (e.g. 'KR')"
// @Param holidayType query string false "Holiday type (e.g. 'PUBLIC')"
// @Param sortType query string false "Sort field" default(date)
// @Param sortOrder query string false "asc or desc" default(desc)
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} envelope "Holiday page"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /holidays [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	params, err := parseSearchParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	page, err := h.service.Search(c.Context(), params)
	if err != nil {
		l.Error("Holiday search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(envelope{Message: "OK", Data: page})
}

// HandleRefresh re-syncs one country and year against the upstream API.
// @Summary Refresh Holidays
// @Description Re-fetch one (country, year) and reconcile the stored rows.
// @Tags holidays
// @Accept json
// @Produce json
// @Param countryCode path string true "ISO 3166-1 alpha-2 code (e.g. 'KR')"
// @Param year path int true "Holiday year (e.g. 2025)"
// @Success 200 {object} envelope "Reconciliation summary"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /holidays/{countryCode}/{year} [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	code, year, err := parseScope(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	summary, err := h.service.Refresh(c.Context(), code, year)
	if err != nil {
		l.Error("Holiday refresh failed",
			zap.String("country", code),
			zap.Int("year", year),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(envelope{Message: "Refresh completed", Data: summary})
}

// HandleDelete removes all stored holidays of one country and year.
// @Summary Delete Holidays
// @Description Delete every stored holiday of one (country, year).
// @Tags holidays
// @Accept json
// @Produce json
// @Param countryCode path string true "ISO 3166-1 alpha-2 code (e.g. 'KR')"
// @Param year path int true "Holiday year (e.g. 2025)"
// @Success 200 {object} envelope "Deleted row count"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /holidays/{countryCode}/{year} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	code, year, err := parseScope(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	deleted, err := h.service.DeleteByCountryYear(c.Context(), code, year)
	if err != nil {
		l.Error("Holiday delete failed",
			zap.String("country", code),
			zap.Int("year", year),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(envelope{
		Message: "Delete completed",
		Data:    fiber.Map{"deleted": deleted},
	})
}

func parseScope(c *fiber.Ctx) (string, int, error) {
	code := strings.ToUpper(c.Params("countryCode"))
	if len(code) != 2 {
		return "", 0, fiber.NewError(fiber.StatusBadRequest, "countryCode must be a 2-letter ISO code")
	}
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil || year < 1 {
		return "", 0, fiber.NewError(fiber.StatusBadRequest, "year must be a positive integer")
	}
	return code, year, nil
}

func parseSearchParams(c *fiber.Ctx) (SearchParams, error) {
	params := SearchParams{
		CountryCode: strings.ToUpper(c.Query("countryCode")),
		SortType:    c.Query("sortType", DefaultSortType),
		SortOrder:   c.Query("sortOrder", DefaultSortOrder),
		Page:        c.QueryInt("page", 0),
		Size:        c.QueryInt("size", DefaultPageSize),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return SearchParams{}, fiber.NewError(fiber.StatusBadRequest, "year must be an integer")
		}
		params.Year = &year
	}
	if raw := c.Query("holidayType"); raw != "" {
		t, ok := models.ParseHolidayType(raw)
		if !ok {
			return SearchParams{}, fiber.NewError(fiber.StatusBadRequest, "unknown holidayType: "+raw)
		}
		params.HolidayType = &t
	}
	if params.Page < 0 {
		params.Page = 0
	}
	if params.Size < 1 || params.Size > 100 {
		params.Size = DefaultPageSize
	}
	return params, nil
}
