package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/planbar/planbar-api/internal/service"
)

// respondError переводит ошибку сервиса в HTTP-статус. Причины отказа
// валидации уходят клиенту как есть, внутренние ошибки не раскрываются.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrScheduleConflict),
		errors.Is(err, service.ErrStudentUnavailable),
		errors.Is(err, service.ErrRelationExists),
		errors.Is(err, service.ErrEntityReferenced):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case service.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseRFC3339UTC разбирает момент времени из тела запроса
func parseRFC3339UTC(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// parseMonthQuery читает необязательную пару ?year&month (месяц 1-12).
// Возвращает year = 0, если фильтр не задан.
func parseMonthQuery(c *gin.Context) (int, time.Month, bool) {
	rawYear := c.Query("year")
	rawMonth := c.Query("month")
	if rawYear == "" && rawMonth == "" {
		return 0, 0, true
	}

	year, err := strconv.Atoi(rawYear)
	if err != nil || year < 1 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}
