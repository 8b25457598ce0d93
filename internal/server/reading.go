package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	readingdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading/domain"
)

type createReadingRequest struct {
	ReadingDate       string   `json:"reading_date"`
	PeriodMonth       int      `json:"period_month"`
	PeriodYear        int      `json:"period_year"`
	TotalMeterReading *float64 `json:"total_meter_reading"`
	Notes             string   `json:"notes"`
}

func (s *Server) CreateReading(c *gin.Context) {
	var req createReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	readingDate := time.Now().UTC()
	if raw := strings.TrimSpace(req.ReadingDate); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			AbortWithError(c, newValidationError("reading_date", "invalid_reading_date", "invalid reading_date"))
			return
		}
		readingDate = parsed
	}

	resp, err := s.readingSvc.Process(c.Request.Context(), readingdomain.ProcessRequest{
		CustomerID:        strings.TrimSpace(c.Param("id")),
		ReadingDate:       readingDate,
		PeriodMonth:       req.PeriodMonth,
		PeriodYear:        req.PeriodYear,
		TotalMeterReading: req.TotalMeterReading,
		Notes:             strings.TrimSpace(req.Notes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListReadings(c *gin.Context) {
	resp, err := s.readingSvc.ListByCustomer(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
