package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) Overview(c *gin.Context) {
	resp, err := s.overviewSvc.Overview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CustomerYearSummary(c *gin.Context) {
	year := time.Now().UTC().Year()
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
			return
		}
		year = parsed
	}

	resp, err := s.overviewSvc.YearSummary(c.Request.Context(), strings.TrimSpace(c.Param("id")), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UnpaidInvoices(c *gin.Context) {
	resp, err := s.overviewSvc.UnpaidInvoices(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
