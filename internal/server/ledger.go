package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ledgerdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/ledger/domain"
)

type topUpRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// TopUp runs the deposit and the follow-up settlement as one user action.
// The two are separate atomic service calls: if settlement fails the deposit
// stays committed, and the response reports what actually happened.
func (s *Server) TopUp(c *gin.Context) {
	var req topUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customerID := strings.TrimSpace(c.Param("id"))

	topup, err := s.ledgerSvc.TopUp(c.Request.Context(), customerID, req.Amount, req.Description)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	autopay, err := s.ledgerSvc.AutoPayAfterTopUp(c.Request.Context(), customerID, topup.NewBalance)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{
			"topup":          topup,
			"auto_pay":       nil,
			"auto_pay_error": "settlement failed, balance retained",
		}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"topup":    topup,
		"auto_pay": autopay,
	}})
}

type adjustmentRequest struct {
	Amount      int64  `json:"amount"`
	Direction   string `json:"direction"`
	Description string `json:"description"`
}

func (s *Server) CreateAdjustment(c *gin.Context) {
	var req adjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ledgerSvc.Adjust(
		c.Request.Context(),
		strings.TrimSpace(c.Param("id")),
		req.Amount,
		ledgerdomain.AdjustDirection(strings.ToLower(strings.TrimSpace(req.Direction))),
		req.Description,
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PayAllUnpaid(c *gin.Context) {
	resp, err := s.ledgerSvc.PayAllUnpaid(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTransactions(c *gin.Context) {
	resp, err := s.ledgerSvc.ListByCustomer(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
