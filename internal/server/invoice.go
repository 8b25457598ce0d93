package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/invoice/domain"
	"github.com/ryokf/pos-pengeboran-sumur-sub000/internal/providers/pdf"
	readingdomain "github.com/ryokf/pos-pengeboran-sumur-sub000/internal/reading/domain"
)

func (s *Server) ListInvoices(c *gin.Context) {
	status := invoicedomain.InvoiceStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))

	resp, err := s.invoiceSvc.ListByCustomer(c.Request.Context(), strings.TrimSpace(c.Param("id")), status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) InvoicePDF(c *gin.Context) {
	data, _, err := s.billData(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := s.pdfProvider.GenerateBill(c.Request.Context(), data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+data.InvoiceNumber+`.pdf"`)
	c.DataFromReader(http.StatusOK, -1, "application/pdf", doc, nil)
}

func (s *Server) InvoiceReceiptPDF(c *gin.Context) {
	data, inv, err := s.billData(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if inv.Status != invoicedomain.InvoiceStatusPaid || inv.PaidAt == nil {
		AbortWithError(c, newValidationError("status", "invoice_not_paid", "receipt requires a paid invoice"))
		return
	}

	doc, err := s.pdfProvider.GenerateReceipt(c.Request.Context(), pdf.ReceiptData{
		BillData:   data,
		PaidDate:   invoicedomain.DateLabel(*inv.PaidAt),
		AmountPaid: inv.TotalAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="kwitansi-`+data.InvoiceNumber+`.pdf"`)
	c.DataFromReader(http.StatusOK, -1, "application/pdf", doc, nil)
}

// billData resolves the invoice, its reading and its customer into the
// flattened document payload the renderer consumes.
func (s *Server) billData(c *gin.Context) (pdf.BillData, invoicedomain.Invoice, error) {
	inv, err := s.invoiceSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		return pdf.BillData{}, invoicedomain.Invoice{}, err
	}

	var reading readingdomain.MeterReading
	if err := s.db.WithContext(c.Request.Context()).
		First(&reading, "id = ?", inv.ReadingID).Error; err != nil {
		return pdf.BillData{}, invoicedomain.Invoice{}, err
	}

	customer, err := s.customerSvc.GetByID(c.Request.Context(), inv.CustomerID.String())
	if err != nil {
		return pdf.BillData{}, invoicedomain.Invoice{}, err
	}

	return pdf.BillData{
		UtilityName:     s.billing.UtilityName,
		UtilityAddress:  s.billing.UtilityAddress,
		InvoiceNumber:   inv.InvoiceNumber,
		IssueDate:       invoicedomain.DateLabel(inv.CreatedAt),
		Period:          inv.Period,
		Status:          string(inv.Status),
		CustomerName:    customer.Name,
		CustomerCode:    customer.Code,
		CustomerAddress: customer.Address,
		MeterSerial:     customer.MeterSerial,
		PreviousValue:   reading.PreviousValue,
		CurrentValue:    reading.CurrentValue,
		UsageM3:         reading.UsageAmount,
		WaterCost:       reading.WaterCost,
		AdminFee:        reading.AdminFee,
		TotalAmount:     inv.TotalAmount,
	}, inv, nil
}
