// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
)

// InvoiceHandler serves order invoices
type InvoiceHandler struct {
	orderService OrderService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(orderService OrderService) *InvoiceHandler {
	return &InvoiceHandler{orderService: orderService}
}

// DownloadInvoice handles GET /orders/:id/invoice
func (h *InvoiceHandler) DownloadInvoice(c *gin.Context) {
	orderID := c.Param("id")

	pdf, err := h.orderService.Invoice(c.Request.Context(), orderID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", orderID))
	c.Header("Content-Length", strconv.Itoa(len(pdf)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
