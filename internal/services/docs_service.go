package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"shop-backend/internal/domain/models"
	"shop-backend/internal/repositories"
	"shop-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders order invoices as PDF.
type DocsService struct {
	Orders    repositories.OrderRepository
	RequestID string

	// Loader overrides the order fetch in tests.
	Loader func(ctx context.Context, number int64) (models.Order, error)
}

func (s DocsService) GenerateInvoice(ctx context.Context, orderNumber int64) ([]byte, string, error) {
	order, err := s.loadOrder(ctx, orderNumber)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("order_number=%d", orderNumber))
	return buildInvoicePDF(order)
}

func (s DocsService) loadOrder(ctx context.Context, number int64) (models.Order, error) {
	if s.Loader != nil {
		return s.Loader(ctx, number)
	}
	return s.Orders.GetByNumber(ctx, number)
}

func buildInvoicePDF(o models.Order) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Invoice no : INV-%d", o.OrderNumber))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Status     : "+o.Status)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	name := "-"
	if o.Customer != nil && o.Customer.Name != "" {
		name = o.Customer.Name
	}
	pdf.Cell(0, 7, "Name    : "+name)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Email   : "+orDash(o.Email))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Phone   : "+orDash(o.Phone))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Address : "+orDash(o.DeliveryAddress))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Items:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range o.Products {
		price := "-"
		if p.Price != nil {
			price = fmt.Sprintf("%.2f", *p.Price)
		}
		pdf.MultiCell(0, 6, fmt.Sprintf("%d) %s  %s", i+1, p.Title, price), "", "", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", o.TotalAmount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Order #%d, placed %s.", o.OrderNumber, o.CreatedAt.Format("2006-01-02")), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%d.pdf", o.OrderNumber)
	return buf.Bytes(), filename, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
