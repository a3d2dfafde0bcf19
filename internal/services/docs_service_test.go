package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"shop-backend/internal/domain/models"
)

func TestDocsServiceGenerateInvoice(t *testing.T) {
	price := 150.0
	loader := func(ctx context.Context, number int64) (models.Order, error) {
		return models.Order{
			ID:          1,
			OrderNumber: number,
			Status:      "completed",
			TotalAmount: 300,
			Email:       "buyer@example.com",
			Phone:       "+49151",
			CreatedAt:   time.Now(),
			Customer:    &models.Customer{Name: "Tester"},
			Products: []models.Product{
				{Title: "Running shoes", Price: &price},
				{Title: "Leather boots", Price: &price},
			},
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateInvoice(context.Background(), 1024)
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("GenerateInvoice returned empty data")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
	if filename != "INVOICE_1024.pdf" {
		t.Fatalf("unexpected filename: %s", filename)
	}
}
