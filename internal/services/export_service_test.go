package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

func sheetRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to open generated workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("Failed to read sheet %s: %v", sheet, err)
	}
	return rows
}

func TestPaymentLedgerXLSX_PagesThroughLargeRanges(t *testing.T) {
	const total = 250

	ledger := make([]*models.Payment, total)
	for i := range ledger {
		ledger[i] = &models.Payment{
			ID:           uint(i + 1),
			EnrollmentID: uint(i + 1),
			AmountCents:  5000,
			Method:       models.PaymentCash,
			Status:       models.PaymentPaid,
			CreatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		}
	}

	payments := &mockPaymentRepository{
		listFn: func(ctx context.Context, filters repositories.PaymentFilters) ([]*models.Payment, int64, error) {
			end := filters.Offset + filters.Limit
			if end > total {
				end = total
			}
			if filters.Offset >= total {
				return nil, int64(total), nil
			}
			return ledger[filters.Offset:end], int64(total), nil
		},
	}
	repo := &mockRepository{payment: payments}
	service := NewExportService(repo, testLogger())

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	data, filename, err := service.PaymentLedgerXLSX(context.Background(), from, to)
	if err != nil {
		t.Fatalf("PaymentLedgerXLSX failed: %v", err)
	}

	if len(payments.listCalls) != 3 {
		t.Fatalf("Expected 3 pages, got %d", len(payments.listCalls))
	}
	for i, wantOffset := range []int{0, 100, 200} {
		if payments.listCalls[i].Offset != wantOffset {
			t.Errorf("Page %d: expected offset %d, got %d", i, wantOffset, payments.listCalls[i].Offset)
		}
	}

	rows := sheetRows(t, data, "Encaissements")
	if len(rows) != total+1 {
		t.Errorf("Expected %d rows (header + %d payments), got %d", total+1, total, len(rows))
	}
	if filename != "encaissements-2026-03-01-2026-03-31.xlsx" {
		t.Errorf("Unexpected filename: %s", filename)
	}
}

func TestPaymentLedgerXLSX_SingleShortPage(t *testing.T) {
	payments := &mockPaymentRepository{
		listFn: func(ctx context.Context, filters repositories.PaymentFilters) ([]*models.Payment, int64, error) {
			return []*models.Payment{
				{ID: 1, EnrollmentID: 7, AmountCents: 12000, Method: models.PaymentCard, Status: models.PaymentPaid},
			}, 1, nil
		},
	}
	repo := &mockRepository{payment: payments}
	service := NewExportService(repo, testLogger())

	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	data, _, err := service.PaymentLedgerXLSX(context.Background(), from, from.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("PaymentLedgerXLSX failed: %v", err)
	}

	if len(payments.listCalls) != 1 {
		t.Errorf("Expected a single page for a short range, got %d", len(payments.listCalls))
	}
	if rows := sheetRows(t, data, "Encaissements"); len(rows) != 2 {
		t.Errorf("Expected header + 1 row, got %d", len(rows))
	}
}

func TestSessionRosterXLSX_PagesThroughLargeSessions(t *testing.T) {
	const total = 150

	enrolled := make([]*models.Enrollment, total)
	for i := range enrolled {
		enrolled[i] = &models.Enrollment{
			ID:        uint(i + 1),
			StudentID: uint(i + 1),
			SessionID: 9,
			Status:    models.EnrollmentConfirmed,
			CreatedAt: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
		}
	}

	enrollments := &mockEnrollmentRepository{
		listFn: func(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
			end := filters.Offset + filters.Limit
			if end > total {
				end = total
			}
			if filters.Offset >= total {
				return nil, int64(total), nil
			}
			return enrolled[filters.Offset:end], int64(total), nil
		},
	}
	repo := &mockRepository{
		enrollment: enrollments,
		session: &mockSessionRepository{
			getByIDFn: func(ctx context.Context, id uint) (*models.TrainingSession, error) {
				return &models.TrainingSession{
					ID:        9,
					StartDate: time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC),
				}, nil
			},
		},
		user: &mockUserRepository{
			getByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
				return &models.User{
					ID:       id,
					FullName: fmt.Sprintf("Stagiaire %d", id),
					Email:    fmt.Sprintf("stagiaire%d@example.fr", id),
				}, nil
			},
		},
	}
	service := NewExportService(repo, testLogger())

	data, filename, err := service.SessionRosterXLSX(context.Background(), 9)
	if err != nil {
		t.Fatalf("SessionRosterXLSX failed: %v", err)
	}

	if rows := sheetRows(t, data, "Emargement"); len(rows) != total+1 {
		t.Errorf("Expected %d rows (header + %d students), got %d", total+1, total, len(rows))
	}
	if filename != "emargement-session-9-2026-05-04.xlsx" {
		t.Errorf("Unexpected filename: %s", filename)
	}
}
