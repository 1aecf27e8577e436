package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

// exportPageSize matches the repository pagination cap; exports page
// through until the range is exhausted rather than truncating at it.
const exportPageSize = 100

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

// NewExportService creates the XLSX export service
func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) allEnrollments(ctx context.Context, sessionID uint) ([]*models.Enrollment, error) {
	var all []*models.Enrollment
	for offset := 0; ; offset += exportPageSize {
		page, _, err := s.repo.Enrollment().List(ctx, repositories.EnrollmentFilters{
			SessionID: &sessionID,
			Limit:     exportPageSize,
			Offset:    offset,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
	}
}

func (s *exportService) allPayments(ctx context.Context, from, to time.Time) ([]*models.Payment, error) {
	var all []*models.Payment
	for offset := 0; ; offset += exportPageSize {
		page, _, err := s.repo.Payment().List(ctx, repositories.PaymentFilters{
			From:   &from,
			To:     &to,
			Limit:  exportPageSize,
			Offset: offset,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
	}
}

// SessionRosterXLSX builds the attendance sheet for one session:
// enrolled students with contact details and enrollment status.
func (s *exportService) SessionRosterXLSX(ctx context.Context, sessionID uint) ([]byte, string, error) {
	session, err := s.repo.Session().GetByID(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	enrollments, err := s.allEnrollments(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Emargement"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Nom", "Email", "Téléphone", "Statut", "Inscrit le"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, enrollment := range enrollments {
		student, err := s.repo.User().GetByID(ctx, enrollment.StudentID)
		if err != nil {
			return nil, "", fmt.Errorf("student lookup failed for roster: %w", err)
		}

		phone := ""
		if student.Phone != nil {
			phone = *student.Phone
		}
		values := []interface{}{
			student.FullName,
			student.Email,
			phone,
			string(enrollment.Status),
			enrollment.CreatedAt.Format("02/01/2006"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("failed to write roster row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render roster: %w", err)
	}

	filename := fmt.Sprintf("emargement-session-%d-%s.xlsx",
		session.ID, session.StartDate.Format("2006-01-02"))
	s.logger.Info("Session roster exported", "session_id", sessionID, "rows", len(enrollments))
	return buf.Bytes(), filename, nil
}

// PaymentLedgerXLSX builds the payment ledger over a date range for the
// accounting handover.
func (s *exportService) PaymentLedgerXLSX(ctx context.Context, from, to time.Time) ([]byte, string, error) {
	payments, err := s.allPayments(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Encaissements"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Date", "Inscription", "Montant (EUR)", "Moyen", "Statut", "Référence"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, payment := range payments {
		date := payment.CreatedAt
		if payment.PaidAt != nil {
			date = *payment.PaidAt
		}
		reference := ""
		if payment.Reference != nil {
			reference = *payment.Reference
		}
		values := []interface{}{
			date.Format("02/01/2006"),
			payment.EnrollmentID,
			float64(payment.AmountCents) / 100,
			string(payment.Method),
			string(payment.Status),
			reference,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", fmt.Errorf("failed to write ledger row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render ledger: %w", err)
	}

	filename := fmt.Sprintf("encaissements-%s-%s.xlsx",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	s.logger.Info("Payment ledger exported", "rows", len(payments))
	return buf.Bytes(), filename, nil
}
