package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

type documentService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

// NewDocumentService creates the student document service
func NewDocumentService(repo repositories.Repository, logger *slog.Logger) DocumentService {
	return &documentService{repo: repo, logger: logger}
}

func (s *documentService) SubmitDocument(ctx context.Context, studentID uint, kind, fileRef string) (*models.StudentDocument, error) {
	if kind == "" || fileRef == "" {
		return nil, fmt.Errorf("document kind and file reference are required")
	}

	doc := &models.StudentDocument{
		StudentID: studentID,
		Kind:      kind,
		FileRef:   fileRef,
		Status:    models.DocumentPending,
	}
	if err := s.repo.Document().Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to submit document: %w", err)
	}

	s.logger.Info("Document submitted", "document_id", doc.ID, "student_id", studentID, "kind", kind)
	return doc, nil
}

// ReviewDocument marks a pending document verified or rejected
func (s *documentService) ReviewDocument(ctx context.Context, id uint, status models.DocumentStatus, reviewerID uint) (*models.StudentDocument, error) {
	if status != models.DocumentVerified && status != models.DocumentRejected {
		return nil, ErrInvalidTransition
	}

	doc, err := s.repo.Document().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != models.DocumentPending {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	doc.Status = status
	doc.ReviewedBy = &reviewerID
	doc.ReviewedAt = &now

	if err := s.repo.Document().Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to review document: %w", err)
	}

	s.logger.Info("Document reviewed", "document_id", id, "status", status, "reviewer_id", reviewerID)
	return doc, nil
}

func (s *documentService) ListForStudent(ctx context.Context, studentID uint) ([]*models.StudentDocument, error) {
	return s.repo.Document().ListByStudent(ctx, studentID)
}
