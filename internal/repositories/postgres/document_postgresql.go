package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentPostgreSQL creates the student document repository
func NewDocumentPostgreSQL(db *gorm.DB) repositories.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) GetByID(ctx context.Context, id uint) (*models.StudentDocument, error) {
	var doc models.StudentDocument
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, handleDBError(err, "get document by id")
	}
	return &doc, nil
}

func (r *documentRepository) Create(ctx context.Context, doc *models.StudentDocument) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return handleDBError(err, "create document")
	}
	return nil
}

func (r *documentRepository) Update(ctx context.Context, doc *models.StudentDocument) error {
	if err := r.db.WithContext(ctx).Save(doc).Error; err != nil {
		return handleDBError(err, "update document")
	}
	return nil
}

func (r *documentRepository) ListByStudent(ctx context.Context, studentID uint) ([]*models.StudentDocument, error) {
	var docs []*models.StudentDocument
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, handleDBError(err, "list documents by student")
	}
	return docs, nil
}
