package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/formacentre/training-service/internal/repositories"
)

// handleDBError normalizes gorm errors: not-found becomes the package
// sentinel, everything else is wrapped with the operation name.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// applyPagination applies bounded limit/offset to a query
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query.Limit(limit)
}
