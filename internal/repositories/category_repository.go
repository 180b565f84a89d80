package repositories

import (
	"context"
	"fmt"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: db}
}

// EnsureExists records name as one of the user's categories. Existing names
// are left untouched.
func (r *categoryRepository) EnsureExists(ctx context.Context, userID uuid.UUID, name, categoryType string) error {
	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(category).Error
	if err != nil {
		return fmt.Errorf("failed to ensure category: %w", err)
	}
	return nil
}
