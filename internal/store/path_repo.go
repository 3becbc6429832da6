package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/pathplan"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

// PathRepo is the GORM-backed pathplan.Repo. Paths are append-only; rows are
// never updated or deleted.
type PathRepo struct {
	db *gorm.DB
}

// NewPathRepo creates a PathRepo.
func NewPathRepo(db *gorm.DB) *PathRepo {
	return &PathRepo{db: db}
}

func (r *PathRepo) Append(ctx context.Context, p *pathplan.Path) error {
	row, err := pathToRow(p)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("append path %s: %w", p.ID, err)
	}
	return nil
}

func (r *PathRepo) LatestByUser(ctx context.Context, userID string) (*pathplan.Path, error) {
	var row pathRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("path for %s: %w", userID, shared.ErrNotFound)
		}
		return nil, fmt.Errorf("load path for %s: %w", userID, err)
	}
	return rowToPath(&row)
}
