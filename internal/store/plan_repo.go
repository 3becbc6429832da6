package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/dailyplan"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

// PlanRepo is the GORM-backed dailyplan.PlanRepo.
type PlanRepo struct {
	db *gorm.DB
}

// NewPlanRepo creates a PlanRepo.
func NewPlanRepo(db *gorm.DB) *PlanRepo {
	return &PlanRepo{db: db}
}

func (r *PlanRepo) GetByUserDate(ctx context.Context, userID, date string) (*dailyplan.Plan, error) {
	var row planRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("plan for %s/%s: %w", userID, date, shared.ErrNotFound)
		}
		return nil, fmt.Errorf("load plan for %s/%s: %w", userID, date, err)
	}
	return rowToPlan(&row)
}

func (r *PlanRepo) Create(ctx context.Context, p *dailyplan.Plan) error {
	row, err := planToRow(p)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("plan for %s/%s: %w", p.UserID, p.Date, shared.ErrAlreadyExists)
		}
		return fmt.Errorf("insert plan %s: %w", p.ID, err)
	}
	return nil
}

// Save persists plan mutations guarded by the optimistic version column:
// the update lands only when the stored version still matches, then the
// version advances by one.
func (r *PlanRepo) Save(ctx context.Context, p *dailyplan.Plan) error {
	row, err := planToRow(p)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&planRow{}).
		Where("id = ? AND version = ?", p.ID, p.Version).
		Updates(map[string]any{
			"state":                 row.State,
			"current_session_index": row.CurrentSessionIndex,
			"completed_count":       row.CompletedCount,
			"accuracy_average":      row.AccuracyAverage,
			"sessions":              row.Sessions,
			"mastery_achieved":      row.MasteryAchieved,
			"struggling_areas":      row.StrugglingAreas,
			"adaptive_adjustments":  row.AdaptiveAdjustments,
			"updated_at":            row.UpdatedAt,
			"version":               p.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("save plan %s: %w", p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("plan %s at version %d: %w", p.ID, p.Version, shared.ErrVersionConflict)
	}
	p.Version++
	return nil
}
