package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/learner"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

// MasteryRepo is the GORM-backed learner.MasteryStore.
type MasteryRepo struct {
	db *gorm.DB
}

// NewMasteryRepo creates a MasteryRepo.
func NewMasteryRepo(db *gorm.DB) *MasteryRepo {
	return &MasteryRepo{db: db}
}

func (r *MasteryRepo) ListByUser(ctx context.Context, userID string) ([]learner.ConceptMastery, error) {
	var rows []masteryRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list mastery for %s: %w", userID, err)
	}
	out := make([]learner.ConceptMastery, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToMastery(row))
	}
	return out, nil
}

func (r *MasteryRepo) Upsert(ctx context.Context, m learner.ConceptMastery) error {
	row := masteryToRow(m)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "concept_name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"standard_id", "mastery_level", "practice_count", "last_practice_at",
			}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert mastery %s/%s: %w", m.UserID, m.ConceptName, err)
	}
	return nil
}

// ProfileRepo is the GORM-backed learner.ProfileStore.
type ProfileRepo struct {
	db *gorm.DB
}

// NewProfileRepo creates a ProfileRepo.
func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, userID string) (learner.Profile, error) {
	var row profileRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return learner.Profile{}, fmt.Errorf("profile for %s: %w", userID, shared.ErrNotFound)
		}
		return learner.Profile{}, fmt.Errorf("load profile for %s: %w", userID, err)
	}
	return rowToProfile(&row)
}

func (r *ProfileRepo) Save(ctx context.Context, p learner.Profile) error {
	row, err := profileToRow(p)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(row).Error
	if err != nil {
		return fmt.Errorf("save profile for %s: %w", p.UserID, err)
	}
	return nil
}
