package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/content"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/curriculum"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/fingerprint"
	"github.com/PeterKoffer/athenaskole-zoelive-20-sub003/internal/shared"
)

// FingerprintRepo is the GORM-backed fingerprint.Repo.
type FingerprintRepo struct {
	db *gorm.DB
}

// NewFingerprintRepo creates a FingerprintRepo.
func NewFingerprintRepo(db *gorm.DB) *FingerprintRepo {
	return &FingerprintRepo{db: db}
}

func (r *FingerprintRepo) ListRecent(ctx context.Context, userID string, ct content.Type, subject curriculum.Subject, since time.Time) ([]fingerprint.Fingerprint, error) {
	var rows []fingerprintRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND content_type = ? AND subject = ? AND last_used_at > ?",
			userID, string(ct), string(subject), since).
		Order("last_used_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list fingerprints for %s: %w", userID, err)
	}
	return rowsToFingerprints(rows)
}

func (r *FingerprintRepo) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]fingerprint.Fingerprint, error) {
	var rows []fingerprintRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND last_used_at > ?", userID, since).
		Order("last_used_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list fingerprints for %s: %w", userID, err)
	}
	return rowsToFingerprints(rows)
}

func (r *FingerprintRepo) Insert(ctx context.Context, fp *fingerprint.Fingerprint) error {
	row, err := fingerprintToRow(fp)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("fingerprint hash for %s: %w", fp.UserID, shared.ErrAlreadyExists)
		}
		return fmt.Errorf("insert fingerprint %s: %w", fp.ID, err)
	}
	return nil
}

func (r *FingerprintRepo) Get(ctx context.Context, id string) (*fingerprint.Fingerprint, error) {
	var row fingerprintRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fingerprint %s: %w", id, shared.ErrNotFound)
		}
		return nil, fmt.Errorf("load fingerprint %s: %w", id, err)
	}
	return rowToFingerprint(&row)
}

func (r *FingerprintRepo) Update(ctx context.Context, fp *fingerprint.Fingerprint) error {
	res := r.db.WithContext(ctx).
		Model(&fingerprintRow{}).
		Where("id = ?", fp.ID).
		Updates(map[string]any{
			"usage_count":  fp.UsageCount,
			"last_used_at": fp.LastUsedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update fingerprint %s: %w", fp.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("fingerprint %s: %w", fp.ID, shared.ErrNotFound)
	}
	return nil
}

func rowsToFingerprints(rows []fingerprintRow) ([]fingerprint.Fingerprint, error) {
	out := make([]fingerprint.Fingerprint, 0, len(rows))
	for i := range rows {
		fp, err := rowToFingerprint(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *fp)
	}
	return out, nil
}
