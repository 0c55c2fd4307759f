package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"radioplayer/internal/domain"
)

type RecentlyPlayedRepository struct {
	db *gorm.DB
}

func NewRecentlyPlayedRepository(db *gorm.DB) *RecentlyPlayedRepository {
	return &RecentlyPlayedRepository{db: db}
}

// Replace removes any existing entry for (user, url) and inserts a fresh
// one, so each station appears once, at its latest play time. Both steps
// run in one transaction.
func (r *RecentlyPlayedRepository) Replace(ctx context.Context, userID int64, stationName, stationURL string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND station_url = ?", userID, stationURL).
			Delete(&domain.RecentlyPlayed{}).Error; err != nil {
			return err
		}
		return tx.Create(&domain.RecentlyPlayed{
			UserID:      &userID,
			StationName: stationName,
			StationURL:  stationURL,
			PlayedAt:    time.Now().UTC(),
		}).Error
	})
}

func (r *RecentlyPlayedRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.RecentlyPlayed, error) {
	var recent []domain.RecentlyPlayed
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("played_at DESC").
		Limit(limit).
		Find(&recent).Error
	return recent, err
}

// PruneOlderThan drops rows last played before the cutoff. Used by the
// cleanup command; the API never reads past the newest handful anyway.
func (r *RecentlyPlayedRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("played_at < ?", cutoff).
		Delete(&domain.RecentlyPlayed{})
	return result.RowsAffected, result.Error
}

// PruneBeyondNewest keeps only the newest keep rows per user.
func (r *RecentlyPlayedRepository) PruneBeyondNewest(ctx context.Context, keep int) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM recently_played
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id,
				       ROW_NUMBER() OVER (PARTITION BY user_id ORDER BY played_at DESC) AS rn
				FROM recently_played
			) ranked
			WHERE ranked.rn <= ?
		)
	`, keep)
	return result.RowsAffected, result.Error
}
