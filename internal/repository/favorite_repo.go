package repository

import (
	"context"

	"gorm.io/gorm"

	"radioplayer/internal/domain"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add creates the (user, station) join row. Returns created=false when the
// pair already exists; adding twice never duplicates the row.
func (r *FavoriteRepository) Add(ctx context.Context, userID, stationID int64) (created bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.UserFavorite{}).
			Where("user_id = ? AND station_id = ?", userID, stationID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		created = true
		return tx.Create(&domain.UserFavorite{UserID: userID, StationID: stationID}).Error
	})
	return created, err
}

// Remove deletes the join row. Returns the number of rows removed so the
// caller can distinguish "was not a favorite".
func (r *FavoriteRepository) Remove(ctx context.Context, userID, stationID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND station_id = ?", userID, stationID).
		Delete(&domain.UserFavorite{})
	return result.RowsAffected, result.Error
}

// ListStationsByUser returns the user's favorited stations, newest first.
func (r *FavoriteRepository) ListStationsByUser(ctx context.Context, userID int64) ([]domain.Station, error) {
	var stations []domain.Station
	err := r.db.WithContext(ctx).
		Model(&domain.Station{}).
		Joins("JOIN user_favorites ON user_favorites.station_id = stations.id").
		Where("user_favorites.user_id = ?", userID).
		Order("user_favorites.created_at DESC").
		Find(&stations).Error
	return stations, err
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, stationID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserFavorite{}).
		Where("user_id = ? AND station_id = ?", userID, stationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
