package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"radioplayer/internal/domain"
)

type StationRepository struct {
	db *gorm.DB
}

func NewStationRepository(db *gorm.DB) *StationRepository {
	return &StationRepository{db: db}
}

func (r *StationRepository) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	var s domain.Station
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StationRepository) GetByURL(ctx context.Context, url string) (*domain.Station, error) {
	var s domain.Station
	if err := r.db.WithContext(ctx).Where("url = ?", url).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindOrCreate resolves a station by stream URL, creating the row when it
// does not exist yet. Two calls with the same URL yield the same id, even
// when they race: the insert backs off on the unique index and the loser
// reads the winner's row.
func (r *StationRepository) FindOrCreate(ctx context.Context, attrs domain.Station) (*domain.Station, error) {
	var s domain.Station
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("url = ?", attrs.URL).First(&s).Error; err == nil {
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		s = attrs
		s.ID = 0
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoNothing: true,
		}).Create(&s)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// a concurrent insert won the URL; serve its row
			s = domain.Station{}
			return tx.Where("url = ?", attrs.URL).First(&s).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListGlobalFavorites returns stations carrying the legacy global flag,
// the pre-auth favorites model still served to anonymous callers.
func (r *StationRepository) ListGlobalFavorites(ctx context.Context) ([]domain.Station, error) {
	var stations []domain.Station
	err := r.db.WithContext(ctx).
		Where("is_favorite = ?", true).
		Order("created_at DESC").
		Find(&stations).Error
	return stations, err
}

// EnsureDemoStation seeds the permanent demo entry. Keyed on the demo URL
// so re-running it never creates a second row.
func (r *StationRepository) EnsureDemoStation(ctx context.Context) (*domain.Station, error) {
	demo := domain.DemoStation()
	var s domain.Station
	err := r.db.WithContext(ctx).
		Where(domain.Station{URL: demo.URL}).
		Attrs(demo).
		FirstOrCreate(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
