package station

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"radioplayer/internal/domain"
	"radioplayer/internal/repository"
)

const DefaultRecentLimit = 10

// Service owns the favorites and recently-played consistency rules:
// stations dedup by URL, one join row per (user, station), one recency
// row per (user, url), and the undeletable demo station.
type Service struct {
	stations  *repository.StationRepository
	favorites *repository.FavoriteRepository
	recent    *repository.RecentlyPlayedRepository
}

func NewService(
	stations *repository.StationRepository,
	favorites *repository.FavoriteRepository,
	recent *repository.RecentlyPlayedRepository,
) *Service {
	return &Service{
		stations:  stations,
		favorites: favorites,
		recent:    recent,
	}
}

// EnsureDemoStation seeds the permanent demo entry at startup.
func (s *Service) EnsureDemoStation(ctx context.Context) (*domain.Station, error) {
	return s.stations.EnsureDemoStation(ctx)
}

// FindOrCreateStation resolves a station by stream URL, creating it when
// absent. Idempotent on the URL.
func (s *Service) FindOrCreateStation(ctx context.Context, attrs domain.Station) (*domain.Station, error) {
	attrs.URL = strings.TrimSpace(attrs.URL)
	if attrs.URL == "" {
		return nil, ErrStationURLRequired
	}
	if attrs.Name == "" {
		attrs.Name = "Unknown Station"
	}
	return s.stations.FindOrCreate(ctx, attrs)
}

// ListFavorites returns the caller's favorites. An authenticated user
// gets their join rows; an anonymous caller gets the legacy global set
// written before accounts existed. Both paths stay supported: the old
// data was never migrated.
func (s *Service) ListFavorites(ctx context.Context, userID *int64) ([]domain.Station, error) {
	if userID != nil {
		return s.favorites.ListStationsByUser(ctx, *userID)
	}
	return s.stations.ListGlobalFavorites(ctx)
}

// AddFavorite resolves the station (by id, then by URL, creating from the
// allow-listed attributes when new) and records the join row. Repeats are
// success: alreadyFavorite reports the row existed.
func (s *Service) AddFavorite(ctx context.Context, userID int64, req AddFavoriteRequest) (st *domain.Station, alreadyFavorite bool, err error) {
	st, err = s.resolveStation(ctx, req)
	if err != nil {
		return nil, false, err
	}

	created, err := s.favorites.Add(ctx, userID, st.ID)
	if err != nil {
		return nil, false, err
	}
	return st, !created, nil
}

func (s *Service) resolveStation(ctx context.Context, req AddFavoriteRequest) (*domain.Station, error) {
	id := req.ID
	if id == nil {
		id = req.StationID
	}
	if id != nil {
		st, err := s.stations.GetByID(ctx, *id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStationNotFound
			}
			return nil, err
		}
		return st, nil
	}

	if strings.TrimSpace(req.URL) == "" {
		return nil, ErrStationRefRequired
	}

	return s.FindOrCreateStation(ctx, domain.Station{
		Name:     req.Name,
		URL:      req.URL,
		Genre:    req.Genre,
		Country:  req.Country,
		Language: req.Language,
		Bitrate:  req.Bitrate,
		Codec:    req.Codec,
		Homepage: req.Homepage,
		Favicon:  req.Favicon,
		Tags:     req.Tags,
	})
}

// RemoveFavorite drops the user's join row for the station. The demo
// check runs before the not-a-favorite check: the demo station reports
// Forbidden even to users who never favorited it. The station row itself
// stays, it may be favorited by others.
func (s *Service) RemoveFavorite(ctx context.Context, userID, stationID int64) error {
	st, err := s.stations.GetByID(ctx, stationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStationNotFound
		}
		return err
	}

	if st.IsDemo() {
		return ErrDemoStationProtected
	}

	removed, err := s.favorites.Remove(ctx, userID, stationID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFavorite
	}
	return nil
}

// RecordRecentlyPlayed replaces the (user, url) recency entry with a
// fresh timestamp.
func (s *Service) RecordRecentlyPlayed(ctx context.Context, userID int64, req RecordPlayRequest) error {
	url := strings.TrimSpace(req.StationURL)
	if url == "" {
		return ErrStationURLRequired
	}
	name := req.StationName
	if name == "" {
		name = "Unknown Station"
	}
	return s.recent.Replace(ctx, userID, name, url)
}

// ListRecentlyPlayed returns up to limit entries, newest play first.
// Anonymous callers get an empty list, not an error.
func (s *Service) ListRecentlyPlayed(ctx context.Context, userID *int64, limit int) ([]domain.RecentlyPlayed, error) {
	if userID == nil {
		return []domain.RecentlyPlayed{}, nil
	}
	if limit <= 0 || limit > DefaultRecentLimit {
		limit = DefaultRecentLimit
	}
	return s.recent.ListByUser(ctx, *userID, limit)
}
