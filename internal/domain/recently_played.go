package domain

import "time"

// RecentlyPlayed records the last time a user played a station. One row
// per (user, station URL): replaying moves the entry to the top instead
// of appending, so the list is most-recent-play order, not play history.
// UserID is nullable so rows written before accounts existed stay readable.
type RecentlyPlayed struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      *int64    `json:"user_id,omitempty" gorm:"index"`
	StationName string    `json:"station_name" gorm:"size:200;not null"`
	StationURL  string    `json:"station_url" gorm:"size:500;not null;index"`
	PlayedAt    time.Time `json:"played_at"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (RecentlyPlayed) TableName() string { return "recently_played" }
