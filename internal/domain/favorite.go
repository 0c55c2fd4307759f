package domain

import "time"

// UserFavorite links a user to a favorited station. At most one row may
// exist per (user, station) pair; adding again is a no-op.
type UserFavorite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_station"`
	StationID int64     `json:"station_id" gorm:"not null;index;uniqueIndex:idx_user_station"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Station *Station `json:"station,omitempty" gorm:"foreignKey:StationID"`
}

func (UserFavorite) TableName() string { return "user_favorites" }
