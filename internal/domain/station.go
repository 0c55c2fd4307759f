package domain

import "time"

// Demo station seeded at startup. It can never be deleted, so the player
// always has at least one working stream to offer.
const (
	DemoStationURL      = "https://cvtfradio.net:8090"
	DemoStationName     = "CVT Radio – Demo"
	DemoStationHomepage = "https://cvtfradio.net"
)

// Station is one directory entry describing an internet audio stream.
// The stream URL is the dedup key: many users may favorite the same row.
type Station struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:200;not null"`
	URL        string    `json:"url" gorm:"size:500;not null;uniqueIndex"`
	Genre      string    `json:"genre" gorm:"size:100"`
	Country    string    `json:"country" gorm:"size:100"`
	Language   string    `json:"language" gorm:"size:50"`
	Bitrate    int       `json:"bitrate"`
	Codec      string    `json:"codec" gorm:"size:20"`
	Homepage   string    `json:"homepage" gorm:"size:500"`
	Favicon    string    `json:"favicon" gorm:"size:500"`
	Tags       string    `json:"tags" gorm:"size:500"`
	IsFavorite bool      `json:"is_favorite"` // legacy global flag, pre-auth favorites
	CreatedAt  time.Time `json:"date_added"`
}

func (Station) TableName() string { return "stations" }

// IsDemo reports whether this row is the protected demo station.
func (s *Station) IsDemo() bool { return s.URL == DemoStationURL }

// DemoStation returns the seed row for the permanent demo entry.
func DemoStation() Station {
	return Station{
		Name:       DemoStationName,
		URL:        DemoStationURL,
		Genre:      "Demo",
		Country:    "Internet",
		Language:   "English",
		Bitrate:    128,
		Codec:      "MP3",
		Homepage:   DemoStationHomepage,
		Favicon:    "",
		Tags:       "demo,starter",
		IsFavorite: true,
	}
}
