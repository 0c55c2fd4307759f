package station

import "errors"

var (
	ErrStationNotFound      = errors.New("station not found")
	ErrNotFavorite          = errors.New("station is not a favorite")
	ErrDemoStationProtected = errors.New("demo station cannot be removed")
	ErrStationURLRequired   = errors.New("station url is required")
	ErrStationRefRequired   = errors.New("station id or url is required")
)
