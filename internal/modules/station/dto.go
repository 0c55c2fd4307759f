package station

// AddFavoriteRequest carries either a reference to an existing station
// (id / station_id) or the attributes to create one from its stream URL.
// Only the fields listed here ever reach the store: client-supplied id,
// is_favorite or timestamps in the body are not mapped.
type AddFavoriteRequest struct {
	ID        *int64 `json:"id"`
	StationID *int64 `json:"station_id"`
	URL       string `json:"url"`
	Name      string `json:"name"`
	Genre     string `json:"genre"`
	Country   string `json:"country"`
	Language  string `json:"language"`
	Bitrate   int    `json:"bitrate"`
	Codec     string `json:"codec"`
	Homepage  string `json:"homepage"`
	Favicon   string `json:"favicon"`
	Tags      string `json:"tags"`
}

type RecordPlayRequest struct {
	StationName string `json:"station_name"`
	StationURL  string `json:"station_url"`
}
