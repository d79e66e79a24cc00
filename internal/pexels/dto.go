package pexels

// PhotoResponse is the paginated payload returned by the curated and search
// endpoints.
type PhotoResponse struct {
	TotalResults int     `json:"total_results"`
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	NextPage     string  `json:"next_page,omitempty"`
	PrevPage     string  `json:"prev_page,omitempty"`
	Photos       []Photo `json:"photos"`
}

// Photo is a single photo record as returned by the API.
type Photo struct {
	ID              int      `json:"id"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	URL             string   `json:"url"`
	Photographer    string   `json:"photographer"`
	PhotographerURL string   `json:"photographer_url,omitempty"`
	PhotographerID  int64    `json:"photographer_id,omitempty"`
	AvgColor        string   `json:"avg_color,omitempty"`
	Src             PhotoSrc `json:"src"`
	Liked           bool     `json:"liked,omitempty"`
	Alt             string   `json:"alt,omitempty"`
}

// PhotoSrc holds the resolution variants for a photo.
type PhotoSrc struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x,omitempty"`
	Large     string `json:"large,omitempty"`
	Medium    string `json:"medium"`
	Small     string `json:"small,omitempty"`
	Portrait  string `json:"portrait,omitempty"`
	Landscape string `json:"landscape,omitempty"`
	Tiny      string `json:"tiny,omitempty"`
}

// CollectionResponse is the paginated payload returned by the featured
// collections endpoint.
type CollectionResponse struct {
	Page         int          `json:"page"`
	PerPage      int          `json:"per_page"`
	TotalResults int          `json:"total_results"`
	NextPage     string       `json:"next_page,omitempty"`
	PrevPage     string       `json:"prev_page,omitempty"`
	Collections  []Collection `json:"collections"`
}

// Collection is a single featured collection record.
type Collection struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Private     bool   `json:"private,omitempty"`
	MediaCount  int    `json:"media_count,omitempty"`
	PhotosCount int    `json:"photos_count,omitempty"`
	VideosCount int    `json:"videos_count,omitempty"`
}
