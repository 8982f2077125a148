package pexels

// PhotosResponse is the response for a photo search or curated listing
type PhotosResponse struct {
	TotalResults int     `json:"total_results"`
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	Photos       []Photo `json:"photos"`
	NextPage     string  `json:"next_page,omitempty"`
	PrevPage     string  `json:"prev_page,omitempty"`
}

// Photo is one Pexels photo
type Photo struct {
	ID              int64    `json:"id"`
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	URL             string   `json:"url"`
	Photographer    string   `json:"photographer"`
	PhotographerURL string   `json:"photographer_url"`
	PhotographerID  int64    `json:"photographer_id"`
	AvgColor        string   `json:"avg_color"`
	Src             PhotoSrc `json:"src"`
	Liked           bool     `json:"liked"`
	Alt             string   `json:"alt"`
}

// PhotoSrc holds the rendition URLs of a photo
type PhotoSrc struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

// VideosResponse is the response for a video search or popular listing
type VideosResponse struct {
	TotalResults int     `json:"total_results"`
	Page         int     `json:"page"`
	PerPage      int     `json:"per_page"`
	URL          string  `json:"url,omitempty"`
	Videos       []Video `json:"videos"`
	NextPage     string  `json:"next_page,omitempty"`
	PrevPage     string  `json:"prev_page,omitempty"`
}

// Video is one Pexels video
type Video struct {
	ID            int64          `json:"id"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	Duration      int            `json:"duration"`
	FullRes       string         `json:"full_res,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	URL           string         `json:"url"`
	Image         string         `json:"image"`
	AvgColor      string         `json:"avg_color,omitempty"`
	User          User           `json:"user"`
	VideoFiles    []VideoFile    `json:"video_files"`
	VideoPictures []VideoPicture `json:"video_pictures"`
}

// User is the creator of a media item
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// VideoFile is one downloadable rendition of a video. Quality carries
// labels such as "hd", "sd" or "uhd" and may be empty.
type VideoFile struct {
	ID       int64   `json:"id"`
	Quality  string  `json:"quality,omitempty"`
	FileType string  `json:"file_type"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	FPS      float64 `json:"fps"`
	Link     string  `json:"link"`
	Size     int64   `json:"size"`
}

// VideoPicture is a preview frame of a video
type VideoPicture struct {
	ID      int64  `json:"id"`
	Nr      int    `json:"nr"`
	Picture string `json:"picture"`
}
