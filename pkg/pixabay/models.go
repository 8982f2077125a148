package pixabay

// ImageResponse is the response for an image search
type ImageResponse struct {
	Total     int     `json:"total"`
	TotalHits int     `json:"totalHits"`
	Hits      []Image `json:"hits"`
}

// Image is one Pixabay image hit
type Image struct {
	ID              int64  `json:"id"`
	PageURL         string `json:"pageURL"`
	Type            string `json:"type"` // photo, illustration, vector
	Tags            string `json:"tags"`
	PreviewURL      string `json:"previewURL"`
	PreviewWidth    int    `json:"previewWidth"`
	PreviewHeight   int    `json:"previewHeight"`
	WebformatURL    string `json:"webformatURL"`
	WebformatWidth  int    `json:"webformatWidth"`
	WebformatHeight int    `json:"webformatHeight"`
	LargeImageURL   string `json:"largeImageURL"`
	FullHDURL       string `json:"fullHDURL,omitempty"`
	ImageURL        string `json:"imageURL,omitempty"` // full API access only
	VectorURL       string `json:"vectorURL,omitempty"`
	ImageWidth      int    `json:"imageWidth"`
	ImageHeight     int    `json:"imageHeight"`
	ImageSize       int64  `json:"imageSize"`
	Views           int64  `json:"views"`
	Downloads       int64  `json:"downloads"`
	Collections     int64  `json:"collections,omitempty"`
	Likes           int64  `json:"likes"`
	Comments        int64  `json:"comments"`
	UserID          int64  `json:"user_id"`
	User            string `json:"user"`
	UserImageURL    string `json:"userImageURL"`
}

// VideoResponse is the response for a video search
type VideoResponse struct {
	Total     int     `json:"total"`
	TotalHits int     `json:"totalHits"`
	Hits      []Video `json:"hits"`
}

// Video is one Pixabay video hit
type Video struct {
	ID           int64      `json:"id"`
	PageURL      string     `json:"pageURL"`
	Type         string     `json:"type"` // film, animation
	Tags         string     `json:"tags"`
	Duration     int        `json:"duration"`
	Videos       VideoFiles `json:"videos"`
	Views        int64      `json:"views"`
	Downloads    int64      `json:"downloads"`
	Likes        int64      `json:"likes"`
	Comments     int64      `json:"comments"`
	UserID       int64      `json:"user_id"`
	User         string     `json:"user"`
	UserImageURL string     `json:"userImageURL"`
}

// VideoFiles groups the rendition slots of a video. A slot with an
// empty URL means the rendition is not available.
type VideoFiles struct {
	Large  VideoRendition `json:"large"`
	Medium VideoRendition `json:"medium"`
	Small  VideoRendition `json:"small"`
	Tiny   VideoRendition `json:"tiny"`
}

// VideoRendition is one resolution variant of a video
type VideoRendition struct {
	URL       string `json:"url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Size      int64  `json:"size"`
	Thumbnail string `json:"thumbnail"`
}

// ImageType filters image searches by kind
type ImageType string

const (
	ImageTypeAll          ImageType = "all"
	ImageTypePhoto        ImageType = "photo"
	ImageTypeIllustration ImageType = "illustration"
	ImageTypeVector       ImageType = "vector"
)

// VideoType filters video searches by kind
type VideoType string

const (
	VideoTypeAll       VideoType = "all"
	VideoTypeFilm      VideoType = "film"
	VideoTypeAnimation VideoType = "animation"
)

// Orientation filters image searches by aspect
type Orientation string

const (
	OrientationAll        Orientation = "all"
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// Order controls result ordering
type Order string

const (
	OrderPopular Order = "popular"
	OrderLatest  Order = "latest"
)

// Category filters searches by Pixabay category
type Category string

const (
	CategoryBackgrounds    Category = "backgrounds"
	CategoryFashion        Category = "fashion"
	CategoryNature         Category = "nature"
	CategoryScience        Category = "science"
	CategoryEducation      Category = "education"
	CategoryFeelings       Category = "feelings"
	CategoryHealth         Category = "health"
	CategoryPeople         Category = "people"
	CategoryReligion       Category = "religion"
	CategoryPlaces         Category = "places"
	CategoryAnimals        Category = "animals"
	CategoryIndustry       Category = "industry"
	CategoryComputer       Category = "computer"
	CategoryFood           Category = "food"
	CategorySports         Category = "sports"
	CategoryTransportation Category = "transportation"
	CategoryTravel         Category = "travel"
	CategoryBuildings      Category = "buildings"
	CategoryBusiness       Category = "business"
	CategoryMusic          Category = "music"
)
