package googlebooks

import "strings"

// VolumeResponse is the success payload for both searches and single-volume
// fetches. For a single-volume fetch TotalItems is zero and Items is empty;
// the API echoes the volume kind instead.
type VolumeResponse struct {
	Kind       string   `json:"kind"`
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Volume is a single catalog entry, typically a book or magazine.
type Volume struct {
	ID         string     `json:"id"`
	Etag       string     `json:"etag"`
	Kind       string     `json:"kind"`
	SelfLink   string     `json:"selfLink"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo holds the volume metadata consumed by this library. Absent
// optional fields decode to their zero values; PrintType in particular is
// documented to default to an empty string at the decode boundary.
type VolumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
	PageCount           int                  `json:"pageCount"`
	PrintType           string               `json:"printType"`
	Categories          []string             `json:"categories"`
	ImageLinks          *ImageLinks          `json:"imageLinks"`
}

// ImageLinks points at the cover images offered for a volume.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

// IndustryIdentifier is a standard book identifier such as ISBN-10 or ISBN-13.
type IndustryIdentifier struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
}

// DisplayTitle returns the title with the subtitle appended when present.
func (v Volume) DisplayTitle() string {
	if v.VolumeInfo.Subtitle != "" {
		return v.VolumeInfo.Title + ": " + v.VolumeInfo.Subtitle
	}
	return v.VolumeInfo.Title
}

// Year extracts the publication year from the published date.
func (v Volume) Year() string {
	date := v.VolumeInfo.PublishedDate
	if len(date) >= 4 {
		return date[:4]
	}
	if date == "" {
		return "Unknown"
	}
	return date
}

// PrimaryISBN returns the ISBN-13 when available, falling back to ISBN-10.
// Returns an empty string when the volume carries no ISBN at all.
func (v Volume) PrimaryISBN() string {
	var isbn10 string
	for _, id := range v.VolumeInfo.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	return isbn10
}

// CoverURL returns the best available cover image URL, preferring the larger
// thumbnail. The zoom parameter is rewritten for a higher quality image.
func (v Volume) CoverURL() string {
	if v.VolumeInfo.ImageLinks == nil {
		return ""
	}
	coverURL := v.VolumeInfo.ImageLinks.Thumbnail
	if coverURL == "" {
		coverURL = v.VolumeInfo.ImageLinks.SmallThumbnail
	}
	return strings.Replace(coverURL, "zoom=1", "zoom=0", 1)
}

// apiErrorEnvelope is the wrapper shape the API uses for error responses,
// distinct from the success payload.
type apiErrorEnvelope struct {
	Error apiErrorDetail `json:"error"`
}

type apiErrorDetail struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Status  string         `json:"status"`
	Errors  []apiErrorItem `json:"errors"`
}

type apiErrorItem struct {
	Message string `json:"message"`
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
}
