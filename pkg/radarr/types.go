package radarr

import "time"

// Movie is a movie record as reported by the Radarr v3 API.
type Movie struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	HasFile    bool       `json:"hasFile"`
	SizeOnDisk int64      `json:"sizeOnDisk"`
	Images     []Image    `json:"images"`
	MovieFile  *MovieFile `json:"movieFile"`
}

// Poster returns the remote poster URL, or "" if the movie has none.
func (m *Movie) Poster() string {
	for _, img := range m.Images {
		if img.CoverType == "poster" {
			return img.RemoteURL
		}
	}
	return ""
}

// Image is one artwork entry.
type Image struct {
	CoverType string `json:"coverType"`
	RemoteURL string `json:"remoteUrl"`
}

// MovieFile describes the file on disk for a downloaded movie.
type MovieFile struct {
	DateAdded time.Time `json:"dateAdded"`
	Size      int64     `json:"size"`
}
