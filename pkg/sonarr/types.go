package sonarr

import "time"

// Series is a read-side projection of a Sonarr v3 series record. It is
// never written back; writes go through UpdateSeasonMonitoring, which
// round-trips the full document.
type Series struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Images  []Image  `json:"images"`
	Seasons []Season `json:"seasons"`
}

// Poster returns the remote poster URL, or "" if the series has none.
func (s *Series) Poster() string {
	for _, img := range s.Images {
		if img.CoverType == "poster" {
			return img.RemoteURL
		}
	}
	return ""
}

// MonitoredSeasons returns the numbers of seasons still monitored.
func (s *Series) MonitoredSeasons() []int {
	var nums []int
	for _, season := range s.Seasons {
		if season.Monitored {
			nums = append(nums, season.SeasonNumber)
		}
	}
	return nums
}

// Season is one season of a series, with its monitoring flag.
type Season struct {
	SeasonNumber int  `json:"seasonNumber"`
	Monitored    bool `json:"monitored"`
}

// Image is one artwork entry.
type Image struct {
	CoverType string `json:"coverType"`
	RemoteURL string `json:"remoteUrl"`
}

// Episode is one episode of a season, including its file when
// includeEpisodeFile is requested.
type Episode struct {
	ID            int64        `json:"id"`
	SeasonNumber  int          `json:"seasonNumber"`
	EpisodeNumber int          `json:"episodeNumber"`
	HasFile       bool         `json:"hasFile"`
	EpisodeFileID int64        `json:"episodeFileId"`
	EpisodeFile   *EpisodeFile `json:"episodeFile"`
}

// EpisodeFile describes the file on disk for a downloaded episode.
type EpisodeFile struct {
	DateAdded time.Time `json:"dateAdded"`
	Size      int64     `json:"size"`
}
