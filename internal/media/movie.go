package media

import (
	"context"
	"fmt"

	"github.com/vmunix/janitarr/pkg/radarr"
)

// MovieAPI is the Radarr surface the movie manager needs.
type MovieAPI interface {
	Movie(ctx context.Context, id int64) (*radarr.Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
}

// MovieManager resolves and deletes movies through Radarr.
type MovieManager struct {
	client MovieAPI
}

// NewMovieManager creates a movie manager over a Radarr client.
func NewMovieManager(client MovieAPI) *MovieManager {
	return &MovieManager{client: client}
}

// GetMedia resolves a movie snapshot. A movie is available when Radarr
// has a file for it; the availability clock starts at the file's
// dateAdded.
func (m *MovieManager) GetMedia(ctx context.Context, externalServiceID int64, _ []int) (*Info, error) {
	movie, err := m.client.Movie(ctx, externalServiceID)
	if err != nil {
		return nil, fmt.Errorf("fetch movie %d: %w", externalServiceID, err)
	}

	info := &Info{
		ID:         movie.ID,
		Title:      movie.Title,
		Poster:     movie.Poster(),
		Available:  movie.HasFile,
		SizeOnDisk: movie.SizeOnDisk,
	}
	// Radarr can report a stale movieFile with hasFile false; only an
	// available movie gets a timestamp.
	if movie.HasFile && movie.MovieFile != nil {
		added := movie.MovieFile.DateAdded
		info.AvailableSince = &added
	}
	return info, nil
}

// DeleteMedia removes the movie record and its files.
func (m *MovieManager) DeleteMedia(ctx context.Context, externalServiceID int64, _ []int) error {
	if err := m.client.DeleteMovie(ctx, externalServiceID); err != nil {
		return fmt.Errorf("delete movie %d: %w", externalServiceID, err)
	}
	return nil
}
