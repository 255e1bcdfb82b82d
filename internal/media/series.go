package media

import (
	"context"
	"fmt"
	"time"

	"github.com/vmunix/janitarr/pkg/sonarr"
)

// SeriesAPI is the Sonarr surface the series manager needs.
type SeriesAPI interface {
	Series(ctx context.Context, id int64) (*sonarr.Series, error)
	UpdateSeasonMonitoring(ctx context.Context, id int64, seasons []int, monitored bool) error
	Episodes(ctx context.Context, seriesID int64, season int) ([]sonarr.Episode, error)
	DeleteEpisodeFile(ctx context.Context, fileID int64) error
	DeleteSeries(ctx context.Context, id int64) error
}

// SeriesManager resolves and deletes series seasons through Sonarr.
type SeriesManager struct {
	client SeriesAPI
}

// NewSeriesManager creates a series manager over a Sonarr client.
func NewSeriesManager(client SeriesAPI) *SeriesManager {
	return &SeriesManager{client: client}
}

// GetMedia resolves a series snapshot over the requested seasons. The
// item is available only when every episode of every requested season
// has a file; the availability clock starts at the newest file across
// those seasons. A partially downloaded season makes the whole item
// unavailable with no timestamp.
func (m *SeriesManager) GetMedia(ctx context.Context, externalServiceID int64, seasons []int) (*Info, error) {
	series, err := m.client.Series(ctx, externalServiceID)
	if err != nil {
		return nil, fmt.Errorf("fetch series %d: %w", externalServiceID, err)
	}

	info := &Info{
		ID:        series.ID,
		Title:     series.Title,
		Poster:    series.Poster(),
		Available: true,
		Seasons:   seasons,
	}

	var newest time.Time
	for _, season := range seasons {
		episodes, err := m.client.Episodes(ctx, externalServiceID, season)
		if err != nil {
			return nil, fmt.Errorf("fetch series %d season %d: %w", externalServiceID, season, err)
		}
		for _, ep := range episodes {
			if !ep.HasFile {
				info.Available = false
				info.AvailableSince = nil
				return info, nil
			}
			if ep.EpisodeFile != nil {
				info.SizeOnDisk += ep.EpisodeFile.Size
				if ep.EpisodeFile.DateAdded.After(newest) {
					newest = ep.EpisodeFile.DateAdded
				}
			}
		}
	}

	if len(seasons) > 0 && !newest.IsZero() {
		info.AvailableSince = &newest
	}
	return info, nil
}

// DeleteMedia unmonitors the requested seasons, deletes their episode
// files one by one, and drops the series record only once no season
// remains monitored. A request covering a subset of seasons leaves the
// rest of the series intact.
func (m *SeriesManager) DeleteMedia(ctx context.Context, externalServiceID int64, seasons []int) error {
	series, err := m.client.Series(ctx, externalServiceID)
	if err != nil {
		return fmt.Errorf("fetch series %d: %w", externalServiceID, err)
	}

	if err := m.client.UpdateSeasonMonitoring(ctx, externalServiceID, seasons, false); err != nil {
		return fmt.Errorf("unmonitor seasons of series %d: %w", externalServiceID, err)
	}
	// Mirror the flips on the local snapshot so the delete decision
	// below sees the post-update monitoring state.
	requested := make(map[int]bool, len(seasons))
	for _, s := range seasons {
		requested[s] = true
	}
	for i := range series.Seasons {
		if requested[series.Seasons[i].SeasonNumber] {
			series.Seasons[i].Monitored = false
		}
	}

	for _, season := range seasons {
		episodes, err := m.client.Episodes(ctx, externalServiceID, season)
		if err != nil {
			return fmt.Errorf("fetch series %d season %d: %w", externalServiceID, season, err)
		}
		for _, ep := range episodes {
			if !ep.HasFile || ep.EpisodeFileID == 0 {
				continue
			}
			if err := m.client.DeleteEpisodeFile(ctx, ep.EpisodeFileID); err != nil {
				return fmt.Errorf("delete episode file %d: %w", ep.EpisodeFileID, err)
			}
		}
	}

	if len(series.MonitoredSeasons()) == 0 {
		if err := m.client.DeleteSeries(ctx, externalServiceID); err != nil {
			return fmt.Errorf("delete series %d: %w", externalServiceID, err)
		}
	}
	return nil
}
