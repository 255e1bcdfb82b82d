// Package media resolves availability snapshots from the backing library
// managers and dispatches deletions to the system that owns the files.
package media

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownType indicates a media type no manager is registered for.
var ErrUnknownType = errors.New("unknown media type")

// Type discriminates the backing library manager for a request.
type Type string

const (
	TypeMovie  Type = "movie"
	TypeSeries Type = "tv"
)

// ParseType maps a broker media type string to a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "movie":
		return TypeMovie, nil
	case "tv", "series":
		return TypeSeries, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Info is a point-in-time availability snapshot for one request's media.
// AvailableSince is nil when nothing is on disk; Available with a nil
// AvailableSince (an empty series request) must never trigger retention
// action.
type Info struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Poster         string     `json:"poster,omitempty"`
	Available      bool       `json:"available"`
	AvailableSince *time.Time `json:"available_since"`
	SizeOnDisk     int64      `json:"size_on_disk"`
	Seasons        []int      `json:"seasons,omitempty"`
}

// Manager owns the media files for one media type.
type Manager interface {
	// GetMedia resolves the availability snapshot for one title.
	GetMedia(ctx context.Context, externalServiceID int64, seasons []int) (*Info, error)
	// DeleteMedia removes the title's files. For series, only the given
	// seasons are removed; the series record goes with them only when no
	// monitored season remains.
	DeleteMedia(ctx context.Context, externalServiceID int64, seasons []int) error
}

// Library dispatches to the movie or series manager by media type.
type Library struct {
	managers map[Type]Manager
}

// NewLibrary creates a Library over the two backing managers.
func NewLibrary(movies, series Manager) *Library {
	return &Library{
		managers: map[Type]Manager{
			TypeMovie:  movies,
			TypeSeries: series,
		},
	}
}

func (l *Library) manager(t Type) (Manager, error) {
	m, ok := l.managers[t]
	if !ok || m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return m, nil
}

// GetMedia resolves a snapshot via the manager owning the given type.
func (l *Library) GetMedia(ctx context.Context, t Type, externalServiceID int64, seasons []int) (*Info, error) {
	m, err := l.manager(t)
	if err != nil {
		return nil, err
	}
	return m.GetMedia(ctx, externalServiceID, seasons)
}

// DeleteMedia removes media via the manager owning the given type.
func (l *Library) DeleteMedia(ctx context.Context, t Type, externalServiceID int64, seasons []int) error {
	m, err := l.manager(t)
	if err != nil {
		return err
	}
	return m.DeleteMedia(ctx, externalServiceID, seasons)
}
