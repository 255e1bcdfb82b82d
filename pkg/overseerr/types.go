package overseerr

import "time"

// MediaStatus is Overseerr's numeric media lifecycle status.
type MediaStatus int

const (
	MediaStatusUnknown            MediaStatus = 1
	MediaStatusPending            MediaStatus = 2
	MediaStatusProcessing         MediaStatus = 3
	MediaStatusPartiallyAvailable MediaStatus = 4
	MediaStatusAvailable          MediaStatus = 5
)

// HasFiles reports whether media in this status has files on disk
// (fully or partially).
func (s MediaStatus) HasFiles() bool {
	return s == MediaStatusAvailable || s == MediaStatusPartiallyAvailable
}

// RequestStatus is Overseerr's numeric request approval status.
type RequestStatus int

const (
	RequestStatusPending  RequestStatus = 1
	RequestStatusApproved RequestStatus = 2
	RequestStatusDeclined RequestStatus = 3
)

// Request is a media request as reported by the Overseerr API.
type Request struct {
	ID          int64         `json:"id"`
	Status      RequestStatus `json:"status"`
	Type        string        `json:"type"` // "movie" or "tv"
	Media       Media         `json:"media"`
	RequestedBy User          `json:"requestedBy"`
	Seasons     []Season      `json:"seasons"`
}

// SeasonNumbers returns the requested season numbers in request order.
func (r *Request) SeasonNumbers() []int {
	if len(r.Seasons) == 0 {
		return nil
	}
	nums := make([]int, len(r.Seasons))
	for i, s := range r.Seasons {
		nums[i] = s.SeasonNumber
	}
	return nums
}

// Media is the broker-side media record attached to a request.
type Media struct {
	ID                int64       `json:"id"`
	Status            MediaStatus `json:"status"`
	ExternalServiceID int64       `json:"externalServiceId"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// User identifies the requester.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Season is one requested season of a series request.
type Season struct {
	SeasonNumber int `json:"seasonNumber"`
}

// requestPage is one page of the paginated request listing.
type requestPage struct {
	PageInfo pageInfo  `json:"pageInfo"`
	Results  []Request `json:"results"`
}

type pageInfo struct {
	Pages    int `json:"pages"`
	PageSize int `json:"pageSize"`
	Results  int `json:"results"`
	Page     int `json:"page"`
}

type countResponse struct {
	Total int `json:"total"`
}
