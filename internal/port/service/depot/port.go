package port

import (
	"context"
	"os"
)

type Interface interface {
	Route(ctx context.Context, data *RouteData) error
	Discover(ctx context.Context, data *DiscoverData) error
	Checkout(ctx context.Context, data *CheckoutData) (*CheckoutResult, error)
	Checkin(ctx context.Context, data *CheckinData) error
	Apply(ctx context.Context, data *ApplyData) error
	Delete(ctx context.Context, data *DeleteData) error
	History(ctx context.Context, data *HistoryData) (*HistoryResult, error)
	List(ctx context.Context, data *ListData) (*[]ResourceResult, error)
	Repositories(ctx context.Context) []string
	Updated(ctx context.Context) int64
}

// Args

type RouteData struct {
	Uri  string
	Path string
}

type DiscoverData struct {
	Root string
}

type CheckoutData struct {
	Uri      string
	Revision string
}

type CheckinData struct {
	Uri       string
	Timestamp int64
	Data      []byte
}

type ApplyData struct {
	Uri      string
	Tag      string
	Revision string
}

type DeleteData struct {
	Uri      string
	Revision string
}

type HistoryData struct {
	Uri string
}

type ListData struct {
	Uri string
}

// Results

type CheckoutResult struct {
	File *os.File
}

type HistoryResult struct {
	Tags      []TagResult
	Revisions []RevisionResult
}

type TagResult struct {
	Name     string
	Revision int
}

type RevisionResult struct {
	Revision int
	Time     int64
}

type ResourceResult struct {
	Name     string
	Revision int
	Time     int64
}
