package port

import (
	"context"
	"os"
)

type Interface interface {
	Checkout(ctx context.Context, data *CheckoutData) (*CheckoutResult, error)
	Checkin(ctx context.Context, data *CheckinData) (*CheckinResult, error)
	Resolve(ctx context.Context, data *ResolveData) (*ResolveResult, error)
	Apply(ctx context.Context, data *ApplyData) (*ApplyResult, error)
	Delete(ctx context.Context, data *DeleteData) error
	Prune(ctx context.Context, data *PruneData) error
	History(ctx context.Context, data *HistoryData) (*HistoryResult, error)
	List(ctx context.Context, data *ListData) (*[]ResourceResult, error)
	Repair(ctx context.Context, data *RepairData) error
}

// Args

type CheckoutData struct {
	Filename string
	Revision string
}

type CheckinData struct {
	Clientname string
	Filename   string
	Timestamp  int64
	Data       []byte
}

type ResolveData struct {
	Filename string
	Token    string
}

type ApplyData struct {
	Tag        string
	Clientname string
	Filename   string
	Revision   string
}

type DeleteData struct {
	Clientname string
	Filename   string
	Revision   string
}

type PruneData struct {
	Clientname string
	Filename   string
	Depth      int
}

type HistoryData struct {
	Filename string
}

type ListData struct {
	Root    string
	Visible func(subdir string) bool
}

type RepairData struct {
	Root string
}

// Results

type CheckoutResult struct {
	// File is open read-only. The caller owns it and must close it or hand
	// it to a transfer primitive that does.
	File *os.File
}

type CheckinResult struct {
	Revision  int
	Duplicate bool
}

type ResolveResult struct {
	Target string
}

type ApplyResult struct {
	Revision int
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
