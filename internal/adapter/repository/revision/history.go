package adapter

import (
	"context"
	"io/fs"
	"os"
	"strings"

	revisionRepositoryAdapterPort "github.com/flash-go/depot-service/internal/port/adapter/repository/revision"
)

// History enumerates one resource: its tags (with the revision each one
// resolves to) followed by its surviving revisions in ascending order.
func (a *adapter) History(ctx context.Context, data *revisionRepositoryAdapterPort.HistoryData) (*revisionRepositoryAdapterPort.HistoryResult, error) {
	dir, base := splitDirBase(data.Filename)
	entries, err := scanResource(dir, base, false)
	if err != nil || len(entries) == 0 {
		return nil, revisionRepositoryAdapterPort.ErrNotFound
	}

	result := &revisionRepositoryAdapterPort.HistoryResult{
		Tags:      []revisionRepositoryAdapterPort.TagResult{},
		Revisions: []revisionRepositoryAdapterPort.RevisionResult{},
	}
	for _, e := range entries {
		switch {
		case e.dir:
		case e.link:
			name := suffix(e.name)
			target, err := a.resolve(data.Filename, name)
			if err != nil {
				continue
			}
			n, err := revisionNumber(target)
			if err != nil {
				continue
			}
			result.Tags = append(result.Tags, revisionRepositoryAdapterPort.TagResult{
				Name:     name,
				Revision: n,
			})
		case e.numeric:
			info, err := os.Stat(dir + "/" + e.name)
			if err != nil {
				continue
			}
			result.Revisions = append(result.Revisions, revisionRepositoryAdapterPort.RevisionResult{
				Revision: e.rev,
				Time:     info.ModTime().Unix(),
			})
		}
	}
	return result, nil
}

// List enumerates every resource of a repository: the default links directly
// under the root plus those one sub-directory deep, where the sub-directory
// passes the visibility filter.
func (a *adapter) List(ctx context.Context, data *revisionRepositoryAdapterPort.ListData) (*[]revisionRepositoryAdapterPort.ResourceResult, error) {
	dirents, err := os.ReadDir(data.Root)
	if err != nil {
		return nil, revisionRepositoryAdapterPort.ErrNotFound
	}

	result := []revisionRepositoryAdapterPort.ResourceResult{}
	for _, d := range dirents {
		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			if data.Visible != nil && !data.Visible(name) {
				continue
			}
			subents, err := os.ReadDir(data.Root + "/" + name)
			if err != nil {
				continue
			}
			for _, s := range subents {
				a.listEntry(&result, data.Root+"/"+name, name+"/", s)
			}
			continue
		}
		a.listEntry(&result, data.Root, "", d)
	}
	return &result, nil
}

// listEntry appends one resource when the entry is its default link: a
// symbolic entry whose bare name carries no suffix separator.
func (a *adapter) listEntry(result *[]revisionRepositoryAdapterPort.ResourceResult, dir, prefix string, d fs.DirEntry) {
	if d.Type()&fs.ModeSymlink == 0 {
		return
	}
	name := d.Name()
	if strings.Contains(name, frm) {
		return
	}
	target, err := readLink(dir + "/" + name)
	if err != nil {
		return
	}
	rev, err := revisionNumber(target)
	if err != nil {
		return
	}
	info, err := os.Stat(target)
	if err != nil {
		return
	}
	*result = append(*result, revisionRepositoryAdapterPort.ResourceResult{
		Name:     prefix + name,
		Revision: rev,
		Time:     info.ModTime().Unix(),
	})
}
