package adapter

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	revisionRepositoryAdapterPort "github.com/flash-go/depot-service/internal/port/adapter/repository/revision"
)

// Repair rewrites legacy absolute symlink targets under a repository root to
// bare basename references. Runs once at startup; relative links are left
// untouched. One sub-directory level is covered, matching the nesting the
// store supports.
func (a *adapter) Repair(ctx context.Context, data *revisionRepositoryAdapterPort.RepairData) error {
	dirents, err := os.ReadDir(data.Root)
	if err != nil {
		return err
	}
	for _, d := range dirents {
		if d.IsDir() {
			subdir := data.Root + "/" + d.Name()
			subents, err := os.ReadDir(subdir)
			if err != nil {
				continue
			}
			for _, s := range subents {
				a.repairEntry(subdir, s)
			}
			continue
		}
		a.repairEntry(data.Root, d)
	}
	return nil
}

func (a *adapter) repairEntry(dir string, d fs.DirEntry) {
	if d.Type()&fs.ModeSymlink == 0 {
		return
	}
	linkname := dir + "/" + d.Name()
	target, err := os.Readlink(linkname)
	if err != nil || !filepath.IsAbs(target) {
		return
	}
	if err := writeLink(target, linkname); err == nil {
		a.trace(linkname, "REPAIRED LEGACY TARGET %s", target)
	}
}
