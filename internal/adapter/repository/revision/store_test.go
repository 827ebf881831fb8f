package adapter

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	revisionRepositoryAdapterPort "github.com/flash-go/depot-service/internal/port/adapter/repository/revision"
	"github.com/flash-go/sdk/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter() revisionRepositoryAdapterPort.Interface {
	return New(&Config{Logger: logger.NewConsole()})
}

func checkin(t *testing.T, a revisionRepositoryAdapterPort.Interface, filename, payload string, timestamp int64) *revisionRepositoryAdapterPort.CheckinResult {
	t.Helper()
	result, err := a.Checkin(context.Background(), &revisionRepositoryAdapterPort.CheckinData{
		Clientname: "/depot/test/" + filepath.Base(filename),
		Filename:   filename,
		Timestamp:  timestamp,
		Data:       []byte(payload),
	})
	require.NoError(t, err)
	return result
}

// assertInvariants checks the reference discipline for a resource that has
// been written at least once: both reserved tags exist, every stored target
// is a bare basename, and no revision outnumbers ~latest.
func assertInvariants(t *testing.T, filename string) {
	t.Helper()
	dir, base := splitDirBase(filename)

	latest, err := readLink(suffixed(filename, tagLatest))
	require.NoError(t, err, "~latest must exist")
	_, err = os.Stat(latest)
	require.NoError(t, err, "~latest must reference an existing revision")

	current, err := readLink(suffixed(filename, tagCurrent))
	require.NoError(t, err, "~current must exist")
	_, err = os.Stat(current)
	require.NoError(t, err, "~current must reference an existing revision")

	top, err := revisionNumber(latest)
	require.NoError(t, err)

	entries, err := scanResource(dir, base, true)
	require.NoError(t, err)
	for _, e := range entries {
		if e.link {
			stored, err := os.Readlink(dir + "/" + e.name)
			require.NoError(t, err)
			assert.NotContains(t, stored, "/", "stored target must be a bare basename")
		}
		if e.numeric && !e.link && !e.dir {
			assert.LessOrEqual(t, e.rev, top, "no revision may outnumber ~latest")
		}
	}
}

func TestCheckinInitialLayout(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")

	result := checkin(t, a, file, `{"k":1}`, 0)
	assert.Equal(t, 1, result.Revision)
	assert.False(t, result.Duplicate)

	content, err := os.ReadFile(file + "~1")
	require.NoError(t, err)
	assert.Equal(t, `{"k":1}`, string(content))

	for _, link := range []string{file, file + "~current", file + "~latest"} {
		stored, err := os.Readlink(link)
		require.NoError(t, err)
		assert.Equal(t, "a.json~1", stored)
	}
	assertInvariants(t, file)
}

func TestCheckinDuplicateSuppression(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")

	checkin(t, a, file, `{"k":1}`, 0)
	result := checkin(t, a, file, `{"k":1}`, 1700000000)

	assert.Equal(t, 1, result.Revision)
	assert.True(t, result.Duplicate)

	_, err := os.Lstat(file + "~2")
	assert.True(t, os.IsNotExist(err), "no second revision may be allocated")

	info, err := os.Stat(file + "~1")
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), info.ModTime().Unix())
	assertInvariants(t, file)
}

func TestCheckinSequence(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")

	checkin(t, a, file, `{"k":1}`, 0)
	result := checkin(t, a, file, `{"k":2}`, 0)
	assert.Equal(t, 2, result.Revision)

	for _, link := range []string{file, file + "~current", file + "~latest"} {
		stored, err := os.Readlink(link)
		require.NoError(t, err)
		assert.Equal(t, "a.json~2", stored)
	}
	assertInvariants(t, file)
}

func TestCheckinClientTimestamp(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")

	checkin(t, a, file, `{"k":1}`, 1600000000)

	info, err := os.Stat(file + "~1")
	require.NoError(t, err)
	assert.Equal(t, int64(1600000000), info.ModTime().Unix())
}

func TestCheckinRejectsBadNames(t *testing.T) {
	a := newTestAdapter()
	dir := t.TempDir()

	for _, filename := range []string{
		"nodir",
		filepath.Join(dir, "all"),
		filepath.Join(dir, "a~b"),
	} {
		_, err := a.Checkin(context.Background(), &revisionRepositoryAdapterPort.CheckinData{
			Clientname: "/depot/test/bad",
			Filename:   filename,
			Data:       []byte("x"),
		})
		assert.EqualError(t, err, "invalid file name", "filename %q", filename)
	}
}

func TestCheckinCorruptDatabase(t *testing.T) {
	a := newTestAdapter()
	dir := t.TempDir()
	file := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbage"), []byte("x"), 0644))
	require.NoError(t, os.Symlink("garbage", file+"~latest"))

	_, err := a.Checkin(context.Background(), &revisionRepositoryAdapterPort.CheckinData{
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Data:       []byte("x"),
	})
	assert.EqualError(t, err, "invalid revision database")
}

func TestCheckout(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")
	checkin(t, a, file, `{"k":1}`, 0)
	checkin(t, a, file, `{"k":2}`, 0)

	for revision, expected := range map[string]string{
		"current": `{"k":2}`,
		"latest":  `{"k":2}`,
		"1":       `{"k":1}`,
		"2":       `{"k":2}`,
	} {
		result, err := a.Checkout(context.Background(), &revisionRepositoryAdapterPort.CheckoutData{
			Filename: file,
			Revision: revision,
		})
		require.NoError(t, err, "revision %q", revision)
		content, err := io.ReadAll(result.File)
		result.File.Close()
		require.NoError(t, err)
		assert.Equal(t, expected, string(content), "revision %q", revision)
	}
}

func TestCheckoutNotFound(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")
	checkin(t, a, file, `{"k":1}`, 0)

	for _, revision := range []string{"9", "missing", "bad/../name"} {
		_, err := a.Checkout(context.Background(), &revisionRepositoryAdapterPort.CheckoutData{
			Filename: file,
			Revision: revision,
		})
		assert.Equal(t, revisionRepositoryAdapterPort.ErrNotFound, err, "revision %q", revision)
	}
}

func TestResolve(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")
	checkin(t, a, file, `{"k":1}`, 0)
	checkin(t, a, file, `{"k":2}`, 0)

	result, err := a.Resolve(context.Background(), &revisionRepositoryAdapterPort.ResolveData{
		Filename: file,
		Token:    "current",
	})
	require.NoError(t, err)
	assert.Equal(t, file+"~2", result.Target)

	// A decorated filename resolves against the stripped resource name.
	result, err = a.Resolve(context.Background(), &revisionRepositoryAdapterPort.ResolveData{
		Filename: file + "~current",
		Token:    "1",
	})
	require.NoError(t, err)
	assert.Equal(t, file+"~1", result.Target)
}

func TestApplyTag(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")
	checkin(t, a, file, `{"k":1}`, 0)
	checkin(t, a, file, `{"k":2}`, 0)

	result, err := a.Apply(context.Background(), &revisionRepositoryAdapterPort.ApplyData{
		Tag:        "stable",
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Revision:   "1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Revision)

	// Applying then resolving yields the revision that was tagged.
	resolved, err := a.Resolve(context.Background(), &revisionRepositoryAdapterPort.ResolveData{
		Filename: file,
		Token:    "stable",
	})
	require.NoError(t, err)
	assert.Equal(t, file+"~1", resolved.Target)
	assertInvariants(t, file)
}

func TestApplyCurrentMovesDefaultLink(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")
	checkin(t, a, file, `{"k":1}`, 0)
	checkin(t, a, file, `{"k":2}`, 0)

	_, err := a.Apply(context.Background(), &revisionRepositoryAdapterPort.ApplyData{
		Tag:        "current",
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Revision:   "1",
	})
	require.NoError(t, err)

	for _, link := range []string{file, file + "~current"} {
		stored, err := os.Readlink(link)
		require.NoError(t, err)
		assert.Equal(t, "a.json~1", stored)
	}
	// ~latest keeps pointing at the highest revision.
	stored, err := os.Readlink(file + "~latest")
	require.NoError(t, err)
	assert.Equal(t, "a.json~2", stored)
}

func TestApplyRejections(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")
	checkin(t, a, file, `{"k":1}`, 0)

	cases := []struct {
		tag      string
		revision string
		expected string
	}{
		{"bad name", "1", "invalid tag name"},
		{"1stable", "1", "invalid numeric tag name"},
		{"all", "1", "cannot assign the all tag name"},
		{"latest", "1", "cannot assign the latest tag name"},
		{"stable", "9", "invalid revision"},
	}
	for _, c := range cases {
		_, err := a.Apply(context.Background(), &revisionRepositoryAdapterPort.ApplyData{
			Tag:        c.tag,
			Clientname: "/depot/test/a.json",
			Filename:   file,
			Revision:   c.revision,
		})
		assert.EqualError(t, err, c.expected)
	}
}

func TestDeleteProtections(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")
	checkin(t, a, file, `{"k":1}`, 0)
	checkin(t, a, file, `{"k":2}`, 0)

	err := a.Delete(context.Background(), &revisionRepositoryAdapterPort.DeleteData{
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Revision:   "current",
	})
	assert.EqualError(t, err, "cannot delete current")

	err = a.Delete(context.Background(), &revisionRepositoryAdapterPort.DeleteData{
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Revision:   "latest",
	})
	assert.EqualError(t, err, "Cannot delete latest")

	// Revision 2 is what both reserved tags reference.
	err = a.Delete(context.Background(), &revisionRepositoryAdapterPort.DeleteData{
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Revision:   "2",
	})
	assert.EqualError(t, err, "cannot delete current")
	assertInvariants(t, file)
}

func TestDeleteRevisionCascadesTags(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")
	checkin(t, a, file, `{"k":1}`, 0)
	checkin(t, a, file, `{"k":2}`, 0)
	_, err := a.Apply(context.Background(), &revisionRepositoryAdapterPort.ApplyData{
		Tag:        "stable",
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Revision:   "1",
	})
	require.NoError(t, err)

	err = a.Delete(context.Background(), &revisionRepositoryAdapterPort.DeleteData{
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Revision:   "1",
	})
	require.NoError(t, err)

	_, err = os.Lstat(file + "~1")
	assert.True(t, os.IsNotExist(err))
	_, err = os.Lstat(file + "~stable")
	assert.True(t, os.IsNotExist(err), "tags referencing the revision must be unlinked")

	// The deleted revision no longer resolves; the reserved tags still do.
	_, err = a.Resolve(context.Background(), &revisionRepositoryAdapterPort.ResolveData{Filename: file, Token: "1"})
	assert.Error(t, err)
	assertInvariants(t, file)
}

func TestDeleteUserTag(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")
	checkin(t, a, file, `{"k":1}`, 0)
	_, err := a.Apply(context.Background(), &revisionRepositoryAdapterPort.ApplyData{
		Tag:        "stable",
		Clientname: "/depot/test/a.json",
		Filename:   file,
	})
	require.NoError(t, err)

	err = a.Delete(context.Background(), &revisionRepositoryAdapterPort.DeleteData{
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Revision:   "stable",
	})
	require.NoError(t, err)

	_, err = os.Lstat(file + "~stable")
	assert.True(t, os.IsNotExist(err))

	err = a.Delete(context.Background(), &revisionRepositoryAdapterPort.DeleteData{
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Revision:   "stable",
	})
	assert.EqualError(t, err, "no such file")
}

func TestDeleteAllPurges(t *testing.T) {
	a := newTestAdapter()
	dir := t.TempDir()
	file := filepath.Join(dir, "a.json")
	other := filepath.Join(dir, "b.json")
	checkin(t, a, file, `{"k":1}`, 0)
	checkin(t, a, file, `{"k":2}`, 0)
	checkin(t, a, other, `{"k":1}`, 0)

	err := a.Delete(context.Background(), &revisionRepositoryAdapterPort.DeleteData{
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Revision:   "all",
	})
	require.NoError(t, err)

	dirents, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, d := range dirents {
		assert.False(t, strings.HasPrefix(d.Name(), "a.json"), "unexpected survivor %s", d.Name())
	}

	// The purge is scoped to one resource.
	_, err = os.Lstat(other + "~1")
	assert.NoError(t, err)

	err = a.Delete(context.Background(), &revisionRepositoryAdapterPort.DeleteData{
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Revision:   "all",
	})
	assert.EqualError(t, err, "no such file")
}

func TestPrune(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")
	for i := 1; i <= 5; i++ {
		checkin(t, a, file, `{"k":`+strconv.Itoa(i)+`}`, 0)
	}

	err := a.Prune(context.Background(), &revisionRepositoryAdapterPort.PruneData{
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Depth:      2,
	})
	require.NoError(t, err)

	// threshold = 5 - 2: everything at or below it is gone.
	for _, rev := range []string{"1", "2", "3"} {
		_, err := os.Lstat(file + "~" + rev)
		assert.True(t, os.IsNotExist(err), "revision %s must be pruned", rev)
	}
	for _, rev := range []string{"4", "5"} {
		_, err := os.Lstat(file + "~" + rev)
		assert.NoError(t, err, "revision %s must survive", rev)
	}
	assertInvariants(t, file)
}

func TestPruneKeepsPinnedCurrent(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")
	for i := 1; i <= 5; i++ {
		checkin(t, a, file, `{"k":`+strconv.Itoa(i)+`}`, 0)
	}
	_, err := a.Apply(context.Background(), &revisionRepositoryAdapterPort.ApplyData{
		Tag:        "current",
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Revision:   "2",
	})
	require.NoError(t, err)

	err = a.Prune(context.Background(), &revisionRepositoryAdapterPort.PruneData{
		Clientname: "/depot/test/a.json",
		Filename:   file,
		Depth:      2,
	})
	require.NoError(t, err)

	// Revision 2 is pinned by ~current; Delete refused it silently.
	_, err = os.Lstat(file + "~2")
	assert.NoError(t, err)
	for _, rev := range []string{"1", "3"} {
		_, err := os.Lstat(file + "~" + rev)
		assert.True(t, os.IsNotExist(err), "revision %s must be pruned", rev)
	}
	assertInvariants(t, file)
}

func TestPruneNoop(t *testing.T) {
	a := newTestAdapter()
	file := filepath.Join(t.TempDir(), "a.json")
	checkin(t, a, file, `{"k":1}`, 0)
	checkin(t, a, file, `{"k":2}`, 0)

	// Depth below 2 and thresholds below 1 are both no-ops.
	for _, depth := range []int{0, 1, 2, 5} {
		require.NoError(t, a.Prune(context.Background(), &revisionRepositoryAdapterPort.PruneData{
			Clientname: "/depot/test/a.json",
			Filename:   file,
			Depth:      depth,
		}))
	}
	for _, rev := range []string{"1", "2"} {
		_, err := os.Lstat(file + "~" + rev)
		assert.NoError(t, err)
	}
}
