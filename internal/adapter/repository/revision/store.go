package adapter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	revisionRepositoryAdapterPort "github.com/flash-go/depot-service/internal/port/adapter/repository/revision"
)

// Diagnostics surfaced to clients as HTTP 500 reason text. The exact wording
// is part of the external contract.
var (
	errFileName         = errors.New("invalid file name")
	errRevisionDatabase = errors.New("invalid revision database")
	errRevisionNumber   = errors.New("invalid revision number")
	errOpenWrite        = errors.New("Cannot open for writing")
	errWriteData        = errors.New("Cannot write the data")
	errLinkLatest       = errors.New("Cannot create link for the latest tag")
	errLinkCurrent      = errors.New("Cannot create link for the current tag")
	errLinkDefault      = errors.New("Cannot create link for default file")
	errTagName          = errors.New("invalid tag name")
	errNumericTag       = errors.New("invalid numeric tag name")
	errAssignAll        = errors.New("cannot assign the all tag name")
	errAssignLatest     = errors.New("cannot assign the latest tag name")
	errRevision         = errors.New("invalid revision")
	errTagLink          = errors.New("Cannot create the tag link")
	errDeleteCurrent    = errors.New("cannot delete current")
	errDeleteLatest     = errors.New("Cannot delete latest")
	errNoSuchFile       = errors.New("no such file")
)

// Checkout opens the revision of a resource denoted by a token (a revision
// number, a tag name, or one of the reserved names). The returned descriptor
// is owned by the caller.
func (a *adapter) Checkout(ctx context.Context, data *revisionRepositoryAdapterPort.CheckoutData) (*revisionRepositoryAdapterPort.CheckoutResult, error) {
	if !isValidToken(data.Revision) {
		return nil, revisionRepositoryAdapterPort.ErrNotFound
	}
	f, err := os.Open(suffixed(data.Filename, data.Revision))
	if err != nil {
		return nil, revisionRepositoryAdapterPort.ErrNotFound
	}
	return &revisionRepositoryAdapterPort.CheckoutResult{File: f}, nil
}

// Checkin stores a new revision of a resource and retargets the reserved
// references. A payload identical to the latest revision allocates nothing:
// only the existing file's times move when the client supplied a timestamp.
func (a *adapter) Checkin(ctx context.Context, data *revisionRepositoryAdapterPort.CheckinData) (*revisionRepositoryAdapterPort.CheckinResult, error) {
	_, base := splitDirBase(data.Filename)
	if !strings.ContainsRune(data.Filename, '/') || base == tagAll || strings.Contains(data.Filename, frm) {
		return nil, errFileName
	}

	// Allocate the next revision number by reading ~latest.
	newrev := 1
	latest := suffixed(data.Filename, tagLatest)
	if target, err := readLink(latest); err == nil {
		a.trace(data.Filename, "FOUND latest AT %s", target)
		n, err := revisionNumber(target)
		if err != nil {
			return nil, err
		}
		newrev = n + 1
		if newrev <= 1 {
			return nil, errRevisionNumber
		}

		if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data.Data) {
			if data.Timestamp > 0 {
				t := time.Unix(data.Timestamp, 0)
				os.Chtimes(target, t, t)
			}
			a.trace(data.Filename, "DUPLICATES REVISION %d", n)
			return &revisionRepositoryAdapterPort.CheckinResult{Revision: n, Duplicate: true}, nil
		}
	} else {
		a.trace(data.Filename, "NO latest, NEW FILE")
	}

	fullname := suffixed(data.Filename, strconv.Itoa(newrev))
	f, err := os.OpenFile(fullname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errOpenWrite
	}
	if _, err := f.Write(data.Data); err != nil {
		f.Close()
		os.Remove(fullname)
		return nil, errWriteData
	}
	if err := f.Close(); err != nil {
		os.Remove(fullname)
		return nil, errWriteData
	}
	if data.Timestamp > 0 {
		t := time.Unix(data.Timestamp, 0)
		os.Chtimes(fullname, t, t)
	}

	// Retarget the reserved references, then the bare default link.
	if err := writeLink(fullname, latest); err != nil {
		return nil, errLinkLatest
	}
	if err := writeLink(fullname, suffixed(data.Filename, tagCurrent)); err != nil {
		return nil, errLinkCurrent
	}
	if err := writeLink(fullname, data.Filename); err != nil {
		return nil, errLinkDefault
	}

	a.event(data.Clientname, data.Filename, "CHECKED IN REVISION %d", newrev)
	return &revisionRepositoryAdapterPort.CheckinResult{Revision: newrev}, nil
}

// Resolve maps a token to the revision file it denotes.
func (a *adapter) Resolve(ctx context.Context, data *revisionRepositoryAdapterPort.ResolveData) (*revisionRepositoryAdapterPort.ResolveResult, error) {
	target, err := a.resolve(data.Filename, data.Token)
	if err != nil {
		return nil, err
	}
	return &revisionRepositoryAdapterPort.ResolveResult{Target: target}, nil
}

func (a *adapter) resolve(filename, token string) (string, error) {
	if !isValidToken(token) {
		return "", errRevision
	}

	// Strip any existing suffix so callers may pass a decorated name.
	stripped := filename
	if i := strings.LastIndex(stripped, frm); i >= 0 {
		stripped = stripped[:i]
	}

	var target string
	if isDigit(token[0]) {
		target = suffixed(stripped, token)
	} else {
		var err error
		target, err = readLink(suffixed(stripped, token))
		if err != nil {
			return "", errRevision
		}
	}

	f, err := os.Open(target)
	if err != nil {
		return "", errRevision
	}
	f.Close()
	return target, nil
}

// Apply points a tag at a revision. The reserved names all and latest are
// not assignable; current is, and moving it also moves the bare default link.
func (a *adapter) Apply(ctx context.Context, data *revisionRepositoryAdapterPort.ApplyData) (*revisionRepositoryAdapterPort.ApplyResult, error) {
	if !isValidToken(data.Tag) {
		return nil, errTagName
	}
	if isDigit(data.Tag[0]) {
		return nil, errNumericTag
	}
	if data.Tag == tagAll {
		return nil, errAssignAll
	}
	if data.Tag == tagLatest {
		return nil, errAssignLatest
	}

	revision := data.Revision
	if revision == "" {
		revision = tagCurrent
	}
	target, err := a.resolve(data.Filename, revision)
	if err != nil {
		return nil, errRevision
	}

	if err := writeLink(target, suffixed(data.Filename, data.Tag)); err != nil {
		return nil, errTagLink
	}
	if data.Tag == tagCurrent {
		if err := writeLink(target, data.Filename); err != nil {
			return nil, errLinkDefault
		}
	}

	n, _ := revisionNumber(target)
	a.event(data.Clientname, data.Filename, "APPLIED TAG %s TO REVISION %d", data.Tag, n)
	return &revisionRepositoryAdapterPort.ApplyResult{Revision: n}, nil
}

// Delete removes a user tag or a revision. Reserved tags cannot be deleted,
// nor can the revision either of them references. Deleting a revision first
// unlinks every user tag still referencing it. The pseudo-name all purges
// the whole resource.
func (a *adapter) Delete(ctx context.Context, data *revisionRepositoryAdapterPort.DeleteData) error {
	switch data.Revision {
	case tagCurrent:
		return errDeleteCurrent
	case tagLatest:
		return errDeleteLatest
	case tagAll:
		return a.purge(data)
	}
	if !isValidToken(data.Revision) {
		return errRevision
	}

	if !isDigit(data.Revision[0]) {
		if err := os.Remove(suffixed(data.Filename, data.Revision)); err != nil {
			return errNoSuchFile
		}
		a.event(data.Clientname, data.Filename, "REMOVED TAG %s", data.Revision)
		return nil
	}

	path := suffixed(data.Filename, data.Revision)
	if target, err := a.resolve(data.Filename, tagCurrent); err == nil && target == path {
		return errDeleteCurrent
	}
	if target, err := a.resolve(data.Filename, tagLatest); err == nil && target == path {
		return errDeleteLatest
	}
	if _, err := os.Lstat(path); err != nil {
		return errNoSuchFile
	}

	dir, base := splitDirBase(data.Filename)
	entries, err := scanResource(dir, base, false)
	if err != nil {
		return errNoSuchFile
	}
	for _, e := range entries {
		if !e.link {
			continue
		}
		target, err := readLink(dir + "/" + e.name)
		if err != nil || !strings.HasSuffix(target, frm+data.Revision) {
			continue
		}
		if os.Remove(dir+"/"+e.name) == nil {
			a.event(data.Clientname, data.Filename, "DELETED TAG %s", suffix(e.name))
		}
	}

	if err := os.Remove(path); err != nil {
		return errNoSuchFile
	}
	a.event(data.Clientname, data.Filename, "DELETED REVISION %s", data.Revision)
	return nil
}

func (a *adapter) purge(data *revisionRepositoryAdapterPort.DeleteData) error {
	dir, base := splitDirBase(data.Filename)
	entries, err := scanResource(dir, base, true)
	if err != nil {
		return errNoSuchFile
	}
	removed := 0
	for _, e := range entries {
		if e.dir {
			continue
		}
		if os.Remove(dir+"/"+e.name) == nil {
			removed++
		}
	}
	if removed == 0 {
		return errNoSuchFile
	}
	a.event(data.Clientname, data.Filename, "DELETED REVISION %s", tagAll)
	return nil
}

// Prune bulk-deletes revisions numbered at or below latest minus depth.
// The per-revision protections of Delete still apply: a revision pinned by
// ~current survives silently.
func (a *adapter) Prune(ctx context.Context, data *revisionRepositoryAdapterPort.PruneData) error {
	if data.Depth < 2 {
		return nil
	}
	target, err := readLink(suffixed(data.Filename, tagLatest))
	if err != nil {
		return nil
	}
	top, err := revisionNumber(target)
	if err != nil {
		return nil
	}
	threshold := top - data.Depth
	if threshold < 1 {
		return nil
	}

	dir, base := splitDirBase(data.Filename)
	entries, err := scanResource(dir, base, false)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		if e.dir || e.link || !e.numeric || e.rev > threshold {
			continue
		}
		a.Delete(ctx, &revisionRepositoryAdapterPort.DeleteData{
			Clientname: data.Clientname,
			Filename:   data.Filename,
			Revision:   strconv.Itoa(e.rev),
		})
	}
	return nil
}
