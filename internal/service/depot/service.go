package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/flash-go/depot-service/internal/domain/entity"
	"github.com/flash-go/depot-service/internal/domain/factory"
	revisionRepositoryAdapterPort "github.com/flash-go/depot-service/internal/port/adapter/repository/revision"
	depotServicePort "github.com/flash-go/depot-service/internal/port/service/depot"
)

var errUriTooDeep = errors.New("URI too deep")

type Config struct {
	RevisionRepository revisionRepositoryAdapterPort.Interface

	// Comma-separated sub-directory visibility lists. Whitelist wins when
	// both are set; a trailing '.' on an entry makes it a prefix match.
	Whitelist string
	Blacklist string
}

func New(config *Config) depotServicePort.Interface {
	return &service{
		revisionRepository: config.RevisionRepository,
		repositories:       make(map[string]*entity.Repository),
		visibility:         newVisibility(config.Whitelist, config.Blacklist),
	}
}

type service struct {
	revisionRepository revisionRepositoryAdapterPort.Interface
	repositories       map[string]*entity.Repository
	order              []string
	visibility         *visibility
	updated            atomic.Int64

	// The revision store assumes operations on one resource are serial.
	// The original ran on a single-threaded event loop; the http server
	// here does not, so mutations are serialized explicitly.
	mu sync.Mutex
}

// Route binds a URL prefix to a repository root, reads the root's .options
// policy and runs the one-shot link repair pass.
func (s *service) Route(ctx context.Context, data *depotServicePort.RouteData) error {
	root := strings.TrimSuffix(data.Path, "/")
	repo := factory.NewRepository(factory.RepositoryData{
		Uri:     data.Uri,
		Root:    root,
		Depth:   readOptions(root),
		Created: time.Now(),
	})
	if _, ok := s.repositories[data.Uri]; !ok {
		s.order = append(s.order, data.Uri)
	}
	s.repositories[data.Uri] = repo
	return s.revisionRepository.Repair(
		ctx,
		&revisionRepositoryAdapterPort.RepairData{Root: root},
	)
}

// Discover registers every non-hidden sub-directory of the configured
// parent as a repository named after it.
func (s *service) Discover(ctx context.Context, data *depotServicePort.DiscoverData) error {
	dirents, err := os.ReadDir(data.Root)
	if err != nil {
		return err
	}
	for _, d := range dirents {
		if !d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			continue
		}
		err := s.Route(ctx, &depotServicePort.RouteData{
			Uri:  "/depot/" + d.Name(),
			Path: data.Root + "/" + d.Name(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Checkout(ctx context.Context, data *depotServicePort.CheckoutData) (*depotServicePort.CheckoutResult, error) {
	_, filename, err := s.resolve(data.Uri)
	if err != nil {
		return nil, err
	}
	result, err := s.revisionRepository.Checkout(
		ctx,
		&revisionRepositoryAdapterPort.CheckoutData{
			Filename: filename,
			Revision: data.Revision,
		},
	)
	if err != nil {
		return nil, s.convertError(err)
	}
	return &depotServicePort.CheckoutResult{File: result.File}, nil
}

func (s *service) Checkin(ctx context.Context, data *depotServicePort.CheckinData) error {
	repo, filename, err := s.resolve(data.Uri)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Create the one supported sub-directory level on demand.
	if dir := filepath.Dir(filename); dir != repo.Root {
		if err := os.Mkdir(dir, 0750); err != nil && !os.IsExist(err) {
			return errUriTooDeep
		}
	}

	result, err := s.revisionRepository.Checkin(
		ctx,
		&revisionRepositoryAdapterPort.CheckinData{
			Clientname: data.Uri,
			Filename:   filename,
			Timestamp:  data.Timestamp,
			Data:       data.Data,
		},
	)
	if err != nil {
		return s.convertError(err)
	}
	if result.Duplicate {
		return nil
	}
	s.bump()
	if repo.Depth >= 2 {
		s.revisionRepository.Prune(
			ctx,
			&revisionRepositoryAdapterPort.PruneData{
				Clientname: data.Uri,
				Filename:   filename,
				Depth:      repo.Depth,
			},
		)
	}
	return nil
}

func (s *service) Apply(ctx context.Context, data *depotServicePort.ApplyData) error {
	_, filename, err := s.resolve(data.Uri)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.revisionRepository.Apply(
		ctx,
		&revisionRepositoryAdapterPort.ApplyData{
			Tag:        data.Tag,
			Clientname: data.Uri,
			Filename:   filename,
			Revision:   data.Revision,
		},
	)
	if err != nil {
		return s.convertError(err)
	}
	s.bump()
	return nil
}

func (s *service) Delete(ctx context.Context, data *depotServicePort.DeleteData) error {
	_, filename, err := s.resolve(data.Uri)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.revisionRepository.Delete(
		ctx,
		&revisionRepositoryAdapterPort.DeleteData{
			Clientname: data.Uri,
			Filename:   filename,
			Revision:   data.Revision,
		},
	)
	if err != nil {
		return s.convertError(err)
	}
	s.bump()
	return nil
}

func (s *service) History(ctx context.Context, data *depotServicePort.HistoryData) (*depotServicePort.HistoryResult, error) {
	_, filename, err := s.resolve(data.Uri)
	if err != nil {
		return nil, err
	}
	result, err := s.revisionRepository.History(
		ctx,
		&revisionRepositoryAdapterPort.HistoryData{Filename: filename},
	)
	if err != nil {
		return nil, s.convertError(err)
	}

	history := &depotServicePort.HistoryResult{
		Tags:      make([]depotServicePort.TagResult, len(result.Tags)),
		Revisions: make([]depotServicePort.RevisionResult, len(result.Revisions)),
	}
	for i, tag := range result.Tags {
		history.Tags[i] = depotServicePort.TagResult(tag)
	}
	for i, revision := range result.Revisions {
		history.Revisions[i] = depotServicePort.RevisionResult(revision)
	}
	return history, nil
}

func (s *service) List(ctx context.Context, data *depotServicePort.ListData) (*[]depotServicePort.ResourceResult, error) {
	repo, _, err := s.resolve(data.Uri)
	if err != nil {
		return nil, err
	}
	result, err := s.revisionRepository.List(
		ctx,
		&revisionRepositoryAdapterPort.ListData{
			Root:    repo.Root,
			Visible: s.visible,
		},
	)
	if err != nil {
		return nil, s.convertError(err)
	}

	resources := make([]depotServicePort.ResourceResult, len(*result))
	for i, resource := range *result {
		resources[i] = depotServicePort.ResourceResult{
			Name:     repo.Uri + "/" + resource.Name,
			Revision: resource.Revision,
			Time:     resource.Time,
		}
	}
	return &resources, nil
}

// Repositories returns the registered repository names in registration order.
func (s *service) Repositories(ctx context.Context) []string {
	names := make([]string, len(s.order))
	for i, uri := range s.order {
		names[i] = uri[strings.LastIndexByte(uri, '/')+1:]
	}
	return names
}

// Updated returns the timestamp of the last successful mutation, in
// milliseconds, for the freshness endpoint.
func (s *service) Updated(ctx context.Context) int64 {
	return s.updated.Load()
}

// resolve finds the longest registered URL prefix matching uri and maps the
// remainder onto the repository root, mirroring the catalog walk of the
// original router: truncate at the last '/' until a prefix is found.
func (s *service) resolve(uri string) (*entity.Repository, string, error) {
	rooturi := uri
	for rooturi != "" {
		if repo, ok := s.repositories[rooturi]; ok {
			return repo, repo.Root + uri[len(rooturi):], nil
		}
		i := strings.LastIndexByte(rooturi[1:], '/')
		if i < 0 {
			break
		}
		rooturi = rooturi[:i+1]
	}
	return nil, "", depotServicePort.ErrPathNotFound
}

func (s *service) convertError(err error) error {
	if err == revisionRepositoryAdapterPort.ErrNotFound {
		return depotServicePort.ErrNotFound
	}
	return err
}

func (s *service) visible(name string) bool {
	return s.visibility.visible(name)
}

func (s *service) bump() {
	s.updated.Store(time.Now().UnixMilli())
}
