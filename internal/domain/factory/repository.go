package factory

import (
	"time"

	"github.com/flash-go/depot-service/internal/domain/entity"
)

func NewRepository(data RepositoryData) *entity.Repository {
	return &entity.Repository{
		Uri:     data.Uri,
		Root:    data.Root,
		Depth:   data.Depth,
		Created: time.Unix(0, data.Created.UnixNano()),
	}
}

type RepositoryData struct {
	Uri     string
	Root    string
	Depth   int
	Created time.Time
}
