package adapter

import (
	revisionRepositoryAdapterPort "github.com/flash-go/depot-service/internal/port/adapter/repository/revision"
	"github.com/flash-go/flash/logger"
)

type Config struct {
	Logger logger.Logger
}

func New(config *Config) revisionRepositoryAdapterPort.Interface {
	return &adapter{
		logger: config.Logger,
	}
}

type adapter struct {
	logger logger.Logger
}

// event records one entry of the change log vocabulary. The format strings
// are part of the external contract and must not be reworded.
func (a *adapter) event(clientname, filename, format string, args ...any) {
	_, base := splitDirBase(filename)
	a.logger.Log().
		Info().
		Str("client", clientname).
		Str("file", base).
		Msgf(format, args...)
}

func (a *adapter) trace(filename, format string, args ...any) {
	_, base := splitDirBase(filename)
	a.logger.Log().
		Debug().
		Str("file", base).
		Msgf(format, args...)
}
