package port

import (
	"github.com/flash-go/flash/http/server"
)

type Interface interface {
	Get(ctx server.ReqCtx)
	Put(ctx server.ReqCtx)
	Post(ctx server.ReqCtx)
	Delete(ctx server.ReqCtx)
}
