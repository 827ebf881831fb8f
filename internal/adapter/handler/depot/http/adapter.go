package adapter

import (
	"io"
	"strconv"
	"strings"
	"time"

	dto "github.com/flash-go/depot-service/internal/dto/depot"
	httpDepotHandlerAdapterPort "github.com/flash-go/depot-service/internal/port/adapter/handler/depot/http"
	depotServicePort "github.com/flash-go/depot-service/internal/port/service/depot"
	"github.com/flash-go/flash/http/server"
)

// Read-back content types by filename suffix. Only text-based formats are
// listed: the store does not handle binary data.
var contentTypes = map[string]string{
	"html": "text/html",
	"htm":  "text/html",
	"css":  "text/css",
	"csv":  "text/csv",
	"json": "application/json",
	"jsn":  "application/json",
	"js":   "application/javascript",
	"xml":  "text/xml",
	"txt":  "text/plain",
}

type Config struct {
	DepotService depotServicePort.Interface
	Host         string
	Proxy        string
}

func New(config *Config) httpDepotHandlerAdapterPort.Interface {
	return &adapter{
		config.DepotService,
		config.Host,
		config.Proxy,
	}
}

type adapter struct {
	depotService depotServicePort.Interface
	host         string
	proxy        string
}

// @Summary Read a resource revision, its history, or a repository listing
// @Tags depot
// @Produce json,plain
// @Param path path string true "Repository resource path"
// @Param revision query string false "Revision number, tag name, or all"
// @Success 200
// @Failure 404 {string} string "Not found"
// @Failure 406 {string} string "Not Acceptable"
// @Router /depot/{path} [get]
func (a *adapter) Get(ctx server.ReqCtx) {
	uri, ok := a.cleanUri(ctx)
	if !ok {
		return
	}
	switch uri {
	case "/depot/all":
		a.repositories(ctx)
		return
	case "/depot/check":
		a.check(ctx)
		return
	}
	uri, isAll := stripAll(uri)
	if isAll {
		a.list(ctx, uri)
		return
	}

	revision := string(ctx.Request().URI().QueryArgs().Peek("revision"))
	if revision == "all" {
		a.history(ctx, uri)
		return
	}
	if revision == "" {
		revision = "current"
	}

	result, err := a.depotService.Checkout(
		ctx.Context(),
		&depotServicePort.CheckoutData{
			Uri:      uri,
			Revision: revision,
		},
	)
	if err != nil {
		a.writeServiceError(ctx, err)
		return
	}

	file := result.File
	info, err := file.Stat()
	if err != nil || !info.Mode().IsRegular() {
		file.Close()
		writeError(ctx, 406, "Not Acceptable")
		return
	}
	if i := strings.LastIndexByte(uri, '.'); i >= 0 {
		if contentType, ok := contentTypes[uri[i+1:]]; ok {
			ctx.SetContentType(contentType)
		}
	}
	// The revision is copied into the response body; the descriptor is
	// closed here once the copy is done.
	ctx.SetStatusCode(200)
	io.Copy(ctx, file)
	file.Close()
}

// @Summary Check in a new revision of a resource
// @Tags depot
// @Accept plain
// @Produce plain
// @Param path path string true "Repository resource path"
// @Param time query int false "Client-supplied timestamp (seconds)"
// @Success 200
// @Failure 404 {string} string "Path not found"
// @Failure 406 {string} string "Not Acceptable"
// @Router /depot/{path} [put]
func (a *adapter) Put(ctx server.ReqCtx) {
	uri, ok := a.cleanUri(ctx)
	if !ok {
		return
	}
	uri, isAll := stripAll(uri)
	if isAll {
		writeError(ctx, 500, "Invalid URI")
		return
	}

	var timestamp int64
	if v := ctx.Request().URI().QueryArgs().Peek("time"); len(v) > 0 {
		timestamp, _ = strconv.ParseInt(string(v), 10, 64)
	}

	err := a.depotService.Checkin(
		ctx.Context(),
		&depotServicePort.CheckinData{
			Uri:       uri,
			Timestamp: timestamp,
			Data:      ctx.Body(),
		},
	)
	if err != nil {
		a.writeServiceError(ctx, err)
		return
	}
	ctx.WriteResponse(200, nil)
}

// @Summary Apply a tag to a revision of a resource
// @Tags depot
// @Produce plain
// @Param path path string true "Repository resource path"
// @Param tag query string false "Tag name (defaults to current)"
// @Param revision query string false "Revision to tag (defaults to current)"
// @Success 200
// @Failure 400 {string} string "invalid tag name"
// @Failure 404 {string} string "Path not found"
// @Router /depot/{path} [post]
func (a *adapter) Post(ctx server.ReqCtx) {
	uri, ok := a.cleanUri(ctx)
	if !ok {
		return
	}
	uri, isAll := stripAll(uri)
	if isAll {
		writeError(ctx, 500, "Invalid URI")
		return
	}

	tag := string(ctx.Request().URI().QueryArgs().Peek("tag"))
	revision := string(ctx.Request().URI().QueryArgs().Peek("revision"))
	if tag == "" && revision == "" {
		// No operation.
		ctx.WriteResponse(200, nil)
		return
	}
	if revision == "all" {
		writeError(ctx, 400, "invalid tag name")
		return
	}
	if tag == "" {
		tag = "current"
	}

	err := a.depotService.Apply(
		ctx.Context(),
		&depotServicePort.ApplyData{
			Uri:      uri,
			Tag:      tag,
			Revision: revision,
		},
	)
	if err != nil {
		a.writeServiceError(ctx, err)
		return
	}
	ctx.WriteResponse(200, nil)
}

// @Summary Delete a revision or tag, or purge a resource
// @Tags depot
// @Produce plain
// @Param path path string true "Repository resource path"
// @Param revision query string true "Revision number, tag name, or all"
// @Success 200
// @Failure 403 {string} string "Revision to delete not specified"
// @Failure 404 {string} string "Path not found"
// @Router /depot/{path} [delete]
func (a *adapter) Delete(ctx server.ReqCtx) {
	uri, ok := a.cleanUri(ctx)
	if !ok {
		return
	}
	uri, isAll := stripAll(uri)
	if isAll {
		writeError(ctx, 500, "Invalid URI")
		return
	}

	revision := string(ctx.Request().URI().QueryArgs().Peek("revision"))
	if revision == "" {
		writeError(ctx, 403, "Revision to delete not specified")
		return
	}

	err := a.depotService.Delete(
		ctx.Context(),
		&depotServicePort.DeleteData{
			Uri:      uri,
			Revision: revision,
		},
	)
	if err != nil {
		a.writeServiceError(ctx, err)
		return
	}
	ctx.WriteResponse(200, nil)
}

func (a *adapter) repositories(ctx server.ReqCtx) {
	ctx.WriteResponse(200, dto.RepositoriesResponse{
		Host:         a.host,
		Timestamp:    time.Now().Unix(),
		Proxy:        a.proxy,
		Repositories: a.depotService.Repositories(ctx.Context()),
	})
}

func (a *adapter) check(ctx server.ReqCtx) {
	ctx.WriteResponse(200, dto.CheckResponse{
		Host:      a.host,
		Timestamp: time.Now().Unix(),
		Proxy:     a.proxy,
		Updated:   a.depotService.Updated(ctx.Context()),
	})
}

func (a *adapter) list(ctx server.ReqCtx, uri string) {
	result, err := a.depotService.List(
		ctx.Context(),
		&depotServicePort.ListData{Uri: uri},
	)
	if err != nil {
		a.writeServiceError(ctx, err)
		return
	}
	files := make([]dto.ResourceResponse, len(*result))
	for i, resource := range *result {
		files[i] = dto.ResourceResponse{
			Name: resource.Name,
			Rev:  strconv.Itoa(resource.Revision),
			Time: resource.Time,
		}
	}
	ctx.WriteResponse(200, dto.ListResponse{
		Host:      a.host,
		Timestamp: time.Now().Unix(),
		Proxy:     a.proxy,
		Files:     files,
	})
}

func (a *adapter) history(ctx server.ReqCtx, uri string) {
	result, err := a.depotService.History(
		ctx.Context(),
		&depotServicePort.HistoryData{Uri: uri},
	)
	if err != nil {
		a.writeServiceError(ctx, err)
		return
	}
	tags := make([]dto.TagResponse, len(result.Tags))
	for i, tag := range result.Tags {
		tags[i] = dto.TagResponse(tag)
	}
	history := make([]dto.RevisionResponse, len(result.Revisions))
	for i, revision := range result.Revisions {
		history[i] = dto.RevisionResponse{
			Rev:  revision.Revision,
			Time: revision.Time,
		}
	}
	ctx.WriteResponse(200, dto.HistoryResponse{
		Host:      a.host,
		Timestamp: time.Now().Unix(),
		Proxy:     a.proxy,
		File:      uri,
		Tags:      tags,
		History:   history,
	})
}

// cleanUri rejects any URI embedding a traversal sequence before anything
// touches the filesystem.
func (a *adapter) cleanUri(ctx server.ReqCtx) (string, bool) {
	uri := string(ctx.Request().URI().Path())
	if strings.Contains(uri, "../") {
		writeError(ctx, 406, "Not Acceptable")
		return "", false
	}
	return uri, true
}

// stripAll detects and removes a literal trailing "all" URL segment.
func stripAll(uri string) (string, bool) {
	if strings.HasSuffix(uri, "/all") {
		return strings.TrimSuffix(uri, "/all"), true
	}
	return uri, false
}

func (a *adapter) writeServiceError(ctx server.ReqCtx, err error) {
	switch err {
	case depotServicePort.ErrPathNotFound:
		writeError(ctx, 404, "Path not found")
	case depotServicePort.ErrNotFound:
		writeError(ctx, 404, "Not found")
	default:
		writeError(ctx, 500, err.Error())
	}
}

func writeError(ctx server.ReqCtx, status int, reason string) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("text/plain")
	ctx.WriteString(reason)
}
