package dto

import "encoding/json"

// TagResponse marshals as the two-element array ["<name>", <rev>] the
// history document carries for each tag.
type TagResponse struct {
	Name     string
	Revision int
}

func (t TagResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{t.Name, t.Revision})
}

type RevisionResponse struct {
	Rev  int   `json:"rev"`
	Time int64 `json:"time"`
}

type HistoryResponse struct {
	Host      string             `json:"host"`
	Timestamp int64              `json:"timestamp"`
	Proxy     string             `json:"proxy,omitempty"`
	File      string             `json:"file"`
	Tags      []TagResponse      `json:"tags"`
	History   []RevisionResponse `json:"history"`
}

type ResourceResponse struct {
	Name string `json:"name"`
	Rev  string `json:"rev"`
	Time int64  `json:"time"`
}

type ListResponse struct {
	Host      string             `json:"host"`
	Timestamp int64              `json:"timestamp"`
	Proxy     string             `json:"proxy,omitempty"`
	Files     []ResourceResponse `json:"files"`
}

type RepositoriesResponse struct {
	Host         string   `json:"host"`
	Timestamp    int64    `json:"timestamp"`
	Proxy        string   `json:"proxy,omitempty"`
	Repositories []string `json:"repositories"`
}

type CheckResponse struct {
	Host      string `json:"host"`
	Timestamp int64  `json:"timestamp"`
	Proxy     string `json:"proxy,omitempty"`
	Updated   int64  `json:"updated"`
}
