package entity

import (
	"time"
)

type Repository struct {
	Uri     string
	Root    string
	Depth   int
	Created time.Time
}
