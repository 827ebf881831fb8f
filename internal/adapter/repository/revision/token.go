package adapter

import (
	"errors"
	"strconv"
	"strings"
)

// frm separates a resource basename from its revision or tag suffix. It is
// forbidden inside resource basenames to keep the naming scheme unambiguous.
const frm = "~"

const (
	tagCurrent = "current"
	tagLatest  = "latest"
	tagAll     = "all"
)

// isValidToken reports whether s is a legal revision or tag token:
// non-empty, every byte alphanumeric or one of '.', '_', '-'.
func isValidToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// splitDirBase splits path at the last '/'. A path without '/' lives in ".".
func splitDirBase(path string) (string, string) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return ".", path
	}
	return path[:i], path[i+1:]
}

// suffixed appends a revision or tag suffix to a resource filename.
func suffixed(filename, token string) string {
	return filename + frm + token
}

// suffix returns the token after the last frm separator, or "".
func suffix(name string) string {
	if i := strings.LastIndex(name, frm); i >= 0 {
		return name[i+1:]
	}
	return ""
}

// revisionNumber parses the numeric suffix of a revision file path.
func revisionNumber(path string) (int, error) {
	i := strings.LastIndex(path, frm)
	if i < 0 {
		return 0, errRevisionDatabase
	}
	n, err := strconv.Atoi(path[i+1:])
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errRevisionNumber
		}
		return 0, errRevisionDatabase
	}
	return n, nil
}
