package adapter

import (
	"os"
	"path/filepath"
)

// writeLink replaces any existing link at linkname with a symbolic reference
// to the basename of target. Storing only the basename keeps every reference
// relative to the link's own directory, so a repository can be moved or
// mounted elsewhere without breaking its tags.
func writeLink(target, linkname string) error {
	if err := os.Remove(linkname); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Symlink(filepath.Base(target), linkname)
}

// readLink returns the absolute target of linkname. Relative stored targets
// resolve against the link's directory; absolute stored targets are legacy
// and returned as-is (they are rewritten by the startup repair pass).
func readLink(linkname string) (string, error) {
	target, err := os.Readlink(linkname)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(target) {
		return target, nil
	}
	return filepath.Join(filepath.Dir(linkname), target), nil
}
