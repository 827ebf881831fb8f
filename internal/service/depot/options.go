package service

import (
	"os"
	"strconv"
	"strings"
)

// readOptions reads the prune depth from <root>/.options. The file holds one
// option per line; only "depth <N>" is recognized and extra tokens on the
// line are ignored. A missing or unparsable file means no prune policy.
func readOptions(root string) int {
	content, err := os.ReadFile(root + "/.options")
	if err != nil {
		return 0
	}
	for _, line := range strings.Split(string(content), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != "depth" {
			continue
		}
		if n, err := strconv.Atoi(fields[1]); err == nil {
			return n
		}
	}
	return 0
}

// visibility filters the top-level sub-directory names a repository listing
// includes. Either a whitelist (only listed names show) or a blacklist
// (listed names hide). A nil filter shows everything.
type visibility struct {
	allow bool
	names []string
}

func newVisibility(whitelist, blacklist string) *visibility {
	if whitelist != "" {
		return &visibility{allow: true, names: splitCsv(whitelist)}
	}
	if blacklist != "" {
		return &visibility{allow: false, names: splitCsv(blacklist)}
	}
	return nil
}

func (v *visibility) visible(name string) bool {
	if v == nil {
		return true
	}
	for _, n := range v.names {
		matched := false
		if strings.HasSuffix(n, ".") {
			matched = strings.HasPrefix(name, strings.TrimSuffix(n, "."))
		} else {
			matched = name == n
		}
		if matched {
			return v.allow
		}
	}
	return !v.allow
}

func splitCsv(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
