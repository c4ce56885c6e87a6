package sqlite

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const dsnScheme = "sqlite://"

// parseDSN turns sqlite://<path>[?query] into the path form the driver
// expects. Relative paths are anchored at the working directory.
func parseDSN(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, dsnScheme) {
		return "", fmt.Errorf("invalid sqlite DSN scheme, expected %s", dsnScheme)
	}

	rest := strings.TrimPrefix(dsn, dsnScheme)
	if rest == "" {
		return "", fmt.Errorf("sqlite DSN has no path")
	}
	if rest == ":memory:" || strings.HasPrefix(rest, ":memory:?") {
		return rest, nil
	}

	path, query, hasQuery := strings.Cut(rest, "?")
	unescaped, err := url.PathUnescape(path)
	if err != nil {
		return "", fmt.Errorf("unescaping path: %w", err)
	}
	path = unescaped

	if !filepath.IsAbs(path) && !strings.HasPrefix(path, "./") {
		path = "./" + path
	}
	if hasQuery {
		return path + "?" + query, nil
	}
	return path, nil
}

func isMemory(driverDSN string) bool {
	return strings.HasPrefix(driverDSN, ":memory:")
}

// connParams are applied by the driver to every connection it opens, so
// each pooled connection waits on locks and enforces foreign keys.
var connParams = []string{
	"_pragma=busy_timeout(30000)",
	"_pragma=foreign_keys(1)",
}

// fileParams only apply to on-disk databases. Transactions take the write
// lock at BEGIN.
var fileParams = []string{
	"_pragma=journal_mode(WAL)",
	"_txlock=immediate",
}

func withConnParams(driverDSN string) string {
	params := append([]string(nil), connParams...)
	if !isMemory(driverDSN) {
		params = append(params, fileParams...)
	}
	sep := "?"
	if strings.Contains(driverDSN, "?") {
		sep = "&"
	}
	return driverDSN + sep + strings.Join(params, "&")
}
