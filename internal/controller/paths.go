package controller

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandPaths resolves upload arguments to file paths. Arguments with glob
// syntax (including **) are expanded; plain paths pass through unchanged so
// a missing file is reported by the upload itself. Order follows the
// arguments, then match order within a pattern.
func ExpandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
