// Package runtime stores the hand-written assembly fragments of the standard
// runtime library.  Each routine lives in lib/<name>.s and is emitted
// verbatim into the text section after its STRING["..."] placeholders have
// been resolved against the constant pool.
package runtime

import (
	"embed"
	"strings"

	"github.com/pkg/errors"
)

//go:embed lib
var libFS embed.FS

// Source returns the assembly source of the runtime routine named name
// (e.g. "alloc", "heap.init", "object.__init__").  The returned text has no
// trailing newline.
func Source(name string) (string, error) {
	data, err := libFS.ReadFile("lib/" + name + ".s")
	if err != nil {
		return "", errors.Wrapf(err, "no runtime library source for %s", name)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// Names returns the routine names available in the embedded library.
func Names() []string {
	entries, err := libFS.ReadDir("lib")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".s"))
	}
	return names
}
