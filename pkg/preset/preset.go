// Package preset extracts var references from preset files.
//
// Presets (.vap) are JSON-ish text files that point at content inside other
// packages with quoted paths such as "Alice.Hair.3:/Custom/Hair/x.vam". The
// scanner treats the file as plain text: everything before the first ":/"
// inside a quoted string is a dependency reference.
package preset

import (
	"io"
	"path"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/errors"
)

// Ext is the preset file extension.
const Ext = ".vap"

// CustomDir is the conventional root segment of preset paths.
const CustomDir = "Custom"

var referenceRe = regexp.MustCompile(`"([^"]+?):/[^"]*"`)

// Scan returns the distinct references in r, sorted. Content that is not
// valid UTF-8 is rejected as MALFORMED.
func Scan(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read preset")
	}
	if !utf8.Valid(data) {
		return nil, errors.New(errors.ErrCodeMalformed, "preset is not valid UTF-8")
	}
	return References(string(data)), nil
}

// References returns the distinct references in text, sorted.
func References(text string) []string {
	matches := referenceRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	slices.Sort(refs)
	return slices.Compact(refs)
}

// DisplayName names a preset by its slash-separated path below the first
// "Custom" segment. When p has no such segment, or "Custom" is its last
// segment, the bare file name is used.
func DisplayName(p string) string {
	parts := strings.Split(path.Clean(strings.ReplaceAll(p, `\`, "/")), "/")
	for i, part := range parts {
		if part != CustomDir {
			continue
		}
		if i < len(parts)-1 {
			return strings.Join(parts[i+1:], "/")
		}
		break
	}
	return parts[len(parts)-1]
}
