package varname

import (
	"strconv"
	"strings"
)

// Latest is the version sentinel meaning "highest available version".
const Latest = "latest"

// LatestSuffix is the trailing qualifier segment for Latest, dot included.
const LatestSuffix = "." + Latest

// Qualifier is the trailing version segment of a name: a non-negative
// integer, [Latest], or empty when the name is bare.
type Qualifier string

// Number returns the integer version and true, or 0 and false for latest or
// empty qualifiers.
func (q Qualifier) Number() (int, bool) {
	if !isDigits(string(q)) {
		return 0, false
	}
	n, err := strconv.Atoi(string(q))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Split separates name into its base and version qualifier. When the last
// dot-segment is not a qualifier, base is name unchanged and q is empty.
func Split(name string) (base string, q Qualifier) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		if isQualifier(name) {
			return "", Qualifier(name)
		}
		return name, ""
	}
	last := name[i+1:]
	if !isQualifier(last) {
		return name, ""
	}
	return name[:i], Qualifier(last)
}

// Base returns name with its version qualifier removed.
func Base(name string) string {
	base, _ := Split(name)
	return base
}

// IsLatest reports whether name ends with the ".latest" qualifier.
func IsLatest(name string) bool {
	return strings.HasSuffix(name, LatestSuffix)
}

// TrimLatest removes a trailing ".latest" qualifier, if any.
func TrimLatest(name string) string {
	return strings.TrimSuffix(name, LatestSuffix)
}

// Parent returns name with its last dot-segment dropped, whatever that
// segment is. ok is false when name has no dot.
func Parent(name string) (parent string, ok bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", false
	}
	return name[:i], true
}

// Version parses the segment following base+"." in id as a non-negative
// integer. It fails when id does not start with base+"." or the remainder is
// not all digits.
func Version(id, base string) (int, bool) {
	rest, ok := strings.CutPrefix(id, base+".")
	if !ok {
		return 0, false
	}
	return Qualifier(rest).Number()
}

// Satisfies reports whether the installed identifier fulfils dep: either the
// two are equal, or dep is ".latest"-qualified and installed starts with
// dep's base. The prefix test has no trailing dot, so "Alice.Hair" also
// satisfies "Alice.Hair.latest".
func Satisfies(installed, dep string) bool {
	if installed == dep {
		return true
	}
	return IsLatest(dep) && strings.HasPrefix(installed, TrimLatest(dep))
}

// Referenced reports whether id appears among names either verbatim or as
// its ".latest" variation.
func Referenced(id string, names func(string) bool) bool {
	return names(id) || names(Base(id)+LatestSuffix)
}

func isQualifier(s string) bool {
	return s == Latest || isDigits(s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
