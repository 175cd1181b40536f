/*
	Package naming resolves the slice index of a raw volume to the path of the file
	holding it.  A volume is named by exactly one Strategy: a single file, a numbered
	series built from a prefix and printf-style pattern, or an explicit list of paths.
	Because a configuration holds a single Strategy value, setting one strategy
	replaces any other.
*/
package naming

import (
	"fmt"
	"strings"

	"github.com/janelia-flyem/rawvol/rawvol"
)

// DefaultPattern is the pattern used by a PatternSeries without an explicit pattern,
// e.g. prefix "image" gives image.0, image.1, ...
const DefaultPattern = "%s.%d"

// Numbering maps a slice index to the number used when formatting a PatternSeries:
// number = index * Spacing + Offset.
type Numbering struct {
	Offset  int32
	Spacing int32
}

// DefaultNumbering numbers slices by their index.
var DefaultNumbering = Numbering{Offset: 0, Spacing: 1}

// Number returns the file number for a slice index.
func (n Numbering) Number(slice int32) int32 {
	return slice*n.Spacing + n.Offset
}

// Strategy is one of SingleFile, PatternSeries, or ExplicitList.
type Strategy interface {
	// Resolve returns the path of the file holding the given slice.
	Resolve(slice int32, num Numbering) (string, error)

	String() string

	isStrategy()
}

// SingleFile names a volume held in one file regardless of slice.
type SingleFile string

func (f SingleFile) Resolve(slice int32, num Numbering) (string, error) {
	return string(f), nil
}

func (f SingleFile) String() string {
	return fmt.Sprintf("file %q", string(f))
}

func (SingleFile) isStrategy() {}

// PatternSeries names each slice by formatting Pattern with the Prefix and the slice
// number, e.g. "%s.%03d" gives image.001, image.002, ...  A Pattern without a %s
// placeholder is formatted with the slice number alone.
type PatternSeries struct {
	Prefix  string
	Pattern string
}

func (ps PatternSeries) pattern() string {
	if ps.Pattern == "" {
		return DefaultPattern
	}
	return ps.Pattern
}

// HasPrefixPlaceholder returns true if the pattern takes a prefix argument.
func (ps PatternSeries) HasPrefixPlaceholder() bool {
	return strings.Contains(ps.pattern(), "%s")
}

func (ps PatternSeries) Resolve(slice int32, num Numbering) (string, error) {
	n := num.Number(slice)
	if ps.HasPrefixPlaceholder() {
		return fmt.Sprintf(ps.pattern(), ps.Prefix, n), nil
	}
	if ps.Prefix != "" {
		rawvol.Debugf("Ignoring prefix %q since pattern %q has no %%s\n", ps.Prefix, ps.Pattern)
	}
	return fmt.Sprintf(ps.pattern(), n), nil
}

func (ps PatternSeries) String() string {
	return fmt.Sprintf("prefix %q pattern %q", ps.Prefix, ps.pattern())
}

func (PatternSeries) isStrategy() {}

// ExplicitList names slice i by the ith path.
type ExplicitList []string

func (l ExplicitList) Resolve(slice int32, num Numbering) (string, error) {
	if slice < 0 || int(slice) >= len(l) {
		return "", fmt.Errorf("%w: slice %d, %d files", rawvol.ErrIndexOutOfRange, slice, len(l))
	}
	return l[slice], nil
}

func (l ExplicitList) String() string {
	return fmt.Sprintf("%d file names", len(l))
}

func (ExplicitList) isStrategy() {}

// Resolve returns the path for a slice using the given strategy, failing with
// rawvol.ErrNoIdentitySpecified if there is no strategy.
func Resolve(s Strategy, slice int32, num Numbering) (string, error) {
	if s == nil {
		return "", rawvol.ErrNoIdentitySpecified
	}
	return s.Resolve(slice, num)
}

// New returns the strategy named by loose settings where at most one of a file name,
// a prefix and/or pattern, or a list of files may be given.
func New(file, prefix, pattern string, files []string) (Strategy, error) {
	var strategies []Strategy
	if file != "" {
		strategies = append(strategies, SingleFile(file))
	}
	if prefix != "" || pattern != "" {
		ps := PatternSeries{Prefix: prefix, Pattern: pattern}
		if prefix != "" && !ps.HasPrefixPlaceholder() {
			return nil, fmt.Errorf("prefix %q given but pattern %q has no %%s for it", prefix, pattern)
		}
		strategies = append(strategies, ps)
	}
	if len(files) != 0 {
		strategies = append(strategies, ExplicitList(append([]string(nil), files...)))
	}
	switch len(strategies) {
	case 0:
		return nil, rawvol.ErrNoIdentitySpecified
	case 1:
		return strategies[0], nil
	default:
		names := make([]string, len(strategies))
		for i, s := range strategies {
			names[i] = s.String()
		}
		return nil, fmt.Errorf("only one of a file, a prefix/pattern, or a file list may be given: got %s",
			strings.Join(names, ", "))
	}
}
