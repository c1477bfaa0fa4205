package model

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/verbump/pkg/domain/types"
	"golang.org/x/mod/semver"
)

// Version is a released or computed MAJOR.MINOR.PATCH triple
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// ParseVersion parses a tag name of the exact form vMAJOR.MINOR.PATCH.
// Pre-release and build metadata suffixes are rejected.
func ParseVersion(name string) (Version, error) {
	if semver.Canonical(name) != name || semver.Prerelease(name) != "" {
		return Version{}, goerr.New("tag is not in vMAJOR.MINOR.PATCH form",
			goerr.V("tag", name),
			goerr.T(types.ErrTagInvalidTagFormat),
		)
	}

	parts := strings.Split(strings.TrimPrefix(name, "v"), ".")
	if len(parts) != 3 {
		return Version{}, goerr.New("tag is not in vMAJOR.MINOR.PATCH form",
			goerr.V("tag", name),
			goerr.T(types.ErrTagInvalidTagFormat),
		)
	}

	var nums [3]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, goerr.Wrap(err, "tag has an invalid version number",
				goerr.V("tag", name),
				goerr.V("part", p),
				goerr.T(types.ErrTagInvalidTagFormat),
			)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the tag form, e.g. "v1.2.3"
func (v Version) String() string {
	return "v" + v.Number()
}

// Number returns the version without the "v" prefix, e.g. "1.2.3"
func (v Version) Number() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or +1 comparing the triples lexicographically
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmp.Compare(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmp.Compare(v.Minor, other.Minor)
	default:
		return cmp.Compare(v.Patch, other.Patch)
	}
}

// Less reports whether v sorts before other
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Next applies the bump with the standard reset rule: bumping a field
// zeroes every lower field. BumpNone yields no version, and so does a
// bump whose field is already at its maximum.
func (v Version) Next(bump Bump) (Version, bool) {
	switch bump {
	case BumpMajor:
		if v.Major == math.MaxUint64 {
			return Version{}, false
		}
		return Version{Major: v.Major + 1}, true
	case BumpMinor:
		if v.Minor == math.MaxUint64 {
			return Version{}, false
		}
		return Version{Major: v.Major, Minor: v.Minor + 1}, true
	case BumpPatch:
		if v.Patch == math.MaxUint64 {
			return Version{}, false
		}
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, true
	default:
		return Version{}, false
	}
}
