package model

// Bump is the version increment a commit asks for. Values are ordered by
// severity so the strongest signal of a set is simply the maximum.
type Bump int

const (
	BumpNone Bump = iota
	BumpPatch
	BumpMinor
	BumpMajor
)

func (b Bump) String() string {
	switch b {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	default:
		return "none"
	}
}

// Max returns the more severe of the two signals
func (b Bump) Max(other Bump) Bump {
	if other > b {
		return other
	}
	return b
}
