package model

import "time"

// NoPrevious is the Previous index of a release without a predecessor
const NoPrevious = -1

// Release is everything released at Version: the commits reachable from
// Start on the first-parent line, excluding anything reachable from the
// Boundary tag's commit. The oldest release has no Boundary.
type Release struct {
	Version   Version
	Start     CommitID
	Boundary  *Tag
	Commits   []*Commit // oldest first
	Timestamp time.Time // commit time of Start

	// Previous is the index in the owning Releases of the release right
	// before this one, or NoPrevious.
	Previous int
}

// Releases owns every Release of a run, newest first. Releases refer to
// each other by index only.
type Releases []*Release

// PreviousOf returns the release linked as previous of releases[i], or nil
func (x Releases) PreviousOf(i int) *Release {
	if i < 0 || i >= len(x) {
		return nil
	}
	prev := x[i].Previous
	if prev < 0 || prev >= len(x) {
		return nil
	}
	return x[prev]
}
