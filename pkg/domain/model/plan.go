package model

import "time"

// Plan is the outcome of the version computation for one run
type Plan struct {
	Tags Tags
	Head CommitID

	// Walked is the number of commits since the last tag
	Walked int
	Bump   Bump

	// Next is nil when no commit since the last tag asks for a release
	Next *Version
}

// LastTag returns the currently released tag, or nil
func (x *Plan) LastTag() *Tag {
	return x.Tags.Last()
}

// Signature identifies the author of a release commit or tag
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// ChangelogData is handed to the changelog renderer
type ChangelogData struct {
	Releases    Releases
	Version     Version
	BuildNumber uint64
}
