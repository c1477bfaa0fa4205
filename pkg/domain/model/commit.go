package model

import (
	"strings"
	"time"
)

// CommitID is the hex object name of a commit
type CommitID string

// Short returns the abbreviated (7 chars) commit id
func (id CommitID) Short() string {
	if len(id) > 7 {
		return string(id[:7])
	}
	return string(id)
}

// Commit is a read-only view of a version-control commit
type Commit struct {
	ID      CommitID
	Message string
	Parents []CommitID // first element is the first parent
	When    time.Time  // committer time
}

// Subject returns the first line of the commit message
func (c *Commit) Subject() string {
	subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return strings.TrimSpace(subject)
}

// FirstParent returns the first parent, or false for a root commit
func (c *Commit) FirstParent() (CommitID, bool) {
	if len(c.Parents) == 0 {
		return "", false
	}
	return c.Parents[0], true
}

// ConventionalCommit is the parsed form of a Conventional Commits message
type ConventionalCommit struct {
	Type        string
	Scope       string
	Description string
	Body        string
	Breaking    bool
}
