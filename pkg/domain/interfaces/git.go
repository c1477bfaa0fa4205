package interfaces

import (
	"context"

	"github.com/m-mizutani/verbump/pkg/domain/model"
)

// GitRepository is the read side of the version-control backend
type GitRepository interface {
	// TagRefs returns every tag reference, annotated tags peeled to their commit
	TagRefs(ctx context.Context) ([]*model.TagRef, error)

	// Head returns the commit the current HEAD points at
	Head(ctx context.Context) (model.CommitID, error)

	// LookupCommit returns the commit with the given id
	LookupCommit(ctx context.Context, id model.CommitID) (*model.Commit, error)
}

// GitCommitter creates the release commit and tag
type GitCommitter interface {
	// CommitFiles stages the given worktree-relative paths and commits them
	CommitFiles(ctx context.Context, paths []string, message string, author *model.Signature) (model.CommitID, error)

	// CreateTag creates an annotated tag pointing at the commit
	CreateTag(ctx context.Context, name string, commit model.CommitID, message string, tagger *model.Signature) error
}
