package git

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/verbump/pkg/domain/interfaces"
	"github.com/m-mizutani/verbump/pkg/domain/model"
	"github.com/m-mizutani/verbump/pkg/domain/types"
)

// Client is the go-git backed repository. One Client is held for the
// whole run.
type Client struct {
	repo *git.Repository
}

var (
	_ interfaces.GitRepository = (*Client)(nil)
	_ interfaces.GitCommitter  = (*Client)(nil)
)

// Open opens the repository containing path, searching parent directories
// for the .git directory.
func Open(path string) (*Client, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open git repository",
			goerr.V("path", path),
			goerr.T(types.ErrTagHistoryAccess),
		)
	}
	return New(repo), nil
}

// New wraps an already opened repository
func New(repo *git.Repository) *Client {
	return &Client{repo: repo}
}

// Root returns the worktree root directory
func (c *Client) Root() (string, error) {
	wt, err := c.repo.Worktree()
	if err != nil {
		return "", goerr.Wrap(err, "failed to open worktree")
	}
	return wt.Filesystem.Root(), nil
}

// TagRefs lists every tag. Annotated tags are peeled one level to the
// commit they point at; tags of anything other than a commit are skipped.
func (c *Client) TagRefs(ctx context.Context) ([]*model.TagRef, error) {
	logger := ctxlog.From(ctx)

	iter, err := c.repo.Tags()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tags", goerr.T(types.ErrTagHistoryAccess))
	}
	defer iter.Close()

	var refs []*model.TagRef
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()

		obj, err := c.repo.Object(plumbing.AnyObject, ref.Hash())
		if err != nil {
			return goerr.Wrap(err, "failed to read tag target",
				goerr.V("tag", name),
				goerr.V("hash", ref.Hash().String()),
			)
		}

		var target plumbing.Hash
		switch o := obj.(type) {
		case *object.Commit:
			target = o.Hash
		case *object.Tag:
			commit, err := o.Commit()
			if errors.Is(err, object.ErrUnsupportedObject) {
				logger.Warn("Skipping annotated tag that does not point at a commit",
					"tag", name,
					"target_type", o.TargetType.String(),
				)
				return nil
			}
			if err != nil {
				return goerr.Wrap(err, "failed to peel annotated tag", goerr.V("tag", name))
			}
			target = commit.Hash
		default:
			logger.Warn("Skipping tag that does not point at a commit",
				"tag", name,
				"target_type", obj.Type().String(),
			)
			return nil
		}

		refs = append(refs, &model.TagRef{
			Name:   name,
			Commit: model.CommitID(target.String()),
		})
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve tags", goerr.T(types.ErrTagHistoryAccess))
	}

	return refs, nil
}

// Head returns the commit HEAD points at
func (c *Client) Head(ctx context.Context) (model.CommitID, error) {
	ref, err := c.repo.Head()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve HEAD", goerr.T(types.ErrTagHistoryAccess))
	}
	return model.CommitID(ref.Hash().String()), nil
}

// LookupCommit reads a commit object
func (c *Client) LookupCommit(ctx context.Context, id model.CommitID) (*model.Commit, error) {
	commit, err := c.repo.CommitObject(plumbing.NewHash(string(id)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read commit",
			goerr.V("commit", id),
			goerr.T(types.ErrTagHistoryAccess),
		)
	}

	parents := make([]model.CommitID, 0, len(commit.ParentHashes))
	for _, p := range commit.ParentHashes {
		parents = append(parents, model.CommitID(p.String()))
	}

	return &model.Commit{
		ID:      model.CommitID(commit.Hash.String()),
		Message: commit.Message,
		Parents: parents,
		When:    commit.Committer.When,
	}, nil
}

// CommitFiles stages paths (relative to the worktree root) and commits them
// on the current branch.
func (c *Client) CommitFiles(ctx context.Context, paths []string, message string, author *model.Signature) (model.CommitID, error) {
	wt, err := c.repo.Worktree()
	if err != nil {
		return "", goerr.Wrap(err, "failed to open worktree")
	}

	for _, p := range paths {
		if _, err := wt.Add(filepath.ToSlash(p)); err != nil {
			return "", goerr.Wrap(err, "failed to stage file", goerr.V("path", p))
		}
	}

	hash, err := wt.Commit(message, &git.CommitOptions{Author: toSignature(author)})
	if err != nil {
		return "", goerr.Wrap(err, "failed to commit", goerr.V("message", message))
	}

	ctxlog.From(ctx).Debug("Committed files", "commit", hash.String(), "files", len(paths))
	return model.CommitID(hash.String()), nil
}

// CreateTag creates an annotated tag
func (c *Client) CreateTag(ctx context.Context, name string, commit model.CommitID, message string, tagger *model.Signature) error {
	_, err := c.repo.CreateTag(name, plumbing.NewHash(string(commit)), &git.CreateTagOptions{
		Tagger:  toSignature(tagger),
		Message: message,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create tag",
			goerr.V("tag", name),
			goerr.V("commit", commit),
		)
	}

	ctxlog.From(ctx).Debug("Created tag", "tag", name, "commit", commit)
	return nil
}

// toSignature returns nil for an empty identity so go-git falls back to
// the repository configuration.
func toSignature(sig *model.Signature) *object.Signature {
	if sig == nil || sig.Name == "" || sig.Email == "" {
		return nil
	}
	when := sig.When
	if when.IsZero() {
		when = time.Now()
	}
	return &object.Signature{Name: sig.Name, Email: sig.Email, When: when}
}
