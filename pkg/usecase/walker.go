package usecase

import (
	"context"
	"iter"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/verbump/pkg/domain/interfaces"
	"github.com/m-mizutani/verbump/pkg/domain/model"
	"github.com/m-mizutani/verbump/pkg/domain/types"
)

// Walk returns the first-parent history from start, newest first. When
// boundary is given, the boundary commit and everything reachable from it
// are left out. Each call returns a new, independent sequence; commits are
// read only while the sequence is consumed.
func Walk(ctx context.Context, repo interfaces.GitRepository, start model.CommitID, boundary *model.CommitID) iter.Seq2[*model.Commit, error] {
	return func(yield func(*model.Commit, error) bool) {
		var hidden map[model.CommitID]struct{}
		if boundary != nil {
			reachable, err := reachableFrom(ctx, repo, *boundary)
			if err != nil {
				yield(nil, err)
				return
			}
			hidden = reachable
		}

		id := start
		for {
			if _, ok := hidden[id]; ok {
				return
			}

			commit, err := lookupCommit(ctx, repo, id)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(commit, nil) {
				return
			}

			parent, ok := commit.FirstParent()
			if !ok {
				return
			}
			id = parent
		}
	}
}

// CollectWalk drains a walk into a slice, newest first
func CollectWalk(seq iter.Seq2[*model.Commit, error]) ([]*model.Commit, error) {
	var commits []*model.Commit
	for commit, err := range seq {
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

// reachableFrom returns the ids of root and all of its ancestors, following
// every parent.
func reachableFrom(ctx context.Context, repo interfaces.GitRepository, root model.CommitID) (map[model.CommitID]struct{}, error) {
	seen := map[model.CommitID]struct{}{}
	stack := []model.CommitID{root}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		commit, err := lookupCommit(ctx, repo, id)
		if err != nil {
			return nil, err
		}
		for _, p := range commit.Parents {
			if _, ok := seen[p]; !ok {
				stack = append(stack, p)
			}
		}
	}

	return seen, nil
}

func lookupCommit(ctx context.Context, repo interfaces.GitRepository, id model.CommitID) (*model.Commit, error) {
	commit, err := repo.LookupCommit(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read commit",
			goerr.V("commit", id),
			goerr.T(types.ErrTagHistoryAccess),
		)
	}
	return commit, nil
}
