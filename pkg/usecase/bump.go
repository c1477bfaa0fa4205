package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/verbump/pkg/domain/interfaces"
	"github.com/m-mizutani/verbump/pkg/domain/model"
	"github.com/m-mizutani/verbump/pkg/domain/types"
)

type bumpUseCase struct {
	repo      interfaces.GitRepository
	tagPolicy TagPolicy
}

// BumpOption configures the bump use case
type BumpOption func(*bumpUseCase)

// WithTagPolicy sets how malformed tag names are handled
func WithTagPolicy(policy TagPolicy) BumpOption {
	return func(uc *bumpUseCase) {
		uc.tagPolicy = policy
	}
}

// NewBump creates a new instance of BumpUseCase
func NewBump(repo interfaces.GitRepository, opts ...BumpOption) interfaces.BumpUseCase {
	uc := &bumpUseCase{
		repo:      repo,
		tagPolicy: TagPolicyStrict,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Plan resolves the version tags and computes the next version from the
// commits made since the last one.
func (uc *bumpUseCase) Plan(ctx context.Context) (*model.Plan, error) {
	logger := ctxlog.From(ctx)

	refs, err := uc.repo.TagRefs(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tags", goerr.T(types.ErrTagHistoryAccess))
	}

	tags, err := ResolveTags(ctx, refs, uc.tagPolicy)
	if err != nil {
		return nil, err
	}

	head, err := uc.repo.Head(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve HEAD", goerr.T(types.ErrTagHistoryAccess))
	}

	plan := &model.Plan{
		Tags: tags,
		Head: head,
		Bump: model.BumpNone,
	}

	last := tags.Last()
	if last == nil {
		logger.Warn("No version tag found, cannot compute a next version")
		return plan, nil
	}

	commits, err := CollectWalk(Walk(ctx, uc.repo, head, &last.Commit))
	if err != nil {
		return nil, err
	}
	plan.Walked = len(commits)
	plan.Bump = Aggregate(ctx, commits)

	if next, ok := last.Version.Next(plan.Bump); ok {
		plan.Next = &next
	} else if plan.Bump != model.BumpNone {
		logger.Warn("Version field is at its maximum, no next version",
			"last", last.Version.String(),
			"bump", plan.Bump.String(),
		)
	}

	logger.Info("Computed next version",
		"last", last.Version.String(),
		"walked", plan.Walked,
		"bump", plan.Bump.String(),
		"next", nextString(plan.Next),
	)

	return plan, nil
}

// Releases assembles the release list for the plan
func (uc *bumpUseCase) Releases(ctx context.Context, plan *model.Plan, onlyUnreleased bool) (model.Releases, error) {
	return AssembleReleases(ctx, uc.repo, plan.Tags, plan.Next, plan.Head, onlyUnreleased)
}

func nextString(v *model.Version) string {
	if v == nil {
		return "(none)"
	}
	return v.String()
}
