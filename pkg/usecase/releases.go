package usecase

import (
	"context"
	"slices"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/verbump/pkg/domain/interfaces"
	"github.com/m-mizutani/verbump/pkg/domain/model"
)

// AssembleReleases builds one release per tag, plus a pending release for
// next anchored at head when next is not nil. The result is newest first
// and every release links the one preceding it through Previous.
//
// With onlyUnreleased, exactly one release (head, last tag) is built for
// next, or none when next is nil.
func AssembleReleases(
	ctx context.Context,
	repo interfaces.GitRepository,
	tags model.Tags,
	next *model.Version,
	head model.CommitID,
	onlyUnreleased bool,
) (model.Releases, error) {
	logger := ctxlog.From(ctx)

	if onlyUnreleased {
		if next == nil {
			return model.Releases{}, nil
		}
		release, err := buildRelease(ctx, repo, *next, head, tags.Last())
		if err != nil {
			return nil, err
		}
		release.Previous = model.NoPrevious
		return model.Releases{release}, nil
	}

	points := slices.Clone(tags)
	if next != nil {
		points = append(points, &model.Tag{
			Name:    next.String(),
			Version: *next,
			Commit:  head,
		})
	}
	slices.SortStableFunc(points, func(a, b *model.Tag) int {
		return b.Version.Compare(a.Version)
	})

	releases := make(model.Releases, 0, len(points))
	for i, point := range points {
		var boundary *model.Tag
		if i+1 < len(points) {
			boundary = points[i+1]
		}

		release, err := buildRelease(ctx, repo, point.Version, point.Commit, boundary)
		if err != nil {
			return nil, err
		}
		releases = append(releases, release)
	}

	for i := range releases {
		releases[i].Previous = model.NoPrevious
	}
	for i := 0; i+1 < len(releases); i++ {
		releases[i+1].Previous = i
	}

	logger.Debug("Assembled releases", "count", len(releases))
	return releases, nil
}

func buildRelease(ctx context.Context, repo interfaces.GitRepository, version model.Version, start model.CommitID, boundary *model.Tag) (*model.Release, error) {
	var hide *model.CommitID
	if boundary != nil {
		hide = &boundary.Commit
	}

	commits, err := CollectWalk(Walk(ctx, repo, start, hide))
	if err != nil {
		return nil, err
	}
	slices.Reverse(commits)

	startCommit, err := lookupCommit(ctx, repo, start)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Debug("Built release",
		"version", version.String(),
		"start", start,
		"commits", len(commits),
	)

	return &model.Release{
		Version:   version,
		Start:     start,
		Boundary:  boundary,
		Commits:   commits,
		Timestamp: startCommit.When,
		Previous:  model.NoPrevious,
	}, nil
}
