package usecase

import (
	"context"
	"slices"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/verbump/pkg/domain/model"
)

// TagPolicy decides what happens to tags whose name is not a version
type TagPolicy int

const (
	// TagPolicyStrict aborts the run on the first malformed tag
	TagPolicyStrict TagPolicy = iota
	// TagPolicyLenient skips malformed tags with a warning
	TagPolicyLenient
)

// ResolveTags parses every tag reference into a version tag and returns
// them sorted ascending by version.
func ResolveTags(ctx context.Context, refs []*model.TagRef, policy TagPolicy) (model.Tags, error) {
	logger := ctxlog.From(ctx)

	tags := make(model.Tags, 0, len(refs))
	for _, ref := range refs {
		version, err := model.ParseVersion(ref.Name)
		if err != nil {
			if policy == TagPolicyLenient {
				logger.Warn("Skipping tag that is not a version", "tag", ref.Name, "commit", ref.Commit)
				continue
			}
			return nil, goerr.Wrap(err, "failed to resolve version tags", goerr.V("commit", ref.Commit))
		}

		tags = append(tags, &model.Tag{
			Name:    ref.Name,
			Version: version,
			Commit:  ref.Commit,
		})
	}

	slices.SortStableFunc(tags, func(a, b *model.Tag) int {
		return a.Version.Compare(b.Version)
	})

	logger.Debug("Resolved version tags", "count", len(tags))
	return tags, nil
}
