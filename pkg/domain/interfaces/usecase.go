package interfaces

import (
	"context"

	"github.com/m-mizutani/verbump/pkg/domain/model"
)

// BumpUseCase computes the next version and assembles releases
type BumpUseCase interface {
	// Plan resolves tags, walks history since the last tag and computes the next version
	Plan(ctx context.Context) (*model.Plan, error)

	// Releases assembles the release list for the plan. With onlyUnreleased
	// only the pending release is built.
	Releases(ctx context.Context, plan *model.Plan, onlyUnreleased bool) (model.Releases, error)
}

// ChangelogRenderer turns a release list into changelog text
type ChangelogRenderer interface {
	// Render executes tmpl, or the built-in template when tmpl is empty
	Render(ctx context.Context, tmpl string, data *model.ChangelogData) (string, error)
}

// ReleaseUseCase applies a plan: build descriptor, changelogs, commit and tag
type ReleaseUseCase interface {
	// ProcessRelease computes the next version and writes everything the settings ask for
	ProcessRelease(ctx context.Context, settings *model.ReleaseSettings) (*model.ReleaseResult, error)

	// RenderChangelog renders a changelog without writing anything. The
	// template of the first configured changelog with the same
	// onlyUnreleased is used, or the built-in one.
	RenderChangelog(ctx context.Context, settings *model.ReleaseSettings, onlyUnreleased bool) (string, error)
}
