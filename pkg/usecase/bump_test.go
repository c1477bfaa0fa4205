package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/verbump/pkg/domain/model"
	"github.com/m-mizutani/verbump/pkg/domain/types"
	"github.com/m-mizutani/verbump/pkg/usecase"
)

func TestBump_Plan(t *testing.T) {
	t.Run("feature and fix since the tag", func(t *testing.T) {
		g := newGraph(t)
		g.commit("A", "chore: init")
		g.commit("B", "feat: add X", "A")
		g.commit("C", "fix: y", "B")
		g.tag("v1.0.0", "A")

		plan, err := usecase.NewBump(g.repo()).Plan(context.Background())
		gt.NoError(t, err)
		gt.Equal(t, plan.Head, model.CommitID("C"))
		gt.Equal(t, plan.Walked, 2)
		gt.Equal(t, plan.Bump, model.BumpMinor)
		gt.NotNil(t, plan.Next)
		gt.Equal(t, plan.Next.String(), "v1.1.0")
		gt.Equal(t, plan.LastTag().Name, "v1.0.0")
	})

	t.Run("breaking change beats feature", func(t *testing.T) {
		g := newGraph(t)
		g.commit("A", "chore: init")
		g.commit("B", "feat: z", "A")
		g.commit("C", "fix!: breaking change", "B")
		g.tag("v2.3.1", "A")

		plan, err := usecase.NewBump(g.repo()).Plan(context.Background())
		gt.NoError(t, err)
		gt.Equal(t, plan.Bump, model.BumpMajor)
		gt.Equal(t, plan.Next.String(), "v3.0.0")
	})

	t.Run("no commit since the tag", func(t *testing.T) {
		g := newGraph(t)
		g.commit("A", "feat: init")
		g.tag("v1.2.0", "A")

		plan, err := usecase.NewBump(g.repo()).Plan(context.Background())
		gt.NoError(t, err)
		gt.Equal(t, plan.Walked, 0)
		gt.Equal(t, plan.Bump, model.BumpNone)
		gt.Nil(t, plan.Next)
	})

	t.Run("bumped field already at its maximum", func(t *testing.T) {
		g := newGraph(t)
		g.commit("A", "chore: init")
		g.commit("B", "feat!: drop old API", "A")
		g.tag("v18446744073709551615.0.0", "A")

		plan, err := usecase.NewBump(g.repo()).Plan(context.Background())
		gt.NoError(t, err)
		gt.Equal(t, plan.Bump, model.BumpMajor)
		gt.Nil(t, plan.Next)
	})

	t.Run("only chores since the tag", func(t *testing.T) {
		g := newGraph(t)
		g.commit("A", "feat: init")
		g.commit("B", "chore: deps", "A")
		g.commit("C", "docs: readme", "B")
		g.tag("v1.2.0", "A")

		plan, err := usecase.NewBump(g.repo()).Plan(context.Background())
		gt.NoError(t, err)
		gt.Equal(t, plan.Walked, 2)
		gt.Nil(t, plan.Next)
	})

	t.Run("uses the highest tag", func(t *testing.T) {
		g := newGraph(t)
		g.commit("A", "chore: init")
		g.commit("B", "feat: b", "A")
		g.commit("C", "fix: c", "B")
		g.tag("v1.10.0", "B")
		g.tag("v1.9.0", "A")

		plan, err := usecase.NewBump(g.repo()).Plan(context.Background())
		gt.NoError(t, err)
		gt.Equal(t, plan.Walked, 1)
		gt.Equal(t, plan.Next.String(), "v1.10.1")
	})

	t.Run("no tag at all", func(t *testing.T) {
		g := newGraph(t)
		g.commit("A", "feat: init")

		plan, err := usecase.NewBump(g.repo()).Plan(context.Background())
		gt.NoError(t, err)
		gt.Nil(t, plan.LastTag())
		gt.Nil(t, plan.Next)
	})

	t.Run("malformed tag aborts before walking", func(t *testing.T) {
		g := newGraph(t)
		g.commit("A", "chore: init")
		g.commit("B", "feat: b", "A")
		g.tag("v1.0.0", "A")
		g.tag("1.2.0", "A")

		_, err := usecase.NewBump(g.repo()).Plan(context.Background())
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagInvalidTagFormat))
		gt.Equal(t, g.lookups, 0)
	})

	t.Run("lenient policy skips malformed tag", func(t *testing.T) {
		g := newGraph(t)
		g.commit("A", "chore: init")
		g.commit("B", "feat: b", "A")
		g.tag("v1.0.0", "A")
		g.tag("1.2.0", "A")

		plan, err := usecase.NewBump(g.repo(), usecase.WithTagPolicy(usecase.TagPolicyLenient)).Plan(context.Background())
		gt.NoError(t, err)
		gt.Equal(t, plan.Next.String(), "v1.1.0")
	})

	t.Run("tag listing failure", func(t *testing.T) {
		repo := &mockRepository{
			TagRefsFunc: func(ctx context.Context) ([]*model.TagRef, error) {
				return nil, goerr.New("broken refs")
			},
		}

		_, err := usecase.NewBump(repo).Plan(context.Background())
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagHistoryAccess))
	})
}

func TestBump_Releases(t *testing.T) {
	g := newGraph(t)
	g.commit("A", "chore: init")
	g.commit("B", "feat: add X", "A")
	g.commit("C", "fix: y", "B")
	g.tag("v1.0.0", "A")

	uc := usecase.NewBump(g.repo())
	ctx := context.Background()

	plan, err := uc.Plan(ctx)
	gt.NoError(t, err)

	pending, err := uc.Releases(ctx, plan, true)
	gt.NoError(t, err)
	gt.A(t, pending).Length(1)
	gt.A(t, ids(pending[0].Commits)).Equal([]model.CommitID{"B", "C"})

	all, err := uc.Releases(ctx, plan, false)
	gt.NoError(t, err)
	gt.A(t, all).Length(2)
	gt.Equal(t, all[0].Version.String(), "v1.1.0")
	gt.Equal(t, all[1].Version.String(), "v1.0.0")
}
