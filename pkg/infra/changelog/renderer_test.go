package changelog_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/verbump/pkg/domain/model"
	"github.com/m-mizutani/verbump/pkg/domain/types"
	"github.com/m-mizutani/verbump/pkg/infra/changelog"
	"github.com/m-mizutani/verbump/pkg/usecase"
)

func commit(id, msg string) *model.Commit {
	return &model.Commit{ID: model.CommitID(id), Message: msg}
}

func sampleData() *model.ChangelogData {
	releases := model.Releases{
		{
			Version:   model.Version{Major: 1, Minor: 1},
			Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Commits: []*model.Commit{
				commit("aaaaaaaaaa", "feat(ui): add dark mode"),
				commit("bbbbbbbbbb", "fix: crash on start\n\nlong explanation"),
				commit("cccccccccc", "chore: bump deps"),
				commit("dddddddddd", "not conventional at all"),
				commit("eeeeeeeeee", "chore(release): 1.1.0"),
			},
			Previous: 1,
		},
		{
			Version:   model.Version{Major: 1},
			Timestamp: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Commits: []*model.Commit{
				commit("ffffffffff", "feat!: drop legacy api"),
			},
			Previous: model.NoPrevious,
		},
	}

	return &model.ChangelogData{
		Releases:    releases,
		Version:     model.Version{Major: 1, Minor: 1},
		BuildNumber: 12,
	}
}

func TestRender_DefaultTemplate(t *testing.T) {
	r := changelog.New(usecase.ParseCommit)

	out, err := r.Render(context.Background(), "", sampleData())
	gt.NoError(t, err)

	gt.String(t, out).
		HasPrefix("# Changelog\n").
		Contains("## [1.1.0] - 2024-03-01").
		Contains("### Features\n\n- **ui:** add dark mode (aaaaaaa)").
		Contains("### Bug Fixes\n\n- crash on start (bbbbbbb)").
		Contains("### Miscellaneous Tasks\n\n- bump deps (ccccccc)").
		Contains("## [1.0.0] - 2024-01-15").
		Contains("- [**breaking**] drop legacy api (fffffff)").
		NotContains("not conventional").
		NotContains("chore(release)").
		NotContains("1.1.0 (eeeeeee)")
}

func TestRender_CompactTemplate(t *testing.T) {
	r := changelog.New(usecase.ParseCommit)

	data := sampleData()
	data.Releases = data.Releases[:1]

	out, err := r.Render(context.Background(), changelog.CompactTemplate, data)
	gt.NoError(t, err)
	gt.Equal(t, out, "- add dark mode\n- crash on start\n")
}

func TestRender_CustomTemplate(t *testing.T) {
	r := changelog.New(usecase.ParseCommit, changelog.WithDateFormat("02/01/2006"))

	tmpl := `{{ $all := .Releases }}{{ range $i, $r := .Releases }}{{ $r.Version.Number }}@{{ date $r.Timestamp }}<{{ with $all.PreviousOf $i }}{{ .Version.Number }}{{ else }}none{{ end }}> {{ end }}build={{ .BuildNumber }} next={{ .Version.Number }}`
	out, err := r.Render(context.Background(), tmpl, sampleData())
	gt.NoError(t, err)
	gt.Equal(t, out, "1.1.0@01/03/2024<1.0.0> 1.0.0@15/01/2024<none> build=12 next=1.1.0")
}

func TestRender_ConventionalFunc(t *testing.T) {
	r := changelog.New(usecase.ParseCommit)

	tmpl := `{{ range .Releases }}{{ range .Commits }}{{ with conventional . }}{{ .Type }}{{ else }}?{{ end }},{{ end }}{{ end }}`
	out, err := r.Render(context.Background(), tmpl, sampleData())
	gt.NoError(t, err)
	gt.Equal(t, out, "feat,fix,chore,?,chore,feat,")
}

func TestRender_Errors(t *testing.T) {
	r := changelog.New(usecase.ParseCommit)
	ctx := context.Background()

	t.Run("broken template is a configuration error", func(t *testing.T) {
		_, err := r.Render(ctx, "{{ range .Releases }", sampleData())
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagInvalidConfig))
	})

	t.Run("unknown field fails at execution", func(t *testing.T) {
		_, err := r.Render(ctx, "{{ .Nope }}", sampleData())
		gt.Error(t, err)
	})
}

func TestRender_OtherGroupIsLast(t *testing.T) {
	r := changelog.New(usecase.ParseCommit)

	data := &model.ChangelogData{
		Releases: model.Releases{{
			Version: model.Version{Major: 2},
			Commits: []*model.Commit{
				commit("1111111111", "wip: experiment"),
				commit("2222222222", "docs: readme"),
				commit("3333333333", "feat: thing"),
			},
			Previous: model.NoPrevious,
		}},
	}

	tmpl := `{{ range .Releases }}{{ range groups .Commits }}{{ .Title }}/{{ .Visible }};{{ end }}{{ end }}`
	out, err := r.Render(context.Background(), tmpl, data)
	gt.NoError(t, err)
	gt.Equal(t, out, "Features/true;Documentation/false;Other/false;")
}
