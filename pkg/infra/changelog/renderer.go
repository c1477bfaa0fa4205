package changelog

import (
	"bytes"
	"context"
	"text/template"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/verbump/pkg/domain/interfaces"
	"github.com/m-mizutani/verbump/pkg/domain/model"
	"github.com/m-mizutani/verbump/pkg/domain/types"
)

// DefaultTemplate renders every release with commits grouped by type
const DefaultTemplate = `# Changelog

All notable changes to this project will be documented in this file.
{{ range .Releases }}
## [{{ .Version.Number }}] - {{ date .Timestamp }}
{{ range groups .Commits }}
### {{ .Title }}
{{ range .Entries }}
- {{ if .Scope }}**{{ .Scope }}:** {{ end }}{{ if .Breaking }}[**breaking**] {{ end }}{{ .Description }} ({{ short .ID }})
{{- end }}
{{ end }}{{ end }}`

// CompactTemplate renders a plain list of user facing changes, suitable for
// store listings.
const CompactTemplate = `{{ range .Releases }}{{ range groups .Commits }}{{ if .Visible }}{{ range .Entries }}- {{ .Description }}
{{ end }}{{ end }}{{ end }}{{ end }}`

// CommitParser parses a commit message into its Conventional Commit form
type CommitParser func(message string) (*model.ConventionalCommit, error)

// Renderer renders changelogs with text/template
type Renderer struct {
	parse      CommitParser
	dateFormat string
}

var _ interfaces.ChangelogRenderer = (*Renderer)(nil)

// Option configures the Renderer
type Option func(*Renderer)

// WithDateFormat sets the layout used by the date template function
func WithDateFormat(layout string) Option {
	return func(r *Renderer) {
		r.dateFormat = layout
	}
}

// New creates a Renderer. Commits that parse fails on are left out of
// groups.
func New(parse CommitParser, opts ...Option) *Renderer {
	r := &Renderer{
		parse:      parse,
		dateFormat: time.DateOnly,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render executes tmpl against data. An empty tmpl selects DefaultTemplate.
func (r *Renderer) Render(ctx context.Context, tmpl string, data *model.ChangelogData) (string, error) {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}

	t, err := template.New("changelog").Funcs(r.funcs()).Parse(tmpl)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse changelog template", goerr.T(types.ErrTagInvalidConfig))
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute changelog template",
			goerr.V("version", data.Version.String()),
		)
	}

	ctxlog.From(ctx).Debug("Rendered changelog",
		"releases", len(data.Releases),
		"bytes", buf.Len(),
	)
	return buf.String(), nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			return t.Format(r.dateFormat)
		},
		"short": func(id model.CommitID) string {
			return id.Short()
		},
		"conventional": func(c *model.Commit) *model.ConventionalCommit {
			cc, err := r.parse(c.Message)
			if err != nil {
				return nil
			}
			return cc
		},
		"groups": r.groups,
	}
}
