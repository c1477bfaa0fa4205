package config

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/verbump/pkg/domain/model"
	"github.com/m-mizutani/verbump/pkg/domain/types"
	"github.com/m-mizutani/verbump/pkg/infra/changelog"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

const (
	DefaultConfigFile     = "verbump.toml"
	DefaultDescriptorPath = "app/build.gradle"
	DefaultChangelogPath  = "CHANGELOG.md"
	DefaultCommitMessage  = "chore(release): {{ .Version.Number }}"
	DefaultTagMessage     = "Version {{ .Version.Number }}"
)

// Release holds the release configuration. Flags override values read
// from the configuration file.
type Release struct {
	File        string
	DryRun      bool
	Commit      bool
	AuthorName  string
	AuthorEmail string
}

// FileFlags returns only the configuration file flag
func (c *Release) FileFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Release configuration file, relative to the repository root",
			Value:       DefaultConfigFile,
			Destination: &c.File,
			Sources:     cli.EnvVars("VERBUMP_CONFIG"),
		},
	}
}

// Flags returns CLI flags for release configuration
func (c *Release) Flags() []cli.Flag {
	return append(c.FileFlags(),
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Compute everything but write nothing",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("VERBUMP_DRY_RUN"),
		},
		&cli.BoolFlag{
			Name:        "commit",
			Usage:       "Create the release commit and tag",
			Destination: &c.Commit,
			Sources:     cli.EnvVars("VERBUMP_COMMIT"),
		},
		&cli.StringFlag{
			Name:        "author-name",
			Usage:       "Author name of the release commit and tag",
			Destination: &c.AuthorName,
			Sources:     cli.EnvVars("VERBUMP_AUTHOR_NAME"),
		},
		&cli.StringFlag{
			Name:        "author-email",
			Usage:       "Author email of the release commit and tag",
			Destination: &c.AuthorEmail,
			Sources:     cli.EnvVars("VERBUMP_AUTHOR_EMAIL"),
		},
	)
}

type releaseFile struct {
	Descriptor descriptorFile  `toml:"descriptor"`
	Changelog  []changelogFile `toml:"changelog"`
	Commit     commitFile      `toml:"commit"`
}

type descriptorFile struct {
	Path           string `toml:"path"`
	VersionPattern string `toml:"version_pattern"`
	BuildPattern   string `toml:"build_pattern"`
}

type changelogFile struct {
	Path           string `toml:"path"`
	Template       string `toml:"template"`
	TemplateFile   string `toml:"template_file"`
	Format         string `toml:"format"`
	OnlyUnreleased bool   `toml:"only_unreleased"`
}

type commitFile struct {
	Enabled     bool   `toml:"enabled"`
	Message     string `toml:"message"`
	TagMessage  string `toml:"tag_message"`
	AuthorName  string `toml:"author_name"`
	AuthorEmail string `toml:"author_email"`
}

// Load builds the release settings for the worktree at root. A missing
// configuration file yields the defaults.
func (c *Release) Load(ctx context.Context, root string) (*model.ReleaseSettings, error) {
	var file releaseFile

	path := c.File
	if path == "" {
		path = DefaultConfigFile
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ctxlog.From(ctx).Debug("No release configuration file, using defaults", "path", path)
	case err != nil:
		return nil, goerr.Wrap(err, "failed to read release configuration", goerr.V("path", path))
	default:
		decoder := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields()
		if err := decoder.Decode(&file); err != nil {
			return nil, goerr.Wrap(err, "failed to parse release configuration",
				goerr.V("path", path),
				goerr.T(types.ErrTagInvalidConfig),
			)
		}
	}

	settings := &model.ReleaseSettings{
		RootDir: root,
		Descriptor: model.DescriptorSettings{
			Path:           orDefault(file.Descriptor.Path, DefaultDescriptorPath),
			VersionPattern: file.Descriptor.VersionPattern,
			BuildPattern:   file.Descriptor.BuildPattern,
		},
		Commit: model.CommitSettings{
			Enabled:    c.Commit || file.Commit.Enabled,
			Message:    orDefault(file.Commit.Message, DefaultCommitMessage),
			TagMessage: orDefault(file.Commit.TagMessage, DefaultTagMessage),
			Author: model.Signature{
				Name:  orDefault(c.AuthorName, file.Commit.AuthorName),
				Email: orDefault(c.AuthorEmail, file.Commit.AuthorEmail),
			},
		},
		DryRun: c.DryRun,
	}

	if len(file.Changelog) == 0 {
		file.Changelog = []changelogFile{{Path: DefaultChangelogPath}}
	}
	for _, cl := range file.Changelog {
		tmpl, err := cl.template(root)
		if err != nil {
			return nil, err
		}
		if cl.Path == "" {
			return nil, goerr.New("changelog path is required",
				goerr.V("config", path),
				goerr.T(types.ErrTagInvalidConfig),
			)
		}
		settings.Changelogs = append(settings.Changelogs, model.ChangelogSettings{
			Path:           cl.Path,
			Template:       tmpl,
			OnlyUnreleased: cl.OnlyUnreleased,
		})
	}

	return settings, nil
}

// template resolves the changelog template. An empty result selects the
// renderer's default template.
func (x changelogFile) template(root string) (string, error) {
	if x.Template != "" && x.TemplateFile != "" {
		return "", goerr.New("template and template_file are exclusive",
			goerr.V("changelog", x.Path),
			goerr.T(types.ErrTagInvalidConfig),
		)
	}

	switch {
	case x.TemplateFile != "":
		path := x.TemplateFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read changelog template",
				goerr.V("path", path),
				goerr.T(types.ErrTagInvalidConfig),
			)
		}
		return string(raw), nil

	case x.Template != "":
		return x.Template, nil
	}

	switch x.Format {
	case "", "full":
		return "", nil
	case "compact":
		return changelog.CompactTemplate, nil
	default:
		return "", goerr.New("unknown changelog format",
			goerr.V("format", x.Format),
			goerr.V("changelog", x.Path),
			goerr.T(types.ErrTagInvalidConfig),
		)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
