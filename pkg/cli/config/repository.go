package config

import (
	"github.com/m-mizutani/verbump/pkg/infra/git"
	"github.com/m-mizutani/verbump/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Repository holds the git repository configuration
type Repository struct {
	Path        string
	LenientTags bool
}

// Flags returns CLI flags for repository configuration
func (c *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Path inside the git repository",
			Value:       ".",
			Destination: &c.Path,
			Sources:     cli.EnvVars("VERBUMP_REPO"),
		},
		&cli.BoolFlag{
			Name:        "lenient-tags",
			Usage:       "Skip tags that are not vMAJOR.MINOR.PATCH instead of failing",
			Destination: &c.LenientTags,
			Sources:     cli.EnvVars("VERBUMP_LENIENT_TAGS"),
		},
	}
}

// Open opens the repository
func (c *Repository) Open() (*git.Client, error) {
	return git.Open(c.Path)
}

// TagPolicy returns the tag policy selected by the flags
func (c *Repository) TagPolicy() usecase.TagPolicy {
	if c.LenientTags {
		return usecase.TagPolicyLenient
	}
	return usecase.TagPolicyStrict
}
