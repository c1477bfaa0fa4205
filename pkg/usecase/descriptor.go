package usecase

import (
	"regexp"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/verbump/pkg/domain/model"
	"github.com/m-mizutani/verbump/pkg/domain/types"
)

const (
	// DefaultVersionPattern matches `versionName "1.2.3"` as three groups:
	// prefix, version, suffix.
	DefaultVersionPattern = `(versionName\s+")([0-9]+\.[0-9]+\.[0-9]+)(")`

	// DefaultBuildPattern matches `versionCode 42` as two groups: prefix, number.
	DefaultBuildPattern = `(versionCode\s+)([0-9]+)`
)

type descriptorConfig struct {
	versionPattern string
	buildPattern   string
}

// DescriptorOption configures a DescriptorPatcher
type DescriptorOption func(*descriptorConfig)

// WithVersionPattern overrides the version field pattern. It must have
// three capture groups: prefix, version and suffix.
func WithVersionPattern(pattern string) DescriptorOption {
	return func(c *descriptorConfig) {
		c.versionPattern = pattern
	}
}

// WithBuildPattern overrides the build number pattern. It must have two
// capture groups: prefix and number.
func WithBuildPattern(pattern string) DescriptorOption {
	return func(c *descriptorConfig) {
		c.buildPattern = pattern
	}
}

// DescriptorPatcher rewrites the version name and build number of a build
// descriptor. It never touches the file system.
type DescriptorPatcher struct {
	version *regexp.Regexp
	build   *regexp.Regexp
}

// NewDescriptorPatcher compiles the field patterns
func NewDescriptorPatcher(opts ...DescriptorOption) (*DescriptorPatcher, error) {
	cfg := &descriptorConfig{
		versionPattern: DefaultVersionPattern,
		buildPattern:   DefaultBuildPattern,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	version, err := compileFieldPattern(cfg.versionPattern, 3)
	if err != nil {
		return nil, err
	}
	build, err := compileFieldPattern(cfg.buildPattern, 2)
	if err != nil {
		return nil, err
	}

	return &DescriptorPatcher{version: version, build: build}, nil
}

func compileFieldPattern(pattern string, groups int) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid descriptor pattern",
			goerr.V("pattern", pattern),
			goerr.T(types.ErrTagInvalidConfig),
		)
	}
	if re.NumSubexp() != groups {
		return nil, goerr.New("descriptor pattern has a wrong number of capture groups",
			goerr.V("pattern", pattern),
			goerr.V("want", groups),
			goerr.V("got", re.NumSubexp()),
			goerr.T(types.ErrTagInvalidConfig),
		)
	}
	return re, nil
}

// Extract reads the version name and the build number from content
func (x *DescriptorPatcher) Extract(content string) (*model.BuildMetadata, error) {
	vm, err := matchOnce(x.version, content, "version")
	if err != nil {
		return nil, err
	}
	bm, err := matchOnce(x.build, content, "build number")
	if err != nil {
		return nil, err
	}

	number, err := parseBuildNumber(content[bm[4]:bm[5]])
	if err != nil {
		return nil, err
	}

	return &model.BuildMetadata{
		VersionName: content[vm[4]:vm[5]],
		BuildNumber: number,
	}, nil
}

// Patch replaces the version field with version (without "v") and
// increments the build number by one. Everything else is kept as is.
func (x *DescriptorPatcher) Patch(content string, version model.Version) (string, error) {
	vm, err := matchOnce(x.version, content, "version")
	if err != nil {
		return "", err
	}
	bm, err := matchOnce(x.build, content, "build number")
	if err != nil {
		return "", err
	}

	number, err := parseBuildNumber(content[bm[4]:bm[5]])
	if err != nil {
		return "", err
	}

	type edit struct {
		start, end int
		text       string
	}
	first := edit{vm[4], vm[5], version.Number()}
	second := edit{bm[4], bm[5], strconv.FormatUint(number+1, 10)}
	if second.start < first.start {
		first, second = second, first
	}
	if first.end > second.start {
		return "", goerr.New("version and build number fields overlap",
			goerr.T(types.ErrTagInvalidConfig),
		)
	}

	return content[:first.start] + first.text +
		content[first.end:second.start] + second.text +
		content[second.end:], nil
}

// matchOnce returns the submatch indexes of the only match of re
func matchOnce(re *regexp.Regexp, content, field string) ([]int, error) {
	matches := re.FindAllStringSubmatchIndex(content, -1)
	if len(matches) != 1 {
		return nil, goerr.New("build descriptor must contain the field exactly once",
			goerr.V("field", field),
			goerr.V("pattern", re.String()),
			goerr.V("matches", len(matches)),
			goerr.T(types.ErrTagMissingField),
		)
	}
	return matches[0], nil
}

func parseBuildNumber(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "build number is not an integer",
			goerr.V("value", s),
			goerr.T(types.ErrTagMissingField),
		)
	}
	return n, nil
}
