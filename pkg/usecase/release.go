package usecase

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"text/template"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/verbump/pkg/domain/interfaces"
	"github.com/m-mizutani/verbump/pkg/domain/model"
	"github.com/m-mizutani/verbump/pkg/domain/types"
)

type releaseUseCase struct {
	bump      interfaces.BumpUseCase
	renderer  interfaces.ChangelogRenderer
	committer interfaces.GitCommitter
}

// NewRelease creates a new instance of ReleaseUseCase. committer may be nil
// when release commits are never requested.
func NewRelease(bump interfaces.BumpUseCase, renderer interfaces.ChangelogRenderer, committer interfaces.GitCommitter) interfaces.ReleaseUseCase {
	return &releaseUseCase{
		bump:      bump,
		renderer:  renderer,
		committer: committer,
	}
}

type pendingFile struct {
	rel     string
	content string
}

// ProcessRelease computes the next version, patches the build descriptor,
// renders every changelog and optionally commits and tags the result.
// Files are written one after another; a failure part way leaves the
// earlier files in place.
func (uc *releaseUseCase) ProcessRelease(ctx context.Context, settings *model.ReleaseSettings) (*model.ReleaseResult, error) {
	logger := ctxlog.From(ctx)

	plan, err := uc.bump.Plan(ctx)
	if err != nil {
		return nil, err
	}

	result := &model.ReleaseResult{Plan: plan}
	if plan.Next == nil {
		logger.Info("No commit since the last tag requires a release")
		return result, nil
	}
	if settings.Commit.Enabled && !settings.DryRun && uc.committer == nil {
		return nil, goerr.New("release commit requested but no committer is configured",
			goerr.T(types.ErrTagInvalidConfig),
		)
	}

	descriptor, meta, err := uc.patchDescriptor(settings, *plan.Next)
	if err != nil {
		return nil, err
	}
	result.BuildNumber = meta.BuildNumber
	files := []pendingFile{descriptor}

	releases := map[bool]model.Releases{}
	for _, cl := range settings.Changelogs {
		list, ok := releases[cl.OnlyUnreleased]
		if !ok {
			list, err = uc.bump.Releases(ctx, plan, cl.OnlyUnreleased)
			if err != nil {
				return nil, err
			}
			releases[cl.OnlyUnreleased] = list
		}

		data := &model.ChangelogData{
			Releases:    list,
			Version:     *plan.Next,
			BuildNumber: meta.BuildNumber,
		}

		rel, err := expand("changelog path", cl.Path, data)
		if err != nil {
			return nil, err
		}
		text, err := uc.renderer.Render(ctx, cl.Template, data)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to render changelog", goerr.V("path", rel))
		}
		files = append(files, pendingFile{rel: rel, content: text})
	}

	for _, f := range files {
		if _, err := safeJoin(settings.RootDir, f.rel); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, f.rel)
	}

	if settings.DryRun {
		logger.Info("Dry run, nothing written",
			"next", plan.Next.String(),
			"build_number", meta.BuildNumber,
			"files", result.Files,
		)
		return result, nil
	}

	for _, f := range files {
		if err := writeFile(settings.RootDir, f.rel, f.content); err != nil {
			return nil, err
		}
		logger.Info("Wrote file", "path", f.rel)
	}

	if settings.Commit.Enabled {
		commit, err := uc.commitRelease(ctx, settings, plan, meta, result.Files)
		if err != nil {
			return nil, err
		}
		result.Commit = commit
	}

	return result, nil
}

// RenderChangelog renders a changelog for the current state of the
// repository without touching any file.
func (uc *releaseUseCase) RenderChangelog(ctx context.Context, settings *model.ReleaseSettings, onlyUnreleased bool) (string, error) {
	logger := ctxlog.From(ctx)

	plan, err := uc.bump.Plan(ctx)
	if err != nil {
		return "", err
	}

	releases, err := uc.bump.Releases(ctx, plan, onlyUnreleased)
	if err != nil {
		return "", err
	}

	data := &model.ChangelogData{Releases: releases}
	switch {
	case plan.Next != nil:
		data.Version = *plan.Next
	case plan.LastTag() != nil:
		data.Version = plan.LastTag().Version
	}

	if meta, err := readDescriptor(settings); err != nil {
		logger.Warn("Build number unavailable for changelog", "error", err)
	} else {
		data.BuildNumber = meta.BuildNumber
		if plan.Next != nil {
			data.BuildNumber++
		}
	}

	var tmpl string
	for _, cl := range settings.Changelogs {
		if cl.OnlyUnreleased == onlyUnreleased {
			tmpl = cl.Template
			break
		}
	}

	text, err := uc.renderer.Render(ctx, tmpl, data)
	if err != nil {
		return "", goerr.Wrap(err, "failed to render changelog")
	}
	return text, nil
}

func newPatcher(settings *model.ReleaseSettings) (*DescriptorPatcher, error) {
	var opts []DescriptorOption
	if settings.Descriptor.VersionPattern != "" {
		opts = append(opts, WithVersionPattern(settings.Descriptor.VersionPattern))
	}
	if settings.Descriptor.BuildPattern != "" {
		opts = append(opts, WithBuildPattern(settings.Descriptor.BuildPattern))
	}
	return NewDescriptorPatcher(opts...)
}

func loadDescriptor(settings *model.ReleaseSettings) (*DescriptorPatcher, string, error) {
	patcher, err := newPatcher(settings)
	if err != nil {
		return nil, "", err
	}

	path, err := safeJoin(settings.RootDir, settings.Descriptor.Path)
	if err != nil {
		return nil, "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to read build descriptor", goerr.V("path", path))
	}
	return patcher, string(raw), nil
}

// readDescriptor returns the fields currently in the build descriptor
func readDescriptor(settings *model.ReleaseSettings) (*model.BuildMetadata, error) {
	patcher, content, err := loadDescriptor(settings)
	if err != nil {
		return nil, err
	}
	return patcher.Extract(content)
}

func (uc *releaseUseCase) patchDescriptor(settings *model.ReleaseSettings, next model.Version) (pendingFile, *model.BuildMetadata, error) {
	patcher, content, err := loadDescriptor(settings)
	if err != nil {
		return pendingFile{}, nil, err
	}

	patched, err := patcher.Patch(content, next)
	if err != nil {
		return pendingFile{}, nil, goerr.Wrap(err, "failed to patch build descriptor", goerr.V("path", settings.Descriptor.Path))
	}
	meta, err := patcher.Extract(patched)
	if err != nil {
		return pendingFile{}, nil, err
	}

	return pendingFile{rel: settings.Descriptor.Path, content: patched}, meta, nil
}

func (uc *releaseUseCase) commitRelease(ctx context.Context, settings *model.ReleaseSettings, plan *model.Plan, meta *model.BuildMetadata, files []string) (model.CommitID, error) {
	logger := ctxlog.From(ctx)

	data := &model.ChangelogData{Version: *plan.Next, BuildNumber: meta.BuildNumber}
	message, err := expand("commit message", settings.Commit.Message, data)
	if err != nil {
		return "", err
	}
	tagMessage, err := expand("tag message", settings.Commit.TagMessage, data)
	if err != nil {
		return "", err
	}

	author := settings.Commit.Author
	commit, err := uc.committer.CommitFiles(ctx, files, message, &author)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create release commit")
	}
	if err := uc.committer.CreateTag(ctx, plan.Next.String(), commit, tagMessage, &author); err != nil {
		return "", goerr.Wrap(err, "failed to create release tag", goerr.V("tag", plan.Next.String()))
	}

	logger.Info("Created release commit and tag",
		"commit", commit,
		"tag", plan.Next.String(),
		"author_email", author.Email,
	)
	return commit, nil
}

// expand evaluates a small text/template such as a path or a commit message
func expand(name, text string, data *model.ChangelogData) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse template",
			goerr.V("name", name),
			goerr.V("template", text),
			goerr.T(types.ErrTagInvalidConfig),
		)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute template",
			goerr.V("name", name),
			goerr.V("template", text),
			goerr.T(types.ErrTagInvalidConfig),
		)
	}
	return buf.String(), nil
}

// safeJoin joins rel to root and rejects paths escaping root
func safeJoin(root, rel string) (string, error) {
	if !filepath.IsLocal(rel) {
		return "", goerr.New("path escapes the worktree",
			goerr.V("root", root),
			goerr.V("path", rel),
			goerr.T(types.ErrTagInvalidConfig),
		)
	}
	return filepath.Join(root, rel), nil
}

func writeFile(root, rel, content string) error {
	path, err := safeJoin(root, rel)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return goerr.Wrap(err, "failed to create parent directories", goerr.V("dir", filepath.Dir(path)))
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return goerr.Wrap(err, "failed to write file", goerr.V("path", path))
	}
	return nil
}
