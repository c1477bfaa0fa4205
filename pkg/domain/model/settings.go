package model

// ReleaseSettings is what a release run writes and where
type ReleaseSettings struct {
	// RootDir is the worktree root; every path below is relative to it
	RootDir    string
	Descriptor DescriptorSettings
	Changelogs []ChangelogSettings
	Commit     CommitSettings
	DryRun     bool
}

// DescriptorSettings locates the build descriptor and its two fields
type DescriptorSettings struct {
	Path           string
	VersionPattern string
	BuildPattern   string
}

// ChangelogSettings is one changelog output. Path is a text/template
// evaluated with ChangelogData.
type ChangelogSettings struct {
	Path           string
	Template       string
	OnlyUnreleased bool
}

// CommitSettings controls the release commit and tag. Message and
// TagMessage are text/template evaluated with ChangelogData.
type CommitSettings struct {
	Enabled    bool
	Message    string
	TagMessage string
	Author     Signature
}

// ReleaseResult reports what a release run did
type ReleaseResult struct {
	Plan        *Plan
	BuildNumber uint64
	Files       []string // written (or, in dry run, to be written) paths
	Commit      CommitID // empty unless a release commit was created
}
