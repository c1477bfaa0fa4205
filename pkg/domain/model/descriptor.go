package model

// BuildMetadata is the pair of fields kept in the build descriptor
type BuildMetadata struct {
	VersionName string // e.g. "1.2.3", without "v"
	BuildNumber uint64
}
