package model

// TagRef is a raw tag reference as enumerated by the repository backend.
// Annotated tags are already peeled to the commit they point at.
type TagRef struct {
	Name   string
	Commit CommitID
}

// Tag is an already released version anchored at a commit
type Tag struct {
	Name    string
	Version Version
	Commit  CommitID
}

// Tags is sorted ascending by version
type Tags []*Tag

// Last returns the currently released version, or nil when no tag exists
func (x Tags) Last() *Tag {
	if len(x) == 0 {
		return nil
	}
	return x[len(x)-1]
}
