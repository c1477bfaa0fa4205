package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/verbump/pkg/domain/interfaces"
	"github.com/m-mizutani/verbump/pkg/domain/model"
)

type mockRepository struct {
	TagRefsFunc      func(ctx context.Context) ([]*model.TagRef, error)
	HeadFunc         func(ctx context.Context) (model.CommitID, error)
	LookupCommitFunc func(ctx context.Context, id model.CommitID) (*model.Commit, error)
}

var _ interfaces.GitRepository = (*mockRepository)(nil)

func (m *mockRepository) TagRefs(ctx context.Context) ([]*model.TagRef, error) {
	return m.TagRefsFunc(ctx)
}

func (m *mockRepository) Head(ctx context.Context) (model.CommitID, error) {
	return m.HeadFunc(ctx)
}

func (m *mockRepository) LookupCommit(ctx context.Context, id model.CommitID) (*model.Commit, error) {
	return m.LookupCommitFunc(ctx, id)
}

type mockCommitter struct {
	CommitFilesFunc func(ctx context.Context, paths []string, message string, author *model.Signature) (model.CommitID, error)
	CreateTagFunc   func(ctx context.Context, name string, commit model.CommitID, message string, tagger *model.Signature) error
}

var _ interfaces.GitCommitter = (*mockCommitter)(nil)

func (m *mockCommitter) CommitFiles(ctx context.Context, paths []string, message string, author *model.Signature) (model.CommitID, error) {
	return m.CommitFilesFunc(ctx, paths, message, author)
}

func (m *mockCommitter) CreateTag(ctx context.Context, name string, commit model.CommitID, message string, tagger *model.Signature) error {
	return m.CreateTagFunc(ctx, name, commit, message, tagger)
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// graph is an in-memory commit graph. Commits get increasing times in
// creation order; the last created commit is HEAD unless set otherwise.
type graph struct {
	t       *testing.T
	commits map[model.CommitID]*model.Commit
	tags    []*model.TagRef
	head    model.CommitID
	lookups int
}

func newGraph(t *testing.T) *graph {
	return &graph{t: t, commits: map[model.CommitID]*model.Commit{}}
}

func (g *graph) commit(id, message string, parents ...string) model.CommitID {
	g.t.Helper()
	cid := model.CommitID(id)
	if _, ok := g.commits[cid]; ok {
		g.t.Fatalf("duplicated commit %s", id)
	}

	c := &model.Commit{
		ID:      cid,
		Message: message,
		When:    epoch.Add(time.Duration(len(g.commits)) * time.Hour),
	}
	for _, p := range parents {
		c.Parents = append(c.Parents, model.CommitID(p))
	}
	g.commits[cid] = c
	g.head = cid
	return cid
}

func (g *graph) tag(name, id string) {
	g.tags = append(g.tags, &model.TagRef{Name: name, Commit: model.CommitID(id)})
}

func (g *graph) repo() *mockRepository {
	return &mockRepository{
		TagRefsFunc: func(ctx context.Context) ([]*model.TagRef, error) {
			return g.tags, nil
		},
		HeadFunc: func(ctx context.Context) (model.CommitID, error) {
			return g.head, nil
		},
		LookupCommitFunc: func(ctx context.Context, id model.CommitID) (*model.Commit, error) {
			g.lookups++
			c, ok := g.commits[id]
			if !ok {
				return nil, goerr.New("object not found", goerr.V("id", id))
			}
			return c, nil
		},
	}
}

func ids(commits []*model.Commit) []model.CommitID {
	result := make([]model.CommitID, 0, len(commits))
	for _, c := range commits {
		result = append(result, c.ID)
	}
	return result
}
