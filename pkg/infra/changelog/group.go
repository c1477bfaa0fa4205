package changelog

import (
	"github.com/m-mizutani/verbump/pkg/domain/model"
)

// Entry is one changelog line
type Entry struct {
	ID          model.CommitID
	Scope       string
	Description string
	Breaking    bool
}

// Group is a titled set of entries sharing a commit type
type Group struct {
	Title string
	// Visible is false for groups that do not matter to end users (chores,
	// tests, CI...)
	Visible bool
	Entries []*Entry
}

type groupDef struct {
	title   string
	visible bool
}

// groupOrder is the display order. Types not listed fall in "Other".
var groupOrder = []string{"feat", "fix", "perf", "refactor", "docs", "style", "test", "build", "ci", "chore", "revert"}

var groupDefs = map[string]groupDef{
	"feat":     {"Features", true},
	"fix":      {"Bug Fixes", true},
	"perf":     {"Performance", true},
	"refactor": {"Refactor", false},
	"docs":     {"Documentation", false},
	"style":    {"Styling", false},
	"test":     {"Testing", false},
	"build":    {"Build", false},
	"ci":       {"Continuous Integration", false},
	"chore":    {"Miscellaneous Tasks", false},
	"revert":   {"Revert", true},
}

const otherType = ""

// groups sorts conventional commits into groups, keeping commit order
// inside a group. Release commits and unparsable messages are dropped.
func (r *Renderer) groups(commits []*model.Commit) []*Group {
	byType := map[string]*Group{}

	for _, c := range commits {
		cc, err := r.parse(c.Message)
		if err != nil {
			continue
		}
		if cc.Type == "chore" && cc.Scope == "release" {
			continue
		}

		key := cc.Type
		def, ok := groupDefs[key]
		if !ok {
			key = otherType
			def = groupDef{title: "Other", visible: false}
		}

		g, ok := byType[key]
		if !ok {
			g = &Group{Title: def.title, Visible: def.visible}
			byType[key] = g
		}
		g.Entries = append(g.Entries, &Entry{
			ID:          c.ID,
			Scope:       cc.Scope,
			Description: cc.Description,
			Breaking:    cc.Breaking,
		})
	}

	var result []*Group
	for _, key := range groupOrder {
		if g, ok := byType[key]; ok {
			result = append(result, g)
		}
	}
	if g, ok := byType[otherType]; ok {
		result = append(result, g)
	}
	return result
}
