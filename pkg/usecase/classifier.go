package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/leodido/go-conventionalcommits"
	"github.com/leodido/go-conventionalcommits/parser"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/verbump/pkg/domain/model"
)

// A subject wrapped by a raw line break ("add\nsupport") would otherwise be
// read as a header followed by a body without the mandatory blank line.
var lineBreakInWords = regexp.MustCompile(`(\w)\n(\w)`)

// SanitizeMessage joins line breaks that sit between two word characters
// and trims trailing whitespace.
func SanitizeMessage(message string) string {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	message = lineBreakInWords.ReplaceAllString(message, "$1 $2")
	return strings.TrimRight(message, " \t\n")
}

// ParseCommit parses a commit message as a Conventional Commit. Any type
// name is accepted.
func ParseCommit(message string) (*model.ConventionalCommit, error) {
	machine := parser.NewMachine(conventionalcommits.WithTypes(conventionalcommits.TypesFreeForm))

	msg, err := machine.Parse([]byte(SanitizeMessage(message)))
	if err != nil {
		return nil, goerr.Wrap(err, "not a conventional commit")
	}

	cc, ok := msg.(*conventionalcommits.ConventionalCommit)
	if !ok || !cc.Ok() {
		return nil, goerr.New("not a conventional commit")
	}

	result := &model.ConventionalCommit{
		Type:        cc.Type,
		Description: cc.Description,
		Breaking:    cc.IsBreakingChange(),
	}
	if cc.Scope != nil {
		result.Scope = *cc.Scope
	}
	if cc.Body != nil {
		result.Body = strings.TrimSpace(*cc.Body)
	}

	return result, nil
}

// Classify returns the version bump requested by a commit message. A
// message that is not a Conventional Commit requests nothing.
func Classify(message string) model.Bump {
	cc, err := ParseCommit(message)
	if err != nil {
		return model.BumpNone
	}
	return bumpOf(cc)
}

func bumpOf(cc *model.ConventionalCommit) model.Bump {
	switch {
	case cc.Breaking:
		return model.BumpMajor
	case cc.Type == "feat":
		return model.BumpMinor
	case cc.Type == "fix":
		return model.BumpPatch
	default:
		return model.BumpNone
	}
}

// Aggregate returns the strongest bump requested by any of the commits
func Aggregate(ctx context.Context, commits []*model.Commit) model.Bump {
	logger := ctxlog.From(ctx)

	bump := model.BumpNone
	for _, c := range commits {
		cc, err := ParseCommit(c.Message)
		if err != nil {
			logger.Debug("Skipping commit that is not a conventional commit",
				"commit", c.ID.Short(),
				"subject", c.Subject(),
			)
			continue
		}
		bump = bump.Max(bumpOf(cc))
	}
	return bump
}
