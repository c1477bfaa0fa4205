package cli

import (
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/verbump/pkg/domain/model"
)

var (
	headColor  = color.New(color.FgGreen, color.Bold)
	labelColor = color.New(color.FgCyan)
	faintColor = color.New(color.Faint)
)

func printResult(w io.Writer, result *model.ReleaseResult, dryRun bool) {
	plan := result.Plan

	if plan.Next == nil {
		faintColor.Fprintf(w, "No release needed (%d commits since %s)\n", plan.Walked, lastTagName(plan))
		return
	}

	title := "Bumped to"
	if dryRun {
		title = "Dry run"
	}
	headColor.Fprintf(w, "%s %s\n", title, plan.Next.String())

	labelColor.Fprint(w, "  previous: ")
	io.WriteString(w, lastTagName(plan)+"\n")
	labelColor.Fprint(w, "  bump:     ")
	io.WriteString(w, plan.Bump.String()+"\n")
	labelColor.Fprint(w, "  build:    ")
	faintColor.Fprintf(w, "%d\n", result.BuildNumber)

	for _, f := range result.Files {
		labelColor.Fprint(w, "  file:     ")
		io.WriteString(w, f+"\n")
	}
	if result.Commit != "" {
		labelColor.Fprint(w, "  commit:   ")
		io.WriteString(w, result.Commit.Short()+"\n")
	}
}

func lastTagName(plan *model.Plan) string {
	if last := plan.LastTag(); last != nil {
		return last.Name
	}
	return "(no tag)"
}
