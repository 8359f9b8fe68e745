package diff

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Format selects how a diff is returned
type Format int

const (
	// FormatRendered renders the diff through glamour (default)
	FormatRendered Format = iota
	// FormatPlain returns the bare unified diff
	FormatPlain
)

// Unified returns the unified diff from previous to next, or "" when they
// are identical
func Unified(previous, next []byte, oldName, newName string) string {
	edits := myers.ComputeEdits(span.URIFromPath(oldName), string(previous), string(next))
	return fmt.Sprint(gotextdiff.ToUnified(oldName, newName, string(previous), edits))
}

// Generate diffs a previous export against a new one. An empty string means
// nothing changed.
func Generate(previous, next []byte, oldName, newName string, format Format) (string, error) {
	unified := Unified(previous, next, oldName, newName)
	if unified == "" {
		return "", nil
	}

	switch format {
	case FormatPlain:
		return unified, nil
	case FormatRendered:
		return render(unified), nil
	default:
		return "", fmt.Errorf("unsupported diff format: %d", format)
	}
}

// render wraps the diff in a fence so glamour colors + and - lines
func render(unified string) string {
	fenced := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return fenced
	}

	rendered, err := renderer.Render(fenced)
	if err != nil {
		return fenced
	}

	return rendered
}
