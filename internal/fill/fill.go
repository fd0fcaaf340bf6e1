// Package fill substitutes user data into a template's placeholder tokens and
// annotates sections the caller is expected to populate. It never mutates its
// inputs: callers receive fresh copies safe to store or linearize.
package fill

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"resumecanvas/internal/canvas"
)

// tokenPattern matches {fieldName} placeholders. Field names are letters only,
// so literal braces around other text pass through untouched.
var tokenPattern = regexp.MustCompile(`\{([a-zA-Z]+)\}`)

// SummaryProvider generates a professional summary from user data. The fill
// engine calls it only when configured; any failure falls back to the built-in
// summary so Fill itself never fails.
type SummaryProvider interface {
	GenerateSummary(ctx context.Context, user canvas.UserData, jobDescription string) (string, error)
}

// Options tunes a fill run. The zero value is fully functional.
type Options struct {
	// Summary, when non-nil, supplies the {summary} value instead of the
	// built-in fallback.
	Summary SummaryProvider
}

// Result holds the filled copies of a template's collections.
type Result struct {
	Elements []canvas.Element
	Sections []canvas.Section
}

// Fill clones the template collections, resolves placeholder tokens in element
// content against user data, and marks known category sections as filled.
// Unknown tokens are left unresolved so the UI can surface them verbatim.
func Fill(ctx context.Context, elements []canvas.Element, sections []canvas.Section, user canvas.UserData, jobDescription string, opts Options) Result {
	res := Result{
		Elements: cloneElements(elements),
		Sections: cloneSections(sections),
	}

	info := user.PersonalInfo()
	var summary string
	summaryResolved := false

	for i := range res.Elements {
		content := res.Elements[i].Content
		if !strings.ContainsRune(content, '{') {
			continue
		}
		res.Elements[i].Content = tokenPattern.ReplaceAllStringFunc(content, func(tok string) string {
			field := strings.ToLower(tok[1 : len(tok)-1])
			if v, ok := info[field]; ok {
				return v
			}
			if field == "summary" {
				if !summaryResolved {
					summary = resolveSummary(ctx, user, jobDescription, opts.Summary)
					summaryResolved = true
				}
				return summary
			}
			return tok
		})
	}

	for i := range res.Sections {
		sec := &res.Sections[i]
		if !knownCategory(sec.Title) {
			continue
		}
		sec.Filled = true
		sec.ItemCount = countChildren(sec, res.Elements, res.Sections)
	}

	return res
}

// knownCategory reports whether a section title names a category the fill
// engine annotates. Matching is by case-insensitive substring.
func knownCategory(title string) bool {
	t := strings.ToLower(title)
	for _, cat := range []string{"experience", "education", "skills"} {
		if strings.Contains(t, cat) {
			return true
		}
	}
	return false
}

func countChildren(sec *canvas.Section, elements []canvas.Element, sections []canvas.Section) int {
	n := 0
	for i := range elements {
		if elements[i].ParentSection == sec.ID {
			n++
		}
	}
	for i := range sections {
		if sections[i].ParentSection == sec.ID {
			n++
		}
	}
	return n
}

// resolveSummary prefers, in order: explicit user summary, configured
// provider, built-in fallback. Provider errors degrade to the fallback.
func resolveSummary(ctx context.Context, user canvas.UserData, jobDescription string, provider SummaryProvider) string {
	if s := strings.TrimSpace(user.Summary); s != "" {
		return s
	}
	if provider != nil {
		if s, err := provider.GenerateSummary(ctx, user, jobDescription); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return fallbackSummary(user)
}

// fallbackSummary builds a deterministic one-sentence summary from whatever
// title and experience data is available.
func fallbackSummary(user canvas.UserData) string {
	title := strings.TrimSpace(user.Title)
	if title == "" && len(user.Experience) > 0 {
		title = strings.TrimSpace(user.Experience[0].Title)
	}
	if title == "" {
		title = "professional"
	}

	switch n := len(user.Experience); {
	case n > 1:
		return fmt.Sprintf("%s with experience across %d roles, most recently as %s at %s.",
			capitalize(title), n, user.Experience[0].Title, orUnknown(user.Experience[0].Company))
	case n == 1:
		return fmt.Sprintf("%s with experience as %s at %s.",
			capitalize(title), user.Experience[0].Title, orUnknown(user.Experience[0].Company))
	default:
		return fmt.Sprintf("%s seeking new opportunities.", capitalize(title))
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "a previous employer"
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func cloneElements(elements []canvas.Element) []canvas.Element {
	out := make([]canvas.Element, len(elements))
	copy(out, elements)
	return out
}

func cloneSections(sections []canvas.Section) []canvas.Section {
	out := make([]canvas.Section, len(sections))
	for i, s := range sections {
		if s.FilledContent != nil {
			blocks := make([]canvas.FilledBlock, len(s.FilledContent))
			for j, b := range s.FilledContent {
				if b.Bullets != nil {
					b.Bullets = append([]string(nil), b.Bullets...)
				}
				if b.Items != nil {
					b.Items = append([]string(nil), b.Items...)
				}
				blocks[j] = b
			}
			s.FilledContent = blocks
		}
		out[i] = s
	}
	return out
}
