package ats

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"resumecanvas/internal/canvas"
	"resumecanvas/internal/layout"
)

// Priority orders suggestions for the user: high entries first.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Suggestion is one actionable finding from a check.
type Suggestion struct {
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
}

// CheckResult is the outcome of a single independent check.
type CheckResult struct {
	Score    int      `json:"score"`
	Evidence []string `json:"evidence,omitempty"`
}

// Breakdown exposes each check's sub-score and evidence.
type Breakdown struct {
	Sections   CheckResult `json:"sections"`
	Contact    CheckResult `json:"contact"`
	Fonts      CheckResult `json:"fonts"`
	Keywords   CheckResult `json:"keywords"`
	Formatting CheckResult `json:"formatting"`
}

// Report is the full scoring result. Score is always within [0, 100].
type Report struct {
	Score           int          `json:"score"`
	Suggestions     []Suggestion `json:"suggestions"`
	Breakdown       Breakdown    `json:"breakdown"`
	MissingKeywords []string     `json:"missingKeywords,omitempty"`
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\(?\d{3}\)?[-.\s]?){1}\d{3}[-.\s]?\d{4}`)
	wordPattern  = regexp.MustCompile(`[a-zA-Z]+`)
)

// extracted is what the checks need from the linearized tree, gathered in a
// single walk.
type extracted struct {
	fullText      string // lowercase concatenation of all text content
	wordCount     int
	sectionTitles []string
	fontFamilies  map[string]bool
	hasImage      bool
	complexLayout bool
}

func extract(tree *layout.Tree) *extracted {
	ex := &extracted{fontFamilies: make(map[string]bool)}
	var sb strings.Builder

	addText := func(s string) {
		if s == "" {
			return
		}
		sb.WriteString(strings.ToLower(s))
		sb.WriteByte('\n')
		ex.wordCount += len(wordPattern.FindAllString(s, -1))
	}
	addElement := func(el *canvas.Element) {
		if el == nil {
			return
		}
		if el.IsImage() {
			ex.hasImage = true
		}
		if f := strings.TrimSpace(strings.ToLower(el.Style.FontFamily)); f != "" {
			ex.fontFamilies[f] = true
		}
	}

	tree.Walk(func(n layout.Node) {
		switch node := n.(type) {
		case layout.HeaderNode:
			addText(node.Element.Content)
			el := node.Element
			addElement(&el)
		case layout.TextNode:
			addText(node.Text)
			addElement(node.Element)
		case layout.ListNode:
			for _, item := range node.Items {
				addText(item.Text)
				addElement(item.Element)
			}
		case layout.EntryNode:
			addText(node.Title)
			addText(node.Subtitle)
			for _, b := range node.Bullets {
				addText(b)
			}
		case *layout.SectionNode:
			ex.sectionTitles = append(ex.sectionTitles, node.Section.Title)
			addText(node.Section.Title)
			if node.Section.Direction == canvas.DirectionHorizontal &&
				node.Section.ContentType == canvas.ContentListSections {
				ex.complexLayout = true
			}
		}
	})

	ex.fullText = sb.String()
	return ex
}

// Score evaluates a linearized resume against the ATS heuristics. It never
// fails: an empty tree degrades every check to its nothing-found baseline.
func Score(tree *layout.Tree, jobDescription string, cfg Config) Report {
	ex := extract(tree)

	var suggestions []Suggestion

	sections := checkSections(ex, &suggestions)
	contact := checkContact(ex, &suggestions)
	fonts := checkFonts(ex, &suggestions)
	keywords := checkKeywords(ex, cfg, &suggestions)
	formatting := checkFormatting(ex, cfg, &suggestions)

	missing := missingJobKeywords(ex, jobDescription, cfg)
	for _, kw := range missing {
		suggestions = append(suggestions, Suggestion{
			Priority: PriorityMedium,
			Category: "keywords",
			Message:  fmt.Sprintf("The job description emphasizes %q but your resume never mentions it", kw),
		})
	}

	total := cfg.SectionsWeight*float64(sections.Score) +
		cfg.ContactWeight*float64(contact.Score) +
		cfg.FontsWeight*float64(fonts.Score) +
		cfg.KeywordsWeight*float64(keywords.Score) +
		cfg.FormattingWeight*float64(formatting.Score)

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	sortSuggestions(suggestions)

	return Report{
		Score:           score,
		Suggestions:     suggestions,
		MissingKeywords: missing,
		Breakdown: Breakdown{
			Sections:   sections,
			Contact:    contact,
			Fonts:      fonts,
			Keywords:   keywords,
			Formatting: formatting,
		},
	}
}

// checkSections verifies the three required sections by alias match against
// section titles.
func checkSections(ex *extracted, suggestions *[]Suggestion) CheckResult {
	result := CheckResult{}
	present := 0

	// Deterministic check order.
	for _, name := range []string{"experience", "education", "skills"} {
		aliases := requiredSections[name]
		found := false
		for _, title := range ex.sectionTitles {
			lower := strings.ToLower(title)
			for _, alias := range aliases {
				if strings.Contains(lower, alias) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if found {
			present++
			result.Evidence = append(result.Evidence, "found "+name)
		} else {
			*suggestions = append(*suggestions, Suggestion{
				Priority: PriorityHigh,
				Category: "sections",
				Message:  fmt.Sprintf("Add a %s section; ATS parsers look for it by name", name),
			})
		}
	}

	result.Score = roundedRatio(present, 3)
	return result
}

// checkContact looks for an email, a phone number and a LinkedIn reference in
// the full text.
func checkContact(ex *extracted, suggestions *[]Suggestion) CheckResult {
	result := CheckResult{}
	matched := 0

	if emailPattern.MatchString(ex.fullText) {
		matched++
		result.Evidence = append(result.Evidence, "email present")
	} else {
		*suggestions = append(*suggestions, Suggestion{
			Priority: PriorityHigh,
			Category: "contact",
			Message:  "Include an email address in plain text",
		})
	}

	if phonePattern.MatchString(ex.fullText) {
		matched++
		result.Evidence = append(result.Evidence, "phone present")
	} else {
		*suggestions = append(*suggestions, Suggestion{
			Priority: PriorityHigh,
			Category: "contact",
			Message:  "Include a phone number in plain text",
		})
	}

	if strings.Contains(ex.fullText, "linkedin") {
		matched++
		result.Evidence = append(result.Evidence, "linkedin present")
	} else {
		*suggestions = append(*suggestions, Suggestion{
			Priority: PriorityHigh,
			Category: "contact",
			Message:  "Add your LinkedIn profile URL",
		})
	}

	result.Score = roundedRatio(matched, 3)
	return result
}

// checkFonts measures the fraction of distinct font families on the ATS-safe
// allow-list. No fonts at all is vacuously compatible.
func checkFonts(ex *extracted, suggestions *[]Suggestion) CheckResult {
	if len(ex.fontFamilies) == 0 {
		return CheckResult{Score: 100}
	}

	var unsafe []string
	safe := 0
	for family := range ex.fontFamilies {
		if atsSafeFonts[family] {
			safe++
		} else {
			unsafe = append(unsafe, family)
		}
	}
	sort.Strings(unsafe)

	result := CheckResult{Score: roundedRatio(safe, len(ex.fontFamilies))}
	for _, family := range unsafe {
		result.Evidence = append(result.Evidence, "non-standard font: "+family)
		*suggestions = append(*suggestions, Suggestion{
			Priority: PriorityMedium,
			Category: "fonts",
			Message:  fmt.Sprintf("Replace %q with a standard font such as Arial or Calibri", family),
		})
	}
	return result
}

// checkKeywords counts action keywords found as substrings of the lowercase
// content, each worth cfg.KeywordPoints up to 100.
func checkKeywords(ex *extracted, cfg Config, suggestions *[]Suggestion) CheckResult {
	result := CheckResult{}
	score := 0
	foundAny := false

	for _, category := range []string{"leadership", "achievement", "technical", "communication", "analytical", "organizational"} {
		categoryHit := false
		for _, kw := range actionKeywords[category] {
			if strings.Contains(ex.fullText, kw) {
				score += cfg.KeywordPoints
				categoryHit = true
				foundAny = true
			}
		}
		if categoryHit {
			result.Evidence = append(result.Evidence, category+" keywords present")
		}
	}

	if score > 100 {
		score = 100
	}
	result.Score = score

	if !foundAny {
		*suggestions = append(*suggestions, Suggestion{
			Priority: PriorityMedium,
			Category: "keywords",
			Message:  "Use action verbs such as \"led\", \"developed\" or \"improved\" to describe your work",
		})
	}
	return result
}

// checkFormatting starts at 100 and subtracts fixed penalties, floored at 0.
func checkFormatting(ex *extracted, cfg Config, suggestions *[]Suggestion) CheckResult {
	result := CheckResult{Score: 100}

	if ex.complexLayout {
		result.Score -= cfg.PenaltyComplexLayout
		result.Evidence = append(result.Evidence, "complex layout")
		*suggestions = append(*suggestions, Suggestion{
			Priority: PriorityHigh,
			Category: "formatting",
			Message:  "Horizontal multi-column sections confuse ATS parsers; prefer a vertical layout",
		})
	}

	if ex.hasImage {
		result.Score -= cfg.PenaltyImage
		result.Evidence = append(result.Evidence, "image content")
		*suggestions = append(*suggestions, Suggestion{
			Priority: PriorityHigh,
			Category: "formatting",
			Message:  "Images are invisible to ATS parsers; remove them or move their content into text",
		})
	}

	if n := countNonStandardPunctuation(ex.fullText); n > cfg.PunctuationLimit {
		result.Score -= cfg.PenaltyPunctuation
		result.Evidence = append(result.Evidence, fmt.Sprintf("%d decorative characters", n))
		*suggestions = append(*suggestions, Suggestion{
			Priority: PriorityLow,
			Category: "formatting",
			Message:  "Reduce decorative symbols; they often garble during text extraction",
		})
	}

	if ex.wordCount < cfg.MinWordCount {
		result.Score -= cfg.PenaltyWordCount
		result.Evidence = append(result.Evidence, fmt.Sprintf("only %d words", ex.wordCount))
		*suggestions = append(*suggestions, Suggestion{
			Priority: PriorityLow,
			Category: "formatting",
			Message:  fmt.Sprintf("Resume body is short (%d words); aim for at least %d", ex.wordCount, cfg.MinWordCount),
		})
	}

	if result.Score < 0 {
		result.Score = 0
	}
	return result
}

// countNonStandardPunctuation counts characters outside letters, digits,
// whitespace and the punctuation ATS extractors handle cleanly.
func countNonStandardPunctuation(text string) int {
	count := 0
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == ' ', r == '\t', r == '\n', r == '\r':
		case strings.ContainsRune(`.,;:!?'"()-/@&%+#`, r):
		default:
			count++
		}
	}
	return count
}

// missingJobKeywords extracts the top-N frequent long words from the job
// description and reports those absent from the resume text. They influence
// suggestions only, never the numeric keyword sub-score.
func missingJobKeywords(ex *extracted, jobDescription string, cfg Config) []string {
	if strings.TrimSpace(jobDescription) == "" {
		return nil
	}

	freq := make(map[string]int)
	for _, word := range wordPattern.FindAllString(strings.ToLower(jobDescription), -1) {
		if len(word) <= 4 || stopWords[word] {
			continue
		}
		freq[word]++
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	limit := cfg.JobKeywordCount
	if limit <= 0 {
		limit = DefaultJobKeywordCount
	}

	var missing []string
	for _, w := range words {
		if len(missing) >= limit {
			break
		}
		if !strings.Contains(ex.fullText, w) {
			missing = append(missing, w)
		}
	}
	return missing
}

// roundedRatio converts n out of total into a rounded percentage, so partial
// presence is not biased down by truncation.
func roundedRatio(n, total int) int {
	return int(math.Round(float64(n) / float64(total) * 100))
}

// sortSuggestions orders high first, then medium, then low, stable within a
// tier.
func sortSuggestions(suggestions []Suggestion) {
	rank := map[Priority]int{PriorityHigh: 0, PriorityMedium: 1, PriorityLow: 2}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return rank[suggestions[i].Priority] < rank[suggestions[j].Priority]
	})
}
