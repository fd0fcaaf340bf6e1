package ats

import (
	"strings"
	"testing"

	"resumecanvas/internal/canvas"
	"resumecanvas/internal/layout"
)

func buildTree(t *testing.T, doc *canvas.Document) *layout.Tree {
	t.Helper()
	tree, err := layout.Linearize(doc, layout.Options{})
	if err != nil {
		t.Fatalf("Linearize: %v", err)
	}
	return tree
}

// strongResume has every required section, full contact details, safe fonts
// and action keywords.
func strongResume(t *testing.T) *layout.Tree {
	t.Helper()
	words := strings.Repeat("delivered measurable results across production systems ", 25)
	return buildTree(t, &canvas.Document{
		Elements: []canvas.Element{
			{ID: "name", Content: "Ada Lovelace", Y: 0, Style: canvas.Style{FontFamily: "Arial"}},
			{ID: "contact", Content: "ada@example.com | 555-123-4567 | linkedin.com/in/ada", Y: 10},
			{ID: "exp-body", Content: "Led a team that developed and improved the analytics platform. " + words, ParentSection: "exp", Y: 110},
			{ID: "edu-body", Content: "BSc Mathematics, University of London", ParentSection: "edu", Y: 210},
			{ID: "skills-body", Content: "Go, SQL, distributed systems", ParentSection: "skills", Y: 310},
		},
		Sections: []canvas.Section{
			{ID: "exp", Title: "Experience", Y: 100},
			{ID: "edu", Title: "Education", Y: 200},
			{ID: "skills", Title: "Skills", Y: 300},
		},
	})
}

func TestScoreStrongResume(t *testing.T) {
	report := Score(strongResume(t), "", DefaultConfig())

	if report.Score < 70 || report.Score > 100 {
		t.Errorf("score = %d, want a high score within [70, 100]", report.Score)
	}
	if report.Breakdown.Sections.Score != 100 {
		t.Errorf("sections = %d, want 100", report.Breakdown.Sections.Score)
	}
	if report.Breakdown.Contact.Score != 100 {
		t.Errorf("contact = %d, want 100", report.Breakdown.Contact.Score)
	}
	if report.Breakdown.Fonts.Score != 100 {
		t.Errorf("fonts = %d, want 100", report.Breakdown.Fonts.Score)
	}
	if report.Breakdown.Formatting.Score != 100 {
		t.Errorf("formatting = %d, want 100", report.Breakdown.Formatting.Score)
	}
	if len(report.MissingKeywords) != 0 {
		t.Errorf("missing keywords = %v, want none without a job description", report.MissingKeywords)
	}
}

func TestScoreEmptyTree(t *testing.T) {
	report := Score(&layout.Tree{}, "", DefaultConfig())

	if report.Score < 0 || report.Score > 100 {
		t.Fatalf("score = %d, out of range", report.Score)
	}
	if report.Breakdown.Sections.Score != 0 {
		t.Errorf("sections = %d, want 0", report.Breakdown.Sections.Score)
	}
	if report.Breakdown.Contact.Score != 0 {
		t.Errorf("contact = %d, want 0", report.Breakdown.Contact.Score)
	}
	// No fonts at all is vacuously safe.
	if report.Breakdown.Fonts.Score != 100 {
		t.Errorf("fonts = %d, want 100", report.Breakdown.Fonts.Score)
	}
	if len(report.Suggestions) == 0 {
		t.Error("expected suggestions for an empty resume")
	}
}

func TestScorePartialPresenceRounding(t *testing.T) {
	// Two of three sections and one of three contact fields: the thirds must
	// round to 67 and 33 rather than truncate to 66 and 33.
	tree := buildTree(t, &canvas.Document{
		Elements: []canvas.Element{
			{ID: "contact", Content: "ada@example.com", Y: 0},
		},
		Sections: []canvas.Section{
			{ID: "exp", Title: "Experience", Y: 100},
			{ID: "edu", Title: "Education", Y: 200},
		},
	})
	report := Score(tree, "", DefaultConfig())

	if report.Breakdown.Sections.Score != 67 {
		t.Errorf("sections = %d, want 67 for two of three", report.Breakdown.Sections.Score)
	}
	if report.Breakdown.Contact.Score != 33 {
		t.Errorf("contact = %d, want 33 for one of three", report.Breakdown.Contact.Score)
	}
}

func TestMissingLinkedInIsHighPriority(t *testing.T) {
	tree := buildTree(t, &canvas.Document{
		Elements: []canvas.Element{
			{ID: "contact", Content: "ada@example.com | 555-123-4567", Y: 0},
		},
	})
	report := Score(tree, "", DefaultConfig())

	found := false
	for _, s := range report.Suggestions {
		if s.Category == "contact" && strings.Contains(s.Message, "LinkedIn") {
			found = true
			if s.Priority != PriorityHigh {
				t.Errorf("LinkedIn suggestion priority = %q, want high", s.Priority)
			}
		}
	}
	if !found {
		t.Fatal("expected a suggestion for the missing LinkedIn profile")
	}
}

func TestScoreSectionAliases(t *testing.T) {
	tests := []struct {
		name  string
		title string
		found bool
	}{
		{"canonical", "Experience", true},
		{"alias", "Work History", true},
		{"case insensitive", "PROFESSIONAL BACKGROUND", true},
		{"substring", "My Career So Far", true},
		{"unrelated", "Hobbies", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := buildTree(t, &canvas.Document{
				Sections: []canvas.Section{{ID: "s1", Title: tt.title}},
			})
			report := Score(tree, "", DefaultConfig())

			hasEvidence := false
			for _, ev := range report.Breakdown.Sections.Evidence {
				if ev == "found experience" {
					hasEvidence = true
				}
			}
			if hasEvidence != tt.found {
				t.Errorf("experience found = %v, want %v", hasEvidence, tt.found)
			}
		})
	}
}

func TestScoreUnsafeFonts(t *testing.T) {
	tree := buildTree(t, &canvas.Document{
		Elements: []canvas.Element{
			{ID: "e1", Content: "one", Style: canvas.Style{FontFamily: "Arial"}},
			{ID: "e2", Content: "two", Style: canvas.Style{FontFamily: "Comic Sans MS"}},
		},
	})
	report := Score(tree, "", DefaultConfig())

	if report.Breakdown.Fonts.Score != 50 {
		t.Errorf("fonts = %d, want 50 for one safe of two", report.Breakdown.Fonts.Score)
	}

	found := false
	for _, s := range report.Suggestions {
		if s.Category == "fonts" && strings.Contains(s.Message, "comic sans ms") {
			found = true
		}
	}
	if !found {
		t.Error("expected a font suggestion naming the unsafe family")
	}
}

func TestScoreFormattingPenalties(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		doc  *canvas.Document
		want int
	}{
		{
			name: "image penalty",
			doc: &canvas.Document{
				Elements: []canvas.Element{{ID: "img", Type: canvas.ElementImage}},
			},
			want: 100 - cfg.PenaltyImage - cfg.PenaltyWordCount,
		},
		{
			name: "complex layout penalty",
			doc: &canvas.Document{
				Sections: []canvas.Section{{
					ID:          "cols",
					Title:       "Columns",
					ContentType: canvas.ContentListSections,
					Direction:   canvas.DirectionHorizontal,
				}},
			},
			want: 100 - cfg.PenaltyComplexLayout - cfg.PenaltyWordCount,
		},
		{
			name: "decorative punctuation penalty",
			doc: &canvas.Document{
				Elements: []canvas.Element{{ID: "e1", Content: strings.Repeat("★", 20)}},
			},
			want: 100 - cfg.PenaltyPunctuation - cfg.PenaltyWordCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Score(buildTree(t, tt.doc), "", cfg)
			if got := report.Breakdown.Formatting.Score; got != tt.want {
				t.Errorf("formatting = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreKeywordCap(t *testing.T) {
	// More hits than 100/KeywordPoints still caps the sub-score at 100.
	all := make([]string, 0)
	for _, kws := range actionKeywords {
		all = append(all, kws...)
	}
	tree := buildTree(t, &canvas.Document{
		Elements: []canvas.Element{{ID: "e1", Content: strings.Join(all, " ")}},
	})

	report := Score(tree, "", DefaultConfig())
	if report.Breakdown.Keywords.Score != 100 {
		t.Errorf("keywords = %d, want capped at 100", report.Breakdown.Keywords.Score)
	}
}

func TestMissingJobKeywords(t *testing.T) {
	job := strings.Repeat("kubernetes ", 5) + strings.Repeat("terraform ", 3) + "the and for with"

	report := Score(strongResume(t), job, DefaultConfig())

	if len(report.MissingKeywords) != 2 {
		t.Fatalf("missing = %v, want [kubernetes terraform]", report.MissingKeywords)
	}
	if report.MissingKeywords[0] != "kubernetes" || report.MissingKeywords[1] != "terraform" {
		t.Errorf("missing = %v, want frequency order [kubernetes terraform]", report.MissingKeywords)
	}

	found := false
	for _, s := range report.Suggestions {
		if s.Category == "keywords" && strings.Contains(s.Message, "kubernetes") {
			found = true
		}
	}
	if !found {
		t.Error("expected a suggestion for the missing job keyword")
	}
}

func TestMissingJobKeywordsIgnoresShortAndStopWords(t *testing.T) {
	report := Score(strongResume(t), "go sql required preferred strong ability", DefaultConfig())
	if len(report.MissingKeywords) != 0 {
		t.Errorf("missing = %v, want none from short and stop words", report.MissingKeywords)
	}
}

func TestSuggestionOrdering(t *testing.T) {
	report := Score(&layout.Tree{}, "", DefaultConfig())

	rank := map[Priority]int{PriorityHigh: 0, PriorityMedium: 1, PriorityLow: 2}
	for i := 1; i < len(report.Suggestions); i++ {
		if rank[report.Suggestions[i-1].Priority] > rank[report.Suggestions[i].Priority] {
			t.Fatalf("suggestions out of priority order at %d: %+v", i, report.Suggestions)
		}
	}
}
