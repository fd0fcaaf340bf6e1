package ats

// Check weights. These and the scoring increments below are heuristic
// constants carried over from the product's tuning; they are exposed through
// Config rather than hard-coded at call sites.
const (
	DefaultSectionsWeight   = 0.25
	DefaultContactWeight    = 0.15
	DefaultFontsWeight      = 0.10
	DefaultKeywordsWeight   = 0.30
	DefaultFormattingWeight = 0.20
)

const (
	// DefaultKeywordPoints is the sub-score contribution of each found
	// keyword, capped at 100.
	DefaultKeywordPoints = 5

	// DefaultJobKeywordCount is how many top-frequency job-description words
	// are reported as missing keywords.
	DefaultJobKeywordCount = 10

	DefaultPunctuationLimit = 10
	DefaultMinWordCount     = 100

	DefaultPenaltyComplexLayout = 10
	DefaultPenaltyImage         = 20
	DefaultPenaltyPunctuation   = 5
	DefaultPenaltyWordCount     = 10
)

// requiredSections maps each required section to the title aliases that count
// as its presence. Matching is a case-insensitive substring test.
var requiredSections = map[string][]string{
	"experience": {"experience", "employment", "work history", "professional background", "career"},
	"education":  {"education", "academic", "degree", "qualification", "studies"},
	"skills":     {"skills", "competencies", "expertise", "technologies", "proficiencies"},
}

// atsSafeFonts is the allow-list of font families standard ATS parsers
// handle reliably. Lowercase for comparison.
var atsSafeFonts = map[string]bool{
	"arial":           true,
	"calibri":         true,
	"cambria":         true,
	"garamond":        true,
	"georgia":         true,
	"helvetica":       true,
	"tahoma":          true,
	"times new roman": true,
	"trebuchet ms":    true,
	"verdana":         true,
}

// actionKeywords are the fixed keyword categories checked against the resume
// text. Each found keyword contributes Config.KeywordPoints to the sub-score.
var actionKeywords = map[string][]string{
	"leadership":     {"led", "managed", "directed", "supervised", "mentored", "coordinated"},
	"achievement":    {"achieved", "increased", "improved", "delivered", "reduced", "exceeded"},
	"technical":      {"developed", "designed", "implemented", "engineered", "built", "automated"},
	"communication":  {"presented", "negotiated", "collaborated", "facilitated", "authored"},
	"analytical":     {"analyzed", "evaluated", "researched", "identified", "optimized"},
	"organizational": {"organized", "planned", "scheduled", "prioritized", "streamlined"},
}

// stopWords are excluded from job-description keyword extraction.
var stopWords = map[string]bool{
	"about": true, "above": true, "after": true, "again": true, "being": true,
	"below": true, "between": true, "could": true, "doing": true, "during": true,
	"further": true, "having": true, "other": true, "should": true,
	"their": true, "there": true, "these": true, "those": true, "through": true,
	"under": true, "until": true, "where": true, "which": true, "while": true,
	"would": true, "years": true, "experience": true, "required": true,
	"preferred": true, "ability": true, "strong": true, "working": true,
	"knowledge": true, "candidate": true, "position": true, "applicant": true,
}

// Config carries the scoring weights and heuristic constants.
type Config struct {
	SectionsWeight   float64
	ContactWeight    float64
	FontsWeight      float64
	KeywordsWeight   float64
	FormattingWeight float64

	KeywordPoints    int
	JobKeywordCount  int
	PunctuationLimit int
	MinWordCount     int

	PenaltyComplexLayout int
	PenaltyImage         int
	PenaltyPunctuation   int
	PenaltyWordCount     int
}

// DefaultConfig returns the stock scoring configuration.
func DefaultConfig() Config {
	return Config{
		SectionsWeight:       DefaultSectionsWeight,
		ContactWeight:        DefaultContactWeight,
		FontsWeight:          DefaultFontsWeight,
		KeywordsWeight:       DefaultKeywordsWeight,
		FormattingWeight:     DefaultFormattingWeight,
		KeywordPoints:        DefaultKeywordPoints,
		JobKeywordCount:      DefaultJobKeywordCount,
		PunctuationLimit:     DefaultPunctuationLimit,
		MinWordCount:         DefaultMinWordCount,
		PenaltyComplexLayout: DefaultPenaltyComplexLayout,
		PenaltyImage:         DefaultPenaltyImage,
		PenaltyPunctuation:   DefaultPenaltyPunctuation,
		PenaltyWordCount:     DefaultPenaltyWordCount,
	}
}
