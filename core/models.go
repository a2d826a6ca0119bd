package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Question IDs are derived from the external identifier so that repeated
// imports of the same question map to the same record.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Question is a stored exam question together with its AI-generated metadata
// tiers and the derived search fields.
//
// SearchContent and SearchVector are derived from the other fields at write
// time and are always updated together: whenever the source fields change,
// both are recomputed before the record is persisted. They are never computed
// lazily at query time.
type Question struct {
	Id         ID     `json:"id"`
	ExternalId string `json:"question_id"` // e.g. GATE_AE_2008_Q01, unique
	ExamName   string `json:"exam_name"`
	Subject    string `json:"subject"`
	Year       int    `json:"year"`
	Number     int    `json:"question_number"`

	Text         string  `json:"question_text"`
	TextLatex    string  `json:"question_text_latex,omitempty"`
	QuestionType string  `json:"question_type"` // MCQ or NAT
	Marks        float64 `json:"marks"`
	NegativeMark float64 `json:"negative_marks"`

	Options   map[string]string `json:"options,omitempty"`
	AnswerKey string            `json:"answer_key"`

	HasImage      bool           `json:"has_question_image"`
	ImageMetadata map[string]any `json:"image_metadata,omitempty"`

	// Metadata tiers. Each tier is independently optional, and every field
	// inside a tier may be absent.
	Tier0 *Tier0Classification   `json:"tier_0_classification,omitempty"`
	Tier1 *Tier1CoreResearch     `json:"tier_1_core_research,omitempty"`
	Tier2 *Tier2StudentLearning  `json:"tier_2_student_learning,omitempty"`
	Tier3 *Tier3EnhancedLearning `json:"tier_3_enhanced_learning,omitempty"`
	Tier4 *Tier4Metadata         `json:"tier_4_metadata,omitempty"`

	// Derived search fields, see above.
	SearchContent string    `json:"search_content,omitempty"`
	SearchVector  []float32 `json:"search_vector,omitempty"`

	InsertedAt time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SearchEntry is the compact per-question index record the ranker scans.
// It carries everything candidate scoring and filtering needs, so full
// question documents are only decoded for the page that is returned.
type SearchEntry struct {
	Id           ID
	Year         int
	Number       int
	Subject      string
	QuestionType string
	Content      string
	Vector       []float32
}

// SearchFilters narrows a search to structured facets. Zero values mean
// "no filter". All active filters are combined as a conjunction.
type SearchFilters struct {
	Year         int
	Years        []int
	Subject      string // case-insensitive substring match
	QuestionType string // exact match
}

// Empty reports whether no filter is active.
func (f *SearchFilters) Empty() bool {
	return f == nil ||
		(f.Year == 0 && len(f.Years) == 0 && f.Subject == "" && f.QuestionType == "")
}

// DifficultyLevel buckets a 1-10 difficulty score into a display label.
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "Easy"
	DifficultyMedium DifficultyLevel = "Medium"
	DifficultyHard   DifficultyLevel = "Hard"
)

// DifficultyLevelFromScore maps a numeric difficulty score to a level.
// Scores <= 4 are Easy, scores >= 8 are Hard, everything else (including an
// absent score) is Medium.
func DifficultyLevelFromScore(score *float64) DifficultyLevel {
	if score == nil {
		return DifficultyMedium
	}
	switch {
	case *score <= 4:
		return DifficultyEasy
	case *score >= 8:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// QuestionSummary is the lightweight projection returned from search:
// truncated text, extracted topic and leading concepts, the tier-1
// explanation block and a derived difficulty label.
type QuestionSummary struct {
	Id              ID
	ExternalId      string
	Year            int
	Number          int
	Subject         string
	Text            string
	TextLatex       string
	QuestionType    string
	Marks           float64
	DifficultyScore *float64
	DifficultyLevel DifficultyLevel
	Topic           string
	Concepts        []string
	Options         map[string]string
	AnswerKey       string
	Explanation     *Explanation
}

// SearchResult is a single search hit. Ranked distinguishes the two result
// shapes: hits from a ranked query carry a relevance score, browse-mode hits
// do not (Score is zero and meaningless when Ranked is false).
type SearchResult struct {
	Summary *QuestionSummary
	Score   float64
	Ranked  bool
}

// SearchPage is one page of search results together with the total number of
// matches before pagination.
type SearchPage struct {
	Query    string
	Total    int
	Page     int
	PageSize int
	Results  []*SearchResult
}

// FilterOptions enumerates distinct facet values for UI filter population.
// Topics and Concepts are not yet extracted from the tier metadata and are
// always empty; they are kept in the shape for forward compatibility.
type FilterOptions struct {
	Years         []int
	Subjects      []string
	QuestionTypes []string
	Topics        []string
	Concepts      []string
}
