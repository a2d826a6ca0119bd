package core

// The five metadata tiers attached to a question. Tiers arrive as
// semi-structured JSON documents produced by a multi-model enrichment
// pipeline: every field at every nesting level may be absent, so everything
// below is pointer- or slice-typed. Extraction code must nil-check each
// level rather than assume a populated path.

// Tier0Classification holds routing and difficulty classification.
type Tier0Classification struct {
	ContentType              string           `json:"content_type,omitempty"`
	MediaType                string           `json:"media_type,omitempty"`
	DifficultyScore          *float64         `json:"difficulty_score,omitempty"`
	ComplexityFlags          *ComplexityFlags `json:"complexity_flags,omitempty"`
	ClassificationConfidence *float64         `json:"classification_confidence,omitempty"`
	ClassificationReasoning  string           `json:"classification_reasoning,omitempty"`
	CombinedType             string           `json:"combined_type,omitempty"`
	WeightStrategy           string           `json:"weight_strategy,omitempty"`
	ClassificationMethod     string           `json:"classification_method,omitempty"`
	ClassifierModel          string           `json:"classifier_model,omitempty"`
}

// ComplexityFlags mark structural properties that drove classification.
type ComplexityFlags struct {
	RequiresDerivation        bool `json:"requires_derivation,omitempty"`
	MultiConceptIntegration   bool `json:"multi_concept_integration,omitempty"`
	AmbiguousWording          bool `json:"ambiguous_wording,omitempty"`
	ImageInterpretationComplex bool `json:"image_interpretation_complex,omitempty"`
	EdgeCaseScenario          bool `json:"edge_case_scenario,omitempty"`
	MultiStepReasoning        bool `json:"multi_step_reasoning,omitempty"`
	ApproximationNeeded       bool `json:"approximation_needed,omitempty"`
}

// Tier1CoreResearch is the primary research tier: hierarchical topic/concept
// tags, the worked explanation and supporting references. The search layer
// reads HierarchicalTags and Explanation; the rest is carried as payload.
type Tier1CoreResearch struct {
	AnswerValidation  *AnswerValidation   `json:"answer_validation,omitempty"`
	Explanation       *Explanation        `json:"explanation,omitempty"`
	HierarchicalTags  *HierarchicalTags   `json:"hierarchical_tags,omitempty"`
	Prerequisites     *Prerequisites      `json:"prerequisites,omitempty"`
	DifficultyAnalysis map[string]any     `json:"difficulty_analysis,omitempty"`
	TextbookReferences []TextbookReference `json:"textbook_references,omitempty"`
	VideoReferences   []VideoReference    `json:"video_references,omitempty"`
	FormulasPrinciples []Formula          `json:"formulas_principles,omitempty"`
}

// AnswerValidation records model consensus on the answer key.
type AnswerValidation struct {
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	IsCorrect     *bool    `json:"is_correct,omitempty"`
	Confidence    *float64 `json:"confidence,omitempty"`
	Reasoning     string   `json:"reasoning,omitempty"`
}

// Explanation is the worked explanation block surfaced in search results.
type Explanation struct {
	QuestionNature       string   `json:"question_nature,omitempty"`
	StepByStep           []string `json:"step_by_step,omitempty"`
	FormulasUsed         []string `json:"formulas_used,omitempty"`
	EstimatedTimeMinutes *float64 `json:"estimated_time_minutes,omitempty"`
}

// HierarchicalTags is the topic hierarchy: Subject -> Topic -> Concepts.
// It is read-only input to search and never mutated by the ranker.
type HierarchicalTags struct {
	Subject  *TagNode     `json:"subject,omitempty"`
	Topic    *TagNode     `json:"topic,omitempty"`
	Concepts []ConceptTag `json:"concepts,omitempty"`
}

// TagNode is a named node in the tag hierarchy.
type TagNode struct {
	Name string `json:"name,omitempty"`
}

// ConceptTag is a single tagged concept with model agreement metadata.
type ConceptTag struct {
	Name       string `json:"name,omitempty"`
	Importance string `json:"importance,omitempty"`
	Consensus  string `json:"consensus,omitempty"`
}

// Prerequisites lists concepts a student should know beforehand.
type Prerequisites struct {
	Essential []string `json:"essential,omitempty"`
	Helpful   []string `json:"helpful,omitempty"`
}

// TextbookReference points into standard course literature.
type TextbookReference struct {
	Book           string   `json:"book,omitempty"`
	Author         string   `json:"author,omitempty"`
	ChapterTitle   string   `json:"chapter_title,omitempty"`
	Section        string   `json:"section,omitempty"`
	PageRange      string   `json:"page_range,omitempty"`
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// VideoReference points to recorded lecture material.
type VideoReference struct {
	Professor      string   `json:"professor,omitempty"`
	VideoURL       string   `json:"video_url,omitempty"`
	TopicCovered   string   `json:"topic_covered,omitempty"`
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// Formula is a formula or principle exercised by the question.
type Formula struct {
	Formula    string `json:"formula,omitempty"`
	Name       string `json:"name,omitempty"`
	Conditions string `json:"conditions,omitempty"`
	Type       string `json:"type,omitempty"`
}

// Tier2StudentLearning carries study aids.
type Tier2StudentLearning struct {
	CommonMistakes []CommonMistake `json:"common_mistakes,omitempty"`
	Mnemonics      []Mnemonic      `json:"mnemonics_memory_aids,omitempty"`
	Flashcards     []Flashcard     `json:"flashcards,omitempty"`
	ExamStrategy   *ExamStrategy   `json:"exam_strategy,omitempty"`
}

// CommonMistake describes an error students typically make.
type CommonMistake struct {
	Mistake    string `json:"mistake,omitempty"`
	Why        string `json:"why_students_make_it,omitempty"`
	Severity   string `json:"severity,omitempty"`
	HowToAvoid string `json:"how_to_avoid,omitempty"`
}

// Mnemonic is a memory aid tied to a concept.
type Mnemonic struct {
	Mnemonic string `json:"mnemonic,omitempty"`
	Concept  string `json:"concept,omitempty"`
}

// Flashcard is a front/back study card.
type Flashcard struct {
	CardType string `json:"card_type,omitempty"`
	Front    string `json:"front,omitempty"`
	Back     string `json:"back,omitempty"`
}

// ExamStrategy captures priority and time-management advice.
type ExamStrategy struct {
	Priority       string `json:"priority,omitempty"`
	TriageTip      string `json:"triage_tip,omitempty"`
	TimeManagement string `json:"time_management,omitempty"`
}

// Tier3EnhancedLearning carries search keywords and enrichment links.
// SearchKeywords feed both the content soup and autocomplete suggestions.
type Tier3EnhancedLearning struct {
	SearchKeywords     []string            `json:"search_keywords,omitempty"`
	AlternativeMethods []AlternativeMethod `json:"alternative_methods,omitempty"`
	Connections        map[string]any      `json:"connections_to_other_subjects,omitempty"`
	DeeperDiveTopics   []string            `json:"deeper_dive_topics,omitempty"`
}

// AlternativeMethod describes another way to solve the question.
type AlternativeMethod struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	WhenToUse   string `json:"when_to_use,omitempty"`
}

// Tier4Metadata records provenance and cost of the enrichment run.
type Tier4Metadata struct {
	ModelsUsed      []string           `json:"models_used,omitempty"`
	PipelineVersion string             `json:"pipeline_version,omitempty"`
	QualityScore    *QualityScore      `json:"quality_score,omitempty"`
	TotalCost       *float64           `json:"total_cost,omitempty"`
	Currency        string             `json:"currency,omitempty"`
	CostPerModel    map[string]float64 `json:"cost_per_model,omitempty"`
	TotalTokens     *int               `json:"total_tokens,omitempty"`
	Timestamp       string             `json:"timestamp,omitempty"`
}

// QualityScore is the aggregate quality assessment of the enrichment.
type QualityScore struct {
	Overall *float64           `json:"overall,omitempty"`
	Band    string             `json:"band,omitempty"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}
