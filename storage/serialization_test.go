package storage

import (
	"testing"

	"github.com/examtrail/qbank/core"
)

func TestIDRoundTrip(t *testing.T) {
	ids := []core.ID{0, 1, core.IDFromContent("GATE_AE_2008_Q01")}

	for _, id := range ids {
		data := MarshalID(id)
		got, err := UnmarshalID(data)
		if err != nil {
			t.Fatalf("UnmarshalID failed: %v", err)
		}
		if got != id {
			t.Fatalf("ID round trip mismatch: got %d, want %d", got, id)
		}
	}
}

func TestUnmarshalID_Truncated(t *testing.T) {
	if _, err := UnmarshalID([]byte{}); err == nil {
		t.Fatal("Expected error for empty input")
	}
}

func TestQuestionRoundTrip(t *testing.T) {
	score := 6.5
	q := &core.Question{
		Id:           core.IDFromContent("GATE_AE_2008_Q01"),
		ExternalId:   "GATE_AE_2008_Q01",
		ExamName:     "GATE",
		Subject:      "Aerospace Engineering",
		Year:         2008,
		Number:       1,
		Text:         "Calculate lift coefficient for NACA airfoil",
		QuestionType: core.QuestionTypeMCQ,
		Marks:        2,
		AnswerKey:    "B",
		Options:      map[string]string{"A": "0.2", "B": "0.4"},
		Tier0: &core.Tier0Classification{
			DifficultyScore: &score,
			ContentType:     "numerical",
		},
		Tier1: &core.Tier1CoreResearch{
			HierarchicalTags: &core.HierarchicalTags{
				Topic: &core.TagNode{Name: "Aerodynamics"},
				Concepts: []core.ConceptTag{
					{Name: "Lift Coefficient", Importance: "high"},
				},
			},
			Explanation: &core.Explanation{
				QuestionNature: "Application of thin airfoil theory",
				StepByStep:     []string{"Identify the airfoil", "Apply CL formula"},
			},
		},
		Tier3: &core.Tier3EnhancedLearning{
			SearchKeywords: []string{"lift", "NACA", "airfoil"},
		},
		SearchContent: "Calculate lift coefficient for NACA airfoil | 2008 | GATE | Aerodynamics",
		SearchVector:  []float32{0.6, 0.8, 0.0},
	}

	data, err := MarshalQuestion(q)
	if err != nil {
		t.Fatalf("MarshalQuestion failed: %v", err)
	}

	got, err := UnmarshalQuestion(data)
	if err != nil {
		t.Fatalf("UnmarshalQuestion failed: %v", err)
	}

	if got.ExternalId != q.ExternalId || got.Year != q.Year {
		t.Fatalf("Identity fields mismatch: %+v", got)
	}
	if got.Tier0 == nil || got.Tier0.DifficultyScore == nil || *got.Tier0.DifficultyScore != 6.5 {
		t.Fatal("Tier 0 difficulty score lost in round trip")
	}
	if got.Tier1 == nil || got.Tier1.HierarchicalTags == nil ||
		got.Tier1.HierarchicalTags.Topic == nil ||
		got.Tier1.HierarchicalTags.Topic.Name != "Aerodynamics" {
		t.Fatal("Tier 1 topic lost in round trip")
	}
	if got.Tier2 != nil || got.Tier4 != nil {
		t.Fatal("Absent tiers should stay absent")
	}
	if len(got.SearchVector) != 3 || got.SearchVector[1] != 0.8 {
		t.Fatalf("Search vector mismatch: %v", got.SearchVector)
	}
}

func TestUnmarshalQuestion_Invalid(t *testing.T) {
	if _, err := UnmarshalQuestion([]byte("{not json")); err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
}

func TestSearchEntryRoundTrip(t *testing.T) {
	entry := &core.SearchEntry{
		Id:           core.IDFromContent("GATE_AE_2008_Q01"),
		Year:         2008,
		Number:       1,
		Subject:      "Aerospace Engineering",
		QuestionType: core.QuestionTypeMCQ,
		Content:      "Calculate lift coefficient for NACA airfoil | 2008 | GATE",
		Vector:       []float32{0.6, 0.8, 0.0},
	}

	data := MarshalSearchEntry(entry)
	got, err := UnmarshalSearchEntry(data)
	if err != nil {
		t.Fatalf("UnmarshalSearchEntry failed: %v", err)
	}

	if got.Id != entry.Id || got.Year != entry.Year || got.Number != entry.Number {
		t.Fatalf("Scalar fields mismatch: %+v", got)
	}
	if got.Subject != entry.Subject || got.QuestionType != entry.QuestionType {
		t.Fatalf("Facet fields mismatch: %+v", got)
	}
	if got.Content != entry.Content {
		t.Fatalf("Content mismatch: %q", got.Content)
	}
	if len(got.Vector) != 3 || got.Vector[0] != 0.6 {
		t.Fatalf("Vector mismatch: %v", got.Vector)
	}
}

func TestSearchEntryRoundTrip_EmptyVector(t *testing.T) {
	entry := &core.SearchEntry{
		Id:      1,
		Year:    2015,
		Content: "",
	}

	got, err := UnmarshalSearchEntry(MarshalSearchEntry(entry))
	if err != nil {
		t.Fatalf("UnmarshalSearchEntry failed: %v", err)
	}
	if len(got.Vector) != 0 {
		t.Fatalf("Expected empty vector, got %v", got.Vector)
	}
}
