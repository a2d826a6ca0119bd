package search

import (
	"testing"

	"github.com/examtrail/qbank/core"
)

func TestParseYears(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []int
	}{
		{"single", "2008", []int{2008}},
		{"multiple", "2008,2015", []int{2008, 2015}},
		{"whitespace", " 2008 , 2015 ", []int{2008, 2015}},
		{"empty entries skipped", "2008,,2015,", []int{2008, 2015}},
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"malformed entry invalidates list", "2008,twenty15", nil},
		{"non-numeric", "abc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseYears(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseYears(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseYears(%q)[%d] = %d, want %d", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMatchesFilters(t *testing.T) {
	entry := &core.SearchEntry{
		Id:           1,
		Year:         2008,
		Number:       1,
		Subject:      "Aerospace Engineering",
		QuestionType: core.QuestionTypeMCQ,
	}

	tests := []struct {
		name    string
		filters *core.SearchFilters
		want    bool
	}{
		{"nil filters", nil, true},
		{"empty filters", &core.SearchFilters{}, true},
		{"year match", &core.SearchFilters{Year: 2008}, true},
		{"year mismatch", &core.SearchFilters{Year: 2015}, false},
		{"years contains", &core.SearchFilters{Years: []int{2007, 2008}}, true},
		{"years excludes", &core.SearchFilters{Years: []int{2014, 2015}}, false},
		{"subject substring case-insensitive", &core.SearchFilters{Subject: "aerospace"}, true},
		{"subject mismatch", &core.SearchFilters{Subject: "civil"}, false},
		{"type exact", &core.SearchFilters{QuestionType: core.QuestionTypeMCQ}, true},
		{"type mismatch", &core.SearchFilters{QuestionType: core.QuestionTypeNAT}, false},
		{"all active all match", &core.SearchFilters{Year: 2008, Subject: "Aerospace", QuestionType: core.QuestionTypeMCQ}, true},
		{"all active one mismatch", &core.SearchFilters{Year: 2008, Subject: "Aerospace", QuestionType: core.QuestionTypeNAT}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesFilters(entry, tt.filters); got != tt.want {
				t.Errorf("matchesFilters = %v, want %v", got, tt.want)
			}
		})
	}
}
