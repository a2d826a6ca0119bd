// Seeder populates a database with sample questions for local development.
// It uses a deterministic in-process embedder, so no embedding service is
// needed; reindex against a real model before judging search quality.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/examtrail/qbank"
	"github.com/examtrail/qbank/ai/mock"
	"github.com/examtrail/qbank/core"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func sampleQuestions() []*core.Question {
	difficulty := func(score float64) *core.Tier0Classification {
		return &core.Tier0Classification{DifficultyScore: &score}
	}
	tags := func(topic string, concepts ...string) *core.Tier1CoreResearch {
		tagged := make([]core.ConceptTag, len(concepts))
		for i, name := range concepts {
			tagged[i] = core.ConceptTag{Name: name}
		}
		return &core.Tier1CoreResearch{
			HierarchicalTags: &core.HierarchicalTags{
				Topic:    &core.TagNode{Name: topic},
				Concepts: tagged,
			},
		}
	}
	keywords := func(words ...string) *core.Tier3EnhancedLearning {
		return &core.Tier3EnhancedLearning{SearchKeywords: words}
	}

	return []*core.Question{
		{
			ExternalId:   "GATE_AE_2008_Q01",
			ExamName:     "GATE Aerospace",
			Subject:      "Aerospace Engineering",
			Year:         2008,
			Number:       1,
			Text:         "An aircraft generates lift primarily due to the pressure difference between the upper and lower surfaces of the wing.",
			QuestionType: core.QuestionTypeMCQ,
			Marks:        1,
			AnswerKey:    "A",
			Options: map[string]string{
				"A": "Pressure difference across the wing",
				"B": "Engine thrust alone",
				"C": "Gravity",
				"D": "Air density",
			},
			Tier0: difficulty(3),
			Tier1: tags("Aerodynamics", "Lift Generation", "Bernoulli Principle"),
			Tier3: keywords("lift", "airfoil", "pressure distribution"),
		},
		{
			ExternalId:   "GATE_AE_2015_Q02",
			ExamName:     "GATE Aerospace",
			Subject:      "Aerospace Engineering",
			Year:         2015,
			Number:       2,
			Text:         "A cantilever beam of length L carries a point load P at the free end. The maximum bending moment at the fixed end is PL.",
			QuestionType: core.QuestionTypeNAT,
			Marks:        2,
			AnswerKey:    "PL",
			Tier0:        difficulty(6),
			Tier1:        tags("Structures", "Bending Moment", "Cantilever Beam"),
			Tier3:        keywords("bending moment", "cantilever", "point load"),
		},
		{
			ExternalId:   "GATE_AE_2015_Q07",
			ExamName:     "GATE Aerospace",
			Subject:      "Aerospace Engineering",
			Year:         2015,
			Number:       7,
			Text:         "For an ideal ramjet engine, the thrust per unit mass flow rate increases with flight Mach number up to a limit.",
			QuestionType: core.QuestionTypeMCQ,
			Marks:        2,
			AnswerKey:    "B",
			Tier0:        difficulty(8),
			Tier1:        tags("Propulsion", "Ramjet", "Thrust"),
			Tier3:        keywords("ramjet", "specific thrust", "mach number"),
		},
		{
			ExternalId:   "GATE_AE_2020_Q11",
			ExamName:     "GATE Aerospace",
			Subject:      "Aerospace Engineering",
			Year:         2020,
			Number:       11,
			Text:         "The phugoid mode of an aircraft is a lightly damped oscillation involving exchange between kinetic and potential energy.",
			QuestionType: core.QuestionTypeMCQ,
			Marks:        1,
			AnswerKey:    "C",
			Tier0:        difficulty(5),
			Tier1:        tags("Flight Mechanics", "Phugoid Mode", "Longitudinal Stability"),
			Tier3:        keywords("phugoid", "dynamic stability", "oscillation"),
		},
	}
}

func main() {
	dbPath := flag.String("db", "./qbank_db", "Path to BadgerDB database directory")
	flag.Parse()

	db, err := qbank.NewDatabase(*dbPath, qbank.WithProvider(mock.NewProvider()))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewImportPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	report, err := pipeline.Import(context.Background(), sampleQuestions())
	if err != nil {
		panic(err)
	}

	fmt.Printf("Seeded %s: imported %d, skipped %d, failed %d\n",
		*dbPath, report.Imported, report.Skipped, report.Failed)
}
