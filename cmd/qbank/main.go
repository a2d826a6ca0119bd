// Copyright 2025 Examtrail
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/examtrail/qbank"
	"github.com/examtrail/qbank/ai"
	"github.com/examtrail/qbank/ai/openai"
	"github.com/examtrail/qbank/core"
	"github.com/examtrail/qbank/ingestion"
	"github.com/examtrail/qbank/reindex"
	"github.com/examtrail/qbank/search"
	"github.com/examtrail/qbank/storage/badger"
)

func main() {
	// Optional .env file for embedding host/model settings.
	godotenv.Load()

	app := &cli.App{
		Name:  "qbank",
		Usage: "Question bank with hybrid semantic and lexical search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Import questions from a JSON file",
				Action: importCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to JSON file containing an array of questions",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search questions",
				ArgsUsage: "[query]",
				Action:    searchCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "year",
						Usage: "Filter by exam year",
					},
					&cli.StringFlag{
						Name:  "years",
						Usage: "Filter by a comma-separated list of exam years",
					},
					&cli.StringFlag{
						Name:  "subject",
						Usage: "Filter by subject (case-insensitive substring)",
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Filter by question type (MCQ or NAT)",
					},
					&cli.IntFlag{
						Name:  "page",
						Usage: "Page number",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "page-size",
						Usage: "Results per page",
						Value: search.DefaultPageSize,
					},
				),
			},
			{
				Name:      "suggest",
				Usage:     "Suggest search terms for a partial query",
				ArgsUsage: "<partial>",
				Action:    suggestCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of suggestions",
						Value: search.DefaultSuggestionLimit,
					},
				),
			},
			{
				Name:   "filters",
				Usage:  "List available filter values",
				Action: filtersCommand,
				Flags:  commonFlags(),
			},
			{
				Name:   "stats",
				Usage:  "Show question counts",
				Action: statsCommand,
				Flags:  dbFlag(),
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild search content and embeddings for all questions",
				Action: reindexCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of questions to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N questions",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
			EnvVars:  []string{"QBANK_DB"},
		},
	}
}

func commonFlags() []cli.Flag {
	return append(dbFlag(),
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"QBANK_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "bge-small-en-v1.5",
			EnvVars: []string{"QBANK_EMBEDDING_MODEL"},
		},
	)
}

func openDatabase(c *cli.Context) (*qbank.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := qbank.NewDatabase(c.String("db"), qbank.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var questions []*core.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return fmt.Errorf("failed to parse input file: %w", err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []ingestion.Option
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingestion.WithPoolSize(size))
	}

	pipeline, err := db.NewImportPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create import pipeline: %w", err)
	}
	defer pipeline.Release()

	fmt.Fprintf(os.Stderr, "Importing %d questions from %s\n", len(questions), c.String("file"))

	report, err := pipeline.Import(ctx, questions)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported: %d, Skipped: %d, Failed: %d\n",
		report.Imported, report.Skipped, report.Failed)
	for _, failure := range report.Failures {
		fmt.Printf("  %s: %v\n", failure.ExternalId, failure.Err)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d questions failed to import", report.Failed)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	filters := &core.SearchFilters{
		Year:         c.Int("year"),
		Years:        search.ParseYears(c.String("years")),
		Subject:      c.String("subject"),
		QuestionType: c.String("type"),
	}

	query := strings.Join(c.Args().Slice(), " ")
	page, err := searcher.Search(ctx, query, filters, c.Int("page"), c.Int("page-size"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d questions (page %d, showing %d)\n", page.Total, page.Page, len(page.Results))
	for _, result := range page.Results {
		s := result.Summary
		if result.Ranked {
			fmt.Printf("[%0.3f] %s (%d Q%d, %s, %s)\n", result.Score, s.ExternalId, s.Year, s.Number, s.QuestionType, s.DifficultyLevel)
		} else {
			fmt.Printf("%s (%d Q%d, %s, %s)\n", s.ExternalId, s.Year, s.Number, s.QuestionType, s.DifficultyLevel)
		}
		fmt.Printf("  %s\n", firstLine(s.Text))
		if s.Topic != "" {
			fmt.Printf("  Topic: %s\n", s.Topic)
		}
	}
	return nil
}

func suggestCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() < 1 {
		return fmt.Errorf("partial query argument is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	terms, err := searcher.Suggest(ctx, strings.Join(c.Args().Slice(), " "), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	for _, term := range terms {
		fmt.Println(term)
	}
	return nil
}

func filtersCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	options, err := searcher.FilterOptions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list filter options: %w", err)
	}

	fmt.Printf("Years: %v\n", options.Years)
	fmt.Printf("Subjects: %v\n", options.Subjects)
	fmt.Printf("Question types: %v\n", options.QuestionTypes)

	tree, err := searcher.SyllabusTree(ctx)
	if err != nil {
		return fmt.Errorf("failed to build syllabus tree: %w", err)
	}
	subjects := make([]string, 0, len(tree))
	for subject := range tree {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	for _, subject := range subjects {
		fmt.Printf("%s:\n", subject)
		for _, topic := range tree[subject] {
			fmt.Printf("  %s\n", topic)
		}
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	// Stats don't need an embedder, open the storage directly.
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewQuestionRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	total, err := repo.CountQuestions(ctx)
	if err != nil {
		return fmt.Errorf("failed to count questions: %w", err)
	}

	byYear, err := repo.YearCounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count questions by year: %w", err)
	}

	fmt.Printf("Total questions: %d\n", total)

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	for _, year := range years {
		fmt.Printf("  %d: %d\n", year, byYear[year])
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewQuestionRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reindexConfig := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if reindexConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reindexConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reindexConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reindexer, err := reindex.NewReindexer(repo, embedder, reindexConfig, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create reindexer: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reindexer.Run(ctx); err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}
	return nil
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	const max = 120
	if runes := []rune(text); len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return text
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
