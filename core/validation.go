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


package core

import "fmt"

// Accepted question formats. MCQ is multiple choice, NAT is numerical answer.
const (
	QuestionTypeMCQ = "MCQ"
	QuestionTypeNAT = "NAT"
)

// ValidateQuestion validates a Question according to domain rules.
//
// Validation rules:
//   - ExternalId must not be empty
//   - Text must not be empty
//   - Year must lie in [1950, 2100]
//   - QuestionType must be MCQ or NAT
//
// NOT validated (populated at write time by the composer):
//   - SearchContent / SearchVector
//   - Id (derived from ExternalId by the repository)
func ValidateQuestion(q *Question) error {
	if q == nil {
		return fmt.Errorf("%w: question is nil", ErrInvalidQuestion)
	}

	if q.ExternalId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuestion, ErrEmptyExternalId)
	}

	if q.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuestion, ErrEmptyText)
	}

	if q.Year < 1950 || q.Year > 2100 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidQuestion, ErrInvalidYear, q.Year)
	}

	if err := ValidateQuestionType(q.QuestionType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuestion, err)
	}

	return nil
}

// ValidateQuestionType validates that a question type has a known value.
func ValidateQuestionType(questionType string) error {
	if questionType != QuestionTypeMCQ && questionType != QuestionTypeNAT {
		return fmt.Errorf("%w: %q", ErrInvalidQuestionType, questionType)
	}
	return nil
}
