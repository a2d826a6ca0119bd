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

import "errors"

// Domain validation errors
var (
	// ErrInvalidQuestion indicates a Question failed validation.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrEmptyExternalId indicates the ExternalId field is empty.
	ErrEmptyExternalId = errors.New("question id cannot be empty")

	// ErrEmptyText indicates the question text is empty.
	ErrEmptyText = errors.New("question text cannot be empty")

	// ErrInvalidYear indicates the year is outside the plausible exam range.
	ErrInvalidYear = errors.New("invalid exam year")

	// ErrInvalidQuestionType indicates an unknown question type value.
	ErrInvalidQuestionType = errors.New("invalid question type")
)
