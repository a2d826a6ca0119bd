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


// Package ai provides abstractions for the AI services used by qbank.
//
// The package defines the interfaces the search layer depends on, keeping
// the ranking logic independent of any concrete embedding backend:
//
//   - Embedder: generates vector embeddings from text
//   - Provider: aggregates AI services for convenient initialization
//
// Two implementation sub-packages exist:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles with no external dependencies
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// interface types to enforce abstraction; mock constructors return concrete
// types so tests can inject behavior and assert call counts.
//
// The embedding model is consumed as an opaque function from text to a
// fixed-dimension unit-norm vector. Vectors are expected pre-normalized so
// cosine distance and dot product are interchangeable downstream.
package ai
