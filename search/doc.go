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


// Package search implements hybrid search and ranking over the question bank.
//
// The Searcher combines two relevance signals for a free-text query:
//
//   - semantic similarity between the query embedding and each question's
//     stored search vector
//   - lexical trigram similarity between the query and the question's
//     derived search content
//
// Candidates must additionally pass a containment gate: the query must
// literally appear (case-insensitively) in the search content or in the
// question's year. The gate trades recall for precision on deliberate
// queries such as typed concept names or years; a pure paraphrase query
// with no lexical overlap returns nothing.
//
// The package also houses the content composer that derives the searchable
// text blob and its embedding at write time, fuzzy autocomplete suggestions
// drawn from stored tier metadata, and the facet catalog backing UI filters.
//
// All operations are stateless reads over current stored data; calls may
// run concurrently without coordination.
package search
