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


// Package storage defines the persistence interfaces for the question bank
// and the serialization helpers shared by all backends.
//
// Question documents are stored as JSON: the metadata tiers are
// semi-structured by contract and JSON preserves their optional-field
// semantics. The derived search entries the ranker scans are stored
// separately in a compact MUS binary encoding, so candidate scoring never
// pays for decoding full question documents.
//
// The package contains no implementation; see storage/badger for the
// BadgerDB-backed repository.
package storage
