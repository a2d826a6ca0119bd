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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/examtrail/qbank/core"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalQuestion serializes a Question document to JSON bytes.
// JSON keeps the optional-field semantics of the metadata tiers intact.
func MarshalQuestion(question *core.Question) ([]byte, error) {
	data, err := json.Marshal(question)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalQuestion deserializes a Question document from JSON bytes.
func UnmarshalQuestion(data []byte) (*core.Question, error) {
	var question core.Question
	if err := json.Unmarshal(data, &question); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &question, nil
}

// vectorMUS encodes embedding vectors as a length-prefixed float32 slice.
var vectorMUS = ord.NewSliceSer[float32](varint.Float32)

// SearchEntryMUS is the MUS serializer for core.SearchEntry. Entries are
// written on every add/update and scanned on every ranked search, so the
// compact binary encoding matters more here than for the JSON documents.
var SearchEntryMUS = searchEntrySer{}

type searchEntrySer struct{}

func (searchEntrySer) Marshal(e core.SearchEntry, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(e.Id), bs)
	n += varint.Int.Marshal(e.Year, bs[n:])
	n += varint.Int.Marshal(e.Number, bs[n:])
	n += ord.String.Marshal(e.Subject, bs[n:])
	n += ord.String.Marshal(e.QuestionType, bs[n:])
	n += ord.String.Marshal(e.Content, bs[n:])
	n += vectorMUS.Marshal(e.Vector, bs[n:])
	return n
}

func (searchEntrySer) Unmarshal(bs []byte) (e core.SearchEntry, n int, err error) {
	var (
		id uint64
		n1 int
	)
	id, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	e.Id = core.ID(id)

	e.Year, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Number, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Subject, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.QuestionType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (searchEntrySer) Size(e core.SearchEntry) (size int) {
	size = varint.Uint64.Size(uint64(e.Id))
	size += varint.Int.Size(e.Year)
	size += varint.Int.Size(e.Number)
	size += ord.String.Size(e.Subject)
	size += ord.String.Size(e.QuestionType)
	size += ord.String.Size(e.Content)
	size += vectorMUS.Size(e.Vector)
	return size
}

func (s searchEntrySer) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// MarshalSearchEntry serializes a SearchEntry to bytes.
func MarshalSearchEntry(entry *core.SearchEntry) []byte {
	buf := make([]byte, SearchEntryMUS.Size(*entry))
	SearchEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalSearchEntry deserializes a SearchEntry from bytes.
func UnmarshalSearchEntry(data []byte) (*core.SearchEntry, error) {
	entry, _, err := SearchEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &entry, nil
}
