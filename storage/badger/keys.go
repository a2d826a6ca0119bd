package badger

import (
	"fmt"

	"github.com/examtrail/qbank/core"
)

// Key prefixes for different data types
const (
	questionPrefix    = "questrec"
	questionExtPrefix = "questext"
	searchEntryPrefix = "questsearch"
)

// makeQuestionKey generates a key for a question record by ID.
func makeQuestionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", questionPrefix, id))
}

// makeExternalIDKey generates a key for the external-ID uniqueness index.
// The value stored under it is the question's ID; the key's existence is
// what enforces at-most-one record per external ID.
func makeExternalIDKey(externalID string) []byte {
	return []byte(questionExtPrefix + ":" + externalID)
}

// makeSearchEntryKey generates a key for a question's derived search entry.
func makeSearchEntryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", searchEntryPrefix, id))
}
