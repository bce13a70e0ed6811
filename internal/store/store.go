// Package store persists the catalog entities in Postgres. Identifiers
// are store-assigned UUIDs; a string that does not parse as a UUID is
// treated as an unknown id, never as an error.
package store

import (
	"strings"

	"github.com/google/uuid"
)

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func newID() string {
	return uuid.NewString()
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search
// text so the search stays a plain substring match.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
