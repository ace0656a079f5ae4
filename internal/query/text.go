package query

import (
	"strings"
	"unicode/utf8"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsFold matches rows whose column contains term, ignoring case.
// LIKE wildcards in term are matched literally.
func ContainsFold(column, term string) Cond {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	return C("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
}

// HasPrefix matches rows whose column starts with prefix, case-sensitively.
// SUBSTR behaves the same on Postgres and SQLite, unlike LIKE.
func HasPrefix(column, prefix string) Cond {
	return C("SUBSTR("+column+", 1, ?) = ?", utf8.RuneCountInString(prefix), prefix)
}
