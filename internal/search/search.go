// Package search prepares free-text input for SQLite's FTS5 query language.
//
// FTS5 has its own grammar: AND/OR/NOT connectors, "phrase" quoting, (group)
// parentheses, prefix* and column: operators. User input is never passed to
// MATCH raw. Sanitize strips the grammar's operator characters, and Compile
// rebuilds the query in three tiers with every word double-quoted, so words
// like "and" or "not" stay literal search terms.
package search

import "strings"

// operators are the characters FTS5 assigns meaning to: quoting, grouping,
// prefix/column/NEAR operators and the symbolic boolean connectors. Each
// occurrence is replaced with a space during sanitization.
const operators = "\"()*:^+-~<>&|!"

// Sanitize normalizes raw user input into plain space-separated words.
// Operator characters become spaces, whitespace runs collapse to a single
// space, and the result is trimmed. Sanitize is idempotent; empty,
// whitespace-only and operator-only input all yield "".
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if strings.ContainsRune(operators, r) {
			b.WriteByte(' ')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Query holds the three compiled FTS5 forms of one sanitized term. The tiers
// nest: a phrase match implies an all-terms match, which implies an any-terms
// match, so Any describes the full set of eligible rows.
type Query struct {
	Words  []string
	Phrase string // contiguous, in order: "w1 w2"
	All    string // every word, any position: "w1" AND "w2"
	Any    string // at least one word: "w1" OR "w2"
}

// Empty reports whether the query has no words. Callers treat an empty query
// as match-all and skip ranking entirely.
func (q Query) Empty() bool { return len(q.Words) == 0 }

// Compile builds the three tier queries from a sanitized term. Input must
// come from Sanitize. A single-word term collapses All and Any to the same
// quoted word, avoiding a malformed one-operand boolean expression.
func Compile(sanitized string) Query {
	words := strings.Fields(sanitized)
	if len(words) == 0 {
		return Query{}
	}

	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = `"` + w + `"`
	}

	q := Query{
		Words:  words,
		Phrase: `"` + strings.Join(words, " ") + `"`,
	}
	if len(words) == 1 {
		q.All = quoted[0]
		q.Any = quoted[0]
		return q
	}
	q.All = strings.Join(quoted, " AND ")
	q.Any = strings.Join(quoted, " OR ")
	return q
}
