package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/cuedit/internal/db"
)

type Result struct {
	Document string
	Position int
	Time     float64
	Text     string
	Snippet  string
	Rank     float64
}

type Options struct {
	Query    string
	Document string // "" = all documents
	Limit    int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 || len(lower) != len(text) {
		// no match (or case folding changed byte offsets), return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	runePos := len([]rune(text[:idx]))
	start := max(runePos-contextChars, 0)
	end := min(runePos+len(qRunes)+contextChars, len(runes))
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

func Search(d *db.DB, opts Options) ([]Result, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return nil, nil
	}
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if containsCJK(opts.Query) {
		return searchLike(d, opts)
	}
	return searchFTS(d, opts)
}

func searchFTS(d *db.DB, opts Options) ([]Result, error) {
	conditions := []string{"cues_fts MATCH ?"}
	args := []any{ftsQuery(opts.Query)}

	if opts.Document != "" {
		conditions = append(conditions, "c.doc_name = ?")
		args = append(args, opts.Document)
	}

	query := fmt.Sprintf(`
		SELECT
			c.doc_name,
			c.position,
			c.time,
			c.text,
			snippet(cues_fts, 0, '>>>', '<<<', '...', 16) AS snip,
			bm25(cues_fts) AS rank
		FROM cues_fts
		JOIN cues c ON cues_fts.rowid = c.rowid
		WHERE %s
		ORDER BY rank, c.doc_name, c.position
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	rows, err := d.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(d *db.DB, opts Options) ([]Result, error) {
	conditions := []string{"c.text LIKE ?"}
	args := []any{"%" + opts.Query + "%"}

	if opts.Document != "" {
		conditions = append(conditions, "c.doc_name = ?")
		args = append(args, opts.Document)
	}

	query := fmt.Sprintf(`
		SELECT c.doc_name, c.position, c.time, c.text
		FROM cues c
		WHERE %s
		ORDER BY c.doc_name, c.position
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	rows, err := d.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Document, &r.Position, &r.Time, &r.Text); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(r.Text, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

// ftsQuery quotes every term so punctuation in user input is not parsed as
// FTS5 syntax. Terms are implicitly ANDed.
func ftsQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Document, &r.Position, &r.Time, &r.Text, &r.Snippet, &r.Rank); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
