package lineage

import (
	"regexp"
	"strings"
)

var (
	// bucketClauseRE matches CLUSTERED BY (...) INTO n BUCKETS, optionally
	// together with the PARTITIONED BY clause in front of it. Candidates are
	// lowercased before this runs.
	bucketClauseRE = regexp.MustCompile(`(?s)(partitioned\s+by.*)?clustered\s+by\s*\([^)]+\)\s+into\s+\d+\s+buckets`)

	blockCommentRE = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRE  = regexp.MustCompile(`--[^\n]*`)
)

// splitStatements turns a raw batch into cleaned statement candidates.
// The split runs on the raw text, before comment removal, so a semicolon
// inside a comment still terminates a candidate. Each candidate is trimmed,
// lowercased, stripped of bucketing clauses and comments, and re-joined from
// its non-blank lines. Empty results and SET commands are dropped.
func splitStatements(text string) []string {
	var out []string
	for _, candidate := range strings.Split(text, ";") {
		stmt := strings.ToLower(strings.TrimSpace(candidate))
		stmt = stripBucketClause(stmt)
		stmt = stripComments(stmt)
		if stmt == "" || strings.HasPrefix(stmt, "set ") {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

// stripBucketClause removes bucketing table options the grammar has no
// support for. Everything from a PARTITIONED BY preceding the bucket spec
// through the BUCKETS keyword goes away.
func stripBucketClause(stmt string) string {
	return bucketClauseRE.ReplaceAllString(stmt, "")
}

// stripComments removes block comments, then line comments, then re-joins
// the surviving lines without leading or trailing whitespace, dropping the
// blank ones.
func stripComments(stmt string) string {
	cleaned := blockCommentRE.ReplaceAllString(stmt, "")
	cleaned = lineCommentRE.ReplaceAllString(cleaned, "")

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
