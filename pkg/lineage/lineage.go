// Package lineage extracts table-level lineage from Hive SQL batches: the
// tables a batch reads from, each qualified with its database.
//
// A Session tracks the current database across statements the way a Hive
// client does, so USE statements change how later unqualified names resolve.
// Parse can be called repeatedly on the same session; names accumulate in
// statement order and are never deduplicated.
package lineage

import "strings"

// DefaultDatabase qualifies table names that carry no database of their own
// when no USE statement has run.
const DefaultDatabase = "default"

// Session accumulates table names across one or more batches.
//
// A Session is not safe for concurrent use; give each goroutine its own.
type Session struct {
	currentDatabase string
	tableNames      []string
}

// NewSession creates a session with the default database.
func NewSession() *Session {
	return NewSessionWithDatabase(DefaultDatabase)
}

// NewSessionWithDatabase creates a session whose unqualified names resolve
// against db until a USE statement changes it.
func NewSessionWithDatabase(db string) *Session {
	return &Session{currentDatabase: db}
}

// Parse processes a batch of semicolon-separated Hive SQL statements and
// appends every source table to the session's accumulated names.
//
// Processing is sequential and fails fast: the first statement that does not
// parse aborts the call, keeping the names folded in by the statements
// before it. USE statements update the current database; SET commands and
// comment-only statements are skipped.
func (s *Session) Parse(text string) error {
	for _, stmt := range splitStatements(text) {
		if strings.HasPrefix(stmt, "use ") {
			s.applyUse(stmt)
			continue
		}
		if err := s.extract(stmt); err != nil {
			return err
		}
	}
	return nil
}

// applyUse handles "use <db>". Only the exact two-word form changes the
// current database; anything else is consumed without effect.
func (s *Session) applyUse(stmt string) {
	fields := strings.Fields(stmt)
	if len(fields) == 2 {
		s.currentDatabase = fields[1]
	}
}

// TableNames returns a copy of the accumulated table names, in the order
// they were recorded.
func (s *Session) TableNames() []string {
	names := make([]string, len(s.tableNames))
	copy(names, s.tableNames)
	return names
}

// CurrentDatabase returns the database unqualified names currently resolve
// against.
func (s *Session) CurrentDatabase() string {
	return s.currentDatabase
}

// Extract parses sql in a fresh session and returns the tables it reads.
func Extract(sql string) ([]string, error) {
	s := NewSession()
	if err := s.Parse(sql); err != nil {
		return nil, err
	}
	return s.TableNames(), nil
}
