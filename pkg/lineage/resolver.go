package lineage

import (
	"strings"

	"github.com/leapstack-labs/hivetrace/pkg/parser"
)

// originName joins a table reference's raw identifier parts with no
// separator. This is the form matched against the registered CTE aliases;
// CTE references are single identifiers, so a match excludes the reference
// from the results.
func originName(name *parser.TableName) string {
	return strings.Join(name.Parts, "")
}

// qualifiedName returns the database-qualified form of a table reference.
// A two-part name already names its database and is kept as-is; everything
// else is prefixed with the current database.
func qualifiedName(name *parser.TableName, database string) string {
	if len(name.Parts) == 2 {
		return strings.Join(name.Parts, ".")
	}
	return database + "." + strings.Join(name.Parts, ".")
}
