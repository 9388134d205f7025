package lineage

import (
	"errors"

	"github.com/leapstack-labs/hivetrace/pkg/parser"
)

// maxWalkDepth bounds query nesting during the walk. Real batches stay far
// below it; hitting the bound aborts the statement instead of recursing
// without limit.
const maxWalkDepth = 100

// ErrMaxDepthExceeded is returned when a statement nests queries deeper
// than maxWalkDepth.
var ErrMaxDepthExceeded = errors.New("query nesting exceeds maximum depth")

// extract parses one cleaned statement candidate and folds the tables it
// reads into the session. Scratch state lives on the walker, so a failed
// candidate contributes nothing.
func (s *Session) extract(sql string) error {
	stmts, err := parser.Parse(sql)
	if err != nil {
		return err
	}
	w := newWalker(s.currentDatabase)
	for _, stmt := range stmts {
		if err := w.walkStatement(stmt, 0); err != nil {
			return err
		}
	}
	s.tableNames = append(s.tableNames, w.fold()...)
	return nil
}

// walker collects the source tables of a single statement candidate. It
// carries the database used to qualify bare names, the scratch list of
// recorded names, and the CTE aliases seen so far.
type walker struct {
	database string
	scratch  []string
	cteNames map[string]struct{}
}

func newWalker(database string) *walker {
	return &walker{
		database: database,
		cteNames: make(map[string]struct{}),
	}
}

// recordTable resolves one table reference and appends it to the scratch
// list, unless its origin form names a CTE.
func (w *walker) recordTable(name *parser.TableName) {
	if _, ok := w.cteNames[originName(name)]; ok {
		return
	}
	w.scratch = append(w.scratch, qualifiedName(name, w.database))
}

// fold returns the recorded names for one candidate, excluding any entry
// equal to a registered CTE alias.
func (w *walker) fold() []string {
	names := make([]string, 0, len(w.scratch))
	for _, name := range w.scratch {
		if _, ok := w.cteNames[name]; ok {
			continue
		}
		names = append(names, name)
	}
	return names
}

// walkStatement dispatches on the statement kind. Only read sources are
// recorded: insert targets, created tables and view names stay out of the
// result.
func (w *walker) walkStatement(stmt parser.Statement, depth int) error {
	if depth > maxWalkDepth {
		return ErrMaxDepthExceeded
	}
	switch stmt := stmt.(type) {
	case *parser.Query:
		return w.walkQuery(stmt, depth)
	case *parser.InsertStmt:
		if stmt.Source != nil {
			return w.walkQuery(stmt.Source, depth)
		}
	case *parser.DirectoryStmt:
		if stmt.Source != nil {
			return w.walkQuery(stmt.Source, depth)
		}
	case *parser.CreateTableStmt:
		if stmt.Query != nil {
			return w.walkQuery(stmt.Query, depth)
		}
	case *parser.CreateViewStmt:
		if stmt.Query != nil {
			return w.walkQuery(stmt.Query, depth)
		}
	}
	return nil
}

// walkQuery registers CTE aliases in declaration order, walking each CTE
// body after its alias is registered so later CTEs can reference earlier
// ones, then walks the query body.
func (w *walker) walkQuery(q *parser.Query, depth int) error {
	if depth > maxWalkDepth {
		return ErrMaxDepthExceeded
	}
	if q.With != nil {
		for _, cte := range q.With.CTEs {
			w.cteNames[cte.Name] = struct{}{}
			if err := w.walkQuery(cte.Query, depth+1); err != nil {
				return err
			}
		}
	}
	return w.walkBody(q.Body, depth)
}

// walkBody dispatches over the closed set of query body shapes.
func (w *walker) walkBody(body parser.QueryBody, depth int) error {
	switch body := body.(type) {
	case *parser.SelectCore:
		return w.walkSelect(body, depth)
	case *parser.Query:
		return w.walkQuery(body, depth+1)
	case *parser.SetOperation:
		if err := w.walkBody(body.Left, depth); err != nil {
			return err
		}
		return w.walkBody(body.Right, depth)
	case *parser.InsertStmt:
		// Write-as-query: WITH c AS (...) INSERT ... routes back through
		// statement dispatch.
		return w.walkStatement(body, depth+1)
	case *parser.DirectoryStmt:
		return w.walkStatement(body, depth+1)
	case *parser.ValuesClause:
		return nil
	}
	return nil
}

// walkSelect records the FROM relations and inspects the WHERE and HAVING
// predicates. Lateral views expand columns of relations already recorded
// and contribute no names.
func (w *walker) walkSelect(sel *parser.SelectCore, depth int) error {
	if sel.From != nil {
		if err := w.walkTableRef(sel.From.Source, depth); err != nil {
			return err
		}
		for _, join := range sel.From.Joins {
			if err := w.walkTableRef(join.Right, depth); err != nil {
				return err
			}
		}
	}
	if err := w.inspectPredicate(sel.Where, depth); err != nil {
		return err
	}
	return w.inspectPredicate(sel.Having, depth)
}

func (w *walker) walkTableRef(ref parser.TableRef, depth int) error {
	switch ref := ref.(type) {
	case *parser.TableName:
		w.recordTable(ref)
	case *parser.DerivedTable:
		return w.walkQuery(ref.Query, depth+1)
	}
	return nil
}

// inspectPredicate applies the shallow subquery inspection shared by WHERE
// and HAVING: an EXISTS or IN subquery at the top of the predicate is
// walked, and a binary expression's side is walked only when that side is
// itself a subquery. Subqueries nested deeper inside the predicate are
// intentionally not traversed.
func (w *walker) inspectPredicate(expr parser.Expr, depth int) error {
	switch expr := expr.(type) {
	case nil:
		return nil
	case *parser.ExistsExpr:
		return w.walkQuery(expr.Query, depth+1)
	case *parser.InExpr:
		if expr.Query != nil {
			return w.walkQuery(expr.Query, depth+1)
		}
	case *parser.BinaryExpr:
		if sub, ok := expr.Left.(*parser.SubqueryExpr); ok {
			if err := w.walkQuery(sub.Query, depth+1); err != nil {
				return err
			}
		}
		if sub, ok := expr.Right.(*parser.SubqueryExpr); ok {
			return w.walkQuery(sub.Query, depth+1)
		}
	}
	return nil
}
