package parser_test

import (
	"testing"

	"github.com/leapstack-labs/hivetrace/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTableOf(t *testing.T, sql string) *parser.CreateTableStmt {
	t.Helper()
	stmt, ok := parseOne(t, sql).(*parser.CreateTableStmt)
	require.True(t, ok, "expected *parser.CreateTableStmt for %q", sql)
	return stmt
}

// ---------- CREATE TABLE Tests ----------

func TestDDL_CreateTable(t *testing.T) {
	stmt := createTableOf(t, "create table t1 (id int, name string)")

	assert.Equal(t, []string{"t1"}, stmt.Name.Parts)
	assert.False(t, stmt.External)
	assert.False(t, stmt.IfNotExists)
	require.Len(t, stmt.Columns, 2)
	assert.Equal(t, "id", stmt.Columns[0].Name)
	assert.Equal(t, "int", stmt.Columns[0].Type)
	assert.Equal(t, "name", stmt.Columns[1].Name)
	assert.Equal(t, "string", stmt.Columns[1].Type)
	assert.Nil(t, stmt.Query)
}

func TestDDL_CreateTableIfNotExists(t *testing.T) {
	stmt := createTableOf(t, "create table if not exists db.t1 (id int)")
	assert.True(t, stmt.IfNotExists)
	assert.Equal(t, []string{"db", "t1"}, stmt.Name.Parts)
}

func TestDDL_ColumnComments(t *testing.T) {
	stmt := createTableOf(t, "create table t (id int comment 'primary key', name string)")
	require.Len(t, stmt.Columns, 2)
	assert.Equal(t, "primary key", stmt.Columns[0].Comment)
	assert.Empty(t, stmt.Columns[1].Comment)
}

func TestDDL_TableComment(t *testing.T) {
	stmt := createTableOf(t, "create table t (id int) comment 'fact table'")
	assert.Equal(t, "fact table", stmt.Comment)
}

func TestDDL_CreateExternalTable(t *testing.T) {
	sql := "create external table if not exists ext (id int) stored as parquet location '/data/ext' tblproperties ('retention'='30d', 'owner'='etl')"
	stmt := createTableOf(t, sql)

	assert.True(t, stmt.External)
	assert.True(t, stmt.IfNotExists)
	assert.Equal(t, "parquet", stmt.StoredAs)
	assert.Equal(t, "/data/ext", stmt.Location)
	assert.Equal(t, map[string]string{"retention": "30d", "owner": "etl"}, stmt.Properties)
}

func TestDDL_PartitionedBy(t *testing.T) {
	stmt := createTableOf(t, "create table t (id int) partitioned by (dt string, region string)")
	require.Len(t, stmt.PartitionedBy, 2)
	assert.Equal(t, "dt", stmt.PartitionedBy[0].Name)
	assert.Equal(t, "string", stmt.PartitionedBy[0].Type)
}

func TestDDL_RowFormatSkipped(t *testing.T) {
	sql := "create table t (id int) row format delimited fields terminated by ',' lines terminated by 'n' stored as textfile"
	stmt := createTableOf(t, sql)
	assert.Equal(t, "textfile", stmt.StoredAs, "ROW FORMAT is consumed up to STORED")
}

func TestDDL_CreateTableAsSelect(t *testing.T) {
	stmt := createTableOf(t, "create table summary as select dept, count(*) from emp group by dept")

	assert.Empty(t, stmt.Columns)
	require.NotNil(t, stmt.Query)
	core, ok := stmt.Query.Body.(*parser.SelectCore)
	require.True(t, ok)
	tbl, ok := core.From.Source.(*parser.TableName)
	require.True(t, ok)
	assert.Equal(t, []string{"emp"}, tbl.Parts)
}

func TestDDL_CreateTableAsSelectWithStorage(t *testing.T) {
	stmt := createTableOf(t, "create table t stored as orc as select * from src")
	assert.Equal(t, "orc", stmt.StoredAs)
	assert.NotNil(t, stmt.Query)
}

func TestDDL_ComplexTypes(t *testing.T) {
	sql := "create table t (tags array<string>, attrs map<string,int>, addr struct<city:string,zip:int>, amount decimal(10,2))"
	stmt := createTableOf(t, sql)

	require.Len(t, stmt.Columns, 4)
	assert.Equal(t, "array<string>", stmt.Columns[0].Type)
	assert.Equal(t, "map<string,int>", stmt.Columns[1].Type)
	assert.Equal(t, "struct<city:string,zip:int>", stmt.Columns[2].Type)
	assert.Equal(t, "decimal(10,2)", stmt.Columns[3].Type)
}

func TestDDL_NestedComplexType(t *testing.T) {
	stmt := createTableOf(t, "create table t (m map<string,array<int>>)")
	require.Len(t, stmt.Columns, 1)
	assert.Equal(t, "map<string,array<int>>", stmt.Columns[0].Type)
}

// ---------- CREATE VIEW Tests ----------

func TestDDL_CreateView(t *testing.T) {
	stmt, ok := parseOne(t, "create view v as select * from t").(*parser.CreateViewStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"v"}, stmt.Name.Parts)
	assert.False(t, stmt.IfNotExists)
	assert.NotNil(t, stmt.Query)
}

func TestDDL_CreateViewIfNotExists(t *testing.T) {
	stmt, ok := parseOne(t, "create view if not exists v (a, b) as select x, y from t").(*parser.CreateViewStmt)
	require.True(t, ok)
	assert.True(t, stmt.IfNotExists)
	assert.NotNil(t, stmt.Query)
}

func TestDDL_CreateViewMissingQuery(t *testing.T) {
	_, err := parser.Parse("create view v")
	require.Error(t, err)
}

// ---------- Error Tests ----------

func TestDDL_UnsupportedCreate(t *testing.T) {
	_, err := parser.Parse("create index i on t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected TABLE or VIEW")
}
