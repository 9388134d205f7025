package lineage

import (
	"reflect"
	"testing"
)

func TestSplitStatements_Basic(t *testing.T) {
	got := splitStatements("select 1; select 2")
	want := []string{"select 1", "select 2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSplitStatements_Lowercases(t *testing.T) {
	got := splitStatements("SELECT * FROM Test.A")
	want := []string{"select * from test.a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSplitStatements_DropsSetCommands(t *testing.T) {
	got := splitStatements("set hive.exec.parallel = true; select 1")
	want := []string{"select 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSplitStatements_KeepsSetPrefixedIdentifiers(t *testing.T) {
	// Only the SET command itself is dropped, not identifiers starting
	// with "set".
	got := splitStatements("select * from settings")
	want := []string{"select * from settings"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSplitStatements_DropsEmpty(t *testing.T) {
	if got := splitStatements(";; ; \n;"); len(got) != 0 {
		t.Errorf("expected no statements, got %q", got)
	}
	if got := splitStatements("-- only a comment"); len(got) != 0 {
		t.Errorf("expected no statements, got %q", got)
	}
}

func TestSplitStatements_SplitsInsideComments(t *testing.T) {
	// The split runs on the raw text before comments are stripped, so a
	// semicolon inside a block comment still ends a candidate.
	got := splitStatements("select 1 /* a; b */")
	want := []string{"select 1 /* a", "b */"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestStripBucketClause(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bucket clause removed",
			in:   "create table t (id int) clustered by (id) into 4 buckets",
			want: "create table t (id int) ",
		},
		{
			name: "preceding partitioned by removed with it",
			in:   "create table t (id int) partitioned by (dt string) clustered by (id) into 8 buckets",
			want: "create table t (id int) ",
		},
		{
			name: "sorted bucket spec removed",
			in:   "create table t (id int) clustered by (id, name) into 32 buckets",
			want: "create table t (id int) ",
		},
		{
			name: "no bucket clause unchanged",
			in:   "create table t (id int) partitioned by (dt string)",
			want: "create table t (id int) partitioned by (dt string)",
		},
		{
			name: "plain select unchanged",
			in:   "select * from t",
			want: "select * from t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripBucketClause(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "line comment removed",
			in:   "select 1 -- trailing",
			want: "select 1",
		},
		{
			name: "block comment removed",
			in:   "select /* c */ 1",
			want: "select  1",
		},
		{
			name: "block comment spanning lines removed",
			in:   "select 1 /* a\nb */ + 2",
			want: "select 1  + 2",
		},
		{
			name: "comment-only line dropped",
			in:   "select *\n-- note\nfrom t",
			want: "select *\nfrom t",
		},
		{
			name: "lines trimmed and blanks dropped",
			in:   "select *\n\n   from t   \n",
			want: "select *\nfrom t",
		},
		{
			name: "non-greedy block match",
			in:   "select /* a */ 1 + /* b */ 2",
			want: "select  1 +  2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripComments(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
