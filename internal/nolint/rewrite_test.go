package nolint_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/Wladim1r/nolintfmt/internal/checks"
	"github.com/Wladim1r/nolintfmt/internal/nolint"
)

func TestUpdate_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		enabled []string
		in      string
		want    string
	}{
		{
			name:    "drop stale check keep reason",
			enabled: []string{"modernize-use-auto"},
			in:      "// NOLINT(modernize-use-auto,old-check-1) reason text",
			want:    "// NOLINT(modernize-use-auto) reason text",
		},
		{
			name:    "all checks stale deletes line",
			enabled: nil,
			in:      "// NOLINT(old-check-1,old-check-2)",
			want:    "",
		},
		{
			name:    "suppress all untouched",
			enabled: []string{"a"},
			in:      "int x = 0; // NOLINT",
			want:    "int x = 0; // NOLINT",
		},
		{
			name:    "code before comment survives",
			enabled: nil,
			in:      "int x = 0; // NOLINT(old)\nint y;",
			want:    "int x = 0;\nint y;",
		},
		{
			name:    "deleted line leaves no blank",
			enabled: []string{"b"},
			in:      "a\n// NOLINTNEXTLINE(old)\nb // NOLINT(b)\n",
			want:    "a\nb // NOLINT(b)\n",
		},
		{
			name:    "wildcard against enabled entry",
			enabled: []string{"modernize-use-nullptr"},
			in:      "// NOLINT(modernize-*)\n// NOLINT(bugprone-*)",
			want:    "// NOLINT(modernize-*)",
		},
		{
			name:    "indentation kept on rewrite",
			enabled: []string{"a"},
			in:      "\t\tfoo(); // NOLINT(a,b)",
			want:    "\t\tfoo(); // NOLINT(a)",
		},
		{
			name:    "unchanged directive keeps trailing whitespace",
			enabled: []string{"a"},
			in:      "  foo(); // NOLINT(a)   ",
			want:    "  foo(); // NOLINT(a)   ",
		},
		{
			name:    "normalized spacing",
			enabled: []string{"a"},
			in:      "foo(); //   NOLINT( a )",
			want:    "foo(); // NOLINT(a)",
		},
		{
			name:    "malformed list untouched",
			enabled: nil,
			in:      "// NOLINT(a, b",
			want:    "// NOLINT(a, b",
		},
		{
			name:    "crlf preserved",
			enabled: []string{"a"},
			in:      "x; // NOLINT(a,b)\r\n// NOLINT(b)\r\ny;\r\n",
			want:    "x; // NOLINT(a)\r\ny;\r\n",
		},
		{
			name:    "empty list removed",
			enabled: []string{"a"},
			in:      "x; // NOLINT()\n// NOLINTEND( )",
			want:    "x;",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := nolint.Update(tc.in, checks.NewSet(tc.enabled...), nolint.DefaultSeparator)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Update mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Both cleanup paths must agree: an empty list is removed whether it is the
// leading directive or trails one that survives filtering.
func TestRewriteLine_EmptyListPaths(t *testing.T) {
	t.Parallel()

	r := nolint.NewRewriter(checks.NewSet("a"), " ")
	tests := []struct {
		line     string
		want     string
		wantKeep bool
	}{
		{"// NOLINT()", "", false},
		{"// NOLINT( )", "", false},
		{"// NOLINTNEXTLINE(  )   ", "", false},
		{"f(); // NOLINT()", "f();", true},
		{"// NOLINT(a) // NOLINT()", "// NOLINT(a)", true},
		{"// NOLINT(a) // NOLINT() // NOLINTEND()", "// NOLINT(a)", true},
		{"// NOLINT // NOLINT()", "// NOLINT", true},
		{"// NOLINT(b) // NOLINT()", "", false},
	}
	for _, tc := range tests {
		got, keep := r.RewriteLine(tc.line)
		if got != tc.want || keep != tc.wantKeep {
			t.Errorf("RewriteLine(%q) = (%q, %v), want (%q, %v)", tc.line, got, keep, tc.want, tc.wantKeep)
		}
	}
}

func TestRewriter_NoOpOnIrrelevantText(t *testing.T) {
	t.Parallel()

	r := nolint.NewRewriter(checks.NewSet(), " ")
	lines := []string{
		"",
		"   ",
		"int x = 0;   ",
		"\t// just a comment\t",
		`printf("NOLINT(a)");`,
		"/// NOLINT is documented here",
		"// NOLINTBEGIN",
		"// NOLINTNEXTLINE (bugprone-foo)",
		"// nolint(a)",
	}
	for _, line := range lines {
		got, keep := r.RewriteLine(line)
		if !keep || got != line {
			t.Errorf("RewriteLine(%q) = (%q, %v), want it unchanged", line, got, keep)
		}
	}
}

func TestRewriter_Apply(t *testing.T) {
	t.Parallel()

	r := nolint.NewRewriter(checks.NewSet("a"), " ")
	res := r.Apply("// NOLINT(a,b)\n// NOLINT(b)\nplain\n")
	if res.Text != "// NOLINT(a)\nplain\n" {
		t.Errorf("Apply text = %q", res.Text)
	}
	if res.Rewritten != 1 || res.Deleted != 1 {
		t.Errorf("Apply counts = %d rewritten, %d deleted; want 1, 1", res.Rewritten, res.Deleted)
	}
	if !res.Changed() {
		t.Error("expected Changed() to be true")
	}

	res = r.Apply("// NOLINT(a)\n")
	if res.Changed() {
		t.Errorf("expected no change, got %+v", res)
	}
}

func TestRewriter_Golden(t *testing.T) {
	t.Parallel()

	ar, err := txtar.ParseFile(filepath.Join("testdata", "clang_tidy.txtar"))
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	files := archiveFiles(ar)
	enabled := checks.NewSet(strings.Fields(files["enabled"])...)

	r := nolint.NewRewriter(enabled, " ")
	got := r.Rewrite(files["input.cpp"])
	if diff := cmp.Diff(files["want.cpp"], got); diff != "" {
		t.Errorf("rewrite mismatch (-want +got):\n%s", diff)
	}
	if again := r.Rewrite(got); again != got {
		t.Errorf("second pass changed the output:\n%s", cmp.Diff(got, again))
	}
}

func TestRewriter_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"// NOLINT(a, b,c) x\n\n  y(); //NOLINT(c)  \n// NOLINTEND()\n",
		"// NOLINT(a) // NOLINT() // NOLINT()\r\nz\r\n",
		"q; // NOLINTNEXTLINE(*-b, a*) trailing // NOLINT(zz)\n",
		"// NOLINT(,,)\n// NOLINT\n// NOLINT(a\n",
	}
	for _, sep := range []string{" ", "", "  "} {
		r := nolint.NewRewriter(checks.NewSet("a", "x-b"), sep)
		for _, in := range inputs {
			once := r.Rewrite(in)
			if twice := r.Rewrite(once); twice != once {
				t.Errorf("sep %q: not idempotent for %q:\n%s", sep, in, cmp.Diff(once, twice))
			}
		}
	}
}

func archiveFiles(ar *txtar.Archive) map[string]string {
	m := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		m[f.Name] = string(f.Data)
	}
	return m
}
