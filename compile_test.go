package pl0_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/gosuda/pl0"
	"github.com/gosuda/pl0/parser"
	plruntime "github.com/gosuda/pl0/runtime"
)

func outputTexts(out []plruntime.Output) []string {
	s := make([]string, 0, len(out))
	for _, o := range out {
		s = append(s, o.Text)
	}
	return s
}

func TestCompileAndRunMultiply(t *testing.T) {
	src := `
CONST m = 7, n = 85;
VAR x, y, z;
PROCEDURE multiply;
VAR a, b;
BEGIN
  a := x;
  b := y;
  z := 0;
  WHILE b > 0 DO BEGIN
    IF ODD b THEN z := z + a;
    a := 2 * a;
    b := b / 2
  END
END;
BEGIN x := m; y := n; CALL multiply; !z END.
`
	vm, err := pl0.Compile(src)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	out, err := vm.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("unexpected output count: %d", len(out))
	}
	if out[0].Text != "595" {
		t.Fatalf("unexpected output: %+v", out[0])
	}
}

func TestArithmeticProgram(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("testdata", "arith.pl0"))
	if err != nil {
		t.Fatalf("read program: %v", err)
	}
	vm, err := pl0.Compile(string(b))
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	out, err := vm.Run()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// 7*85, 25/3 quotient and remainder, gcd(84, 36)
	if got := strings.Join(outputTexts(out), ","); got != "595,8,1,12" {
		t.Fatalf("unexpected output: %s", got)
	}
	st := vm.Stats()
	if st.Calls != 3 || st.MaxDepth != 2 || st.Outputs != 4 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestCompileReportsParseErrors(t *testing.T) {
	_, err := pl0.Compile("VAR x; BEGIN x := END.")
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if perr.Pos.Line != 1 || perr.Pos.Col != 19 {
		t.Fatalf("unexpected position: %v", perr.Pos)
	}
}

type conformanceCase struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Inputs []string `yaml:"inputs"`
	Output []string `yaml:"output"`
	Error  string   `yaml:"error"`
}

func loadConformance(t *testing.T) []conformanceCase {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "conformance.yaml"))
	if err != nil {
		t.Fatalf("open conformance cases: %v", err)
	}
	defer f.Close()
	var doc struct {
		Cases []conformanceCase `yaml:"cases"`
	}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		t.Fatalf("decode conformance cases: %v", err)
	}
	if len(doc.Cases) == 0 {
		t.Fatalf("no conformance cases")
	}
	return doc.Cases
}

func TestConformance(t *testing.T) {
	for _, tc := range loadConformance(t) {
		t.Run(tc.Name, func(t *testing.T) {
			out, err := pl0.RunSource(tc.Source, tc.Inputs...)
			if tc.Error == "" && err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if tc.Error != "" {
				code, ok := plruntime.ErrorCode(err)
				if !ok || string(code) != tc.Error {
					t.Fatalf("expected %s, got %v", tc.Error, err)
				}
			}
			got := strings.Join(outputTexts(out), ",")
			want := strings.Join(tc.Output, ",")
			if got != want {
				t.Fatalf("output %q, want %q", got, want)
			}
		})
	}
}
