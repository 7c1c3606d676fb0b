package lox

import (
	"bytes"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestMain lets go-snaps prune snapshots that no longer have a matching
// test.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

// TestEndToEndScenarios snapshots the stdout of each literal-I/O program,
// covering arithmetic precedence, shadowing, closures, constructors, and
// superclass dispatch in one pass run through the public facade.
func TestEndToEndScenarios(t *testing.T) {
	scenarios := []struct {
		name   string
		source string
	}{
		{
			name:   "arithmetic_precedence",
			source: `print 1 + 2 * 3;`,
		},
		{
			name: "block_shadowing",
			source: `
var a = 1;
{ var a = 2; print a; }
print a;
`,
		},
		{
			name: "closure_counter",
			source: `
fun mk() {
  var i = 0;
  fun inc() {
    i = i + 1;
    return i;
  }
  return inc;
}
var c = mk();
print c();
print c();
`,
		},
		{
			name: "constructor_and_getter",
			source: `
class C {
  init(x) { this.x = x; }
  get() { return this.x; }
}
print C(42).get();
`,
		},
		{
			name: "superclass_dispatch",
			source: `
class A { f() { print "A"; } }
class B < A {
  f() {
    super.f();
    print "B";
  }
}
B().f();
`,
		},
	}

	for _, tt := range scenarios {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			result := Run(tt.source, &out)
			if result.HasErrors() {
				t.Fatalf("unexpected diagnostics: %s", result.Format(false))
			}
			snaps.MatchSnapshot(t, out.String())
		})
	}
}

// TestEndToEndRuntimeErrorScenario snapshots the diagnostic produced when
// string concatenation's number/string overload is given a mismatched
// operand, confirming a runtime error aborts only that statement.
func TestEndToEndRuntimeErrorScenario(t *testing.T) {
	var out bytes.Buffer
	result := Run(`
var x = "a";
print x + "b";
print 1 + "b";
print "still runs";
`, &out)
	if !result.HasErrors() {
		t.Fatal("expected a runtime error for `1 + \"b\"`")
	}
	snaps.MatchSnapshot(t, out.String())
	snaps.MatchSnapshot(t, result.Format(false))
}
