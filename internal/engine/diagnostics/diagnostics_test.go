package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/diagnostics"
)

func TestParse_CompilerLine(t *testing.T) {
	diags := diagnostics.Parse("src/index.ts(10,5): error TS2345: message", "/work")

	require.Len(t, diags, 1)
	assert.Equal(t, domain.Diagnostic{
		File:     "src/index.ts",
		Line:     10,
		Column:   5,
		Severity: domain.SeverityError,
		Code:     "TS2345",
		Message:  "message",
	}, diags[0])
}

func TestParse_DashLine(t *testing.T) {
	diags := diagnostics.Parse("lib/a.go:3:14 - warning: unused variable", "")

	require.Len(t, diags, 1)
	assert.Equal(t, "lib/a.go", diags[0].File)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, 14, diags[0].Column)
	assert.Equal(t, domain.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "unused variable", diags[0].Message)
	assert.Empty(t, diags[0].Code)
}

func TestParse_ColonLine(t *testing.T) {
	diags := diagnostics.Parse("main.c:1:1: info: consider a header guard", "")

	require.Len(t, diags, 1)
	assert.Equal(t, domain.SeverityInfo, diags[0].Severity)
	assert.Equal(t, "consider a header guard", diags[0].Message)
}

func TestParse_MultipleLinesPreserveOrder(t *testing.T) {
	out := "a.ts(1,1): error TS1: first\n" +
		"noise without any recognizable format\n" +
		"b.ts:2:2 - warning: second\n"

	diags := diagnostics.Parse(out, "")

	require.Len(t, diags, 2)
	assert.Equal(t, "first", diags[0].Message)
	assert.Equal(t, "second", diags[1].Message)
}

func TestParse_RelativizesAbsolutePaths(t *testing.T) {
	diags := diagnostics.Parse("/work/src/app.ts(2,3): error TS1: nope", "/work")

	require.Len(t, diags, 1)
	assert.Equal(t, "src/app.ts", diags[0].File)
}

func TestParse_NormalizesBackslashes(t *testing.T) {
	diags := diagnostics.Parse(`C:/work/src\app.ts(2,3): error TS1: nope`, "C:/work")

	require.Len(t, diags, 1)
	assert.Equal(t, "src/app.ts", diags[0].File)
}

func TestParse_JSONArrayForm(t *testing.T) {
	out := `[
		{"filePath": "src/a.js", "messages": [
			{"line": 4, "column": 2, "severity": 2, "message": "no-undef", "ruleId": "no-undef"},
			{"line": 9, "column": 1, "severity": 1, "message": "prefer-const"}
		]},
		{"filePath": "src/b.js", "messages": [
			{"line": 1, "column": 1, "severity": "error", "message": "boom"}
		]}
	]`

	diags := diagnostics.Parse(out, "")

	require.Len(t, diags, 3)
	assert.Equal(t, domain.SeverityError, diags[0].Severity)
	assert.Equal(t, "no-undef", diags[0].Code)
	assert.Equal(t, domain.SeverityWarning, diags[1].Severity)
	assert.Equal(t, domain.SeverityError, diags[2].Severity)
	assert.Equal(t, "src/b.js", diags[2].File)
}

func TestParse_JSONArraySeverityDefaults(t *testing.T) {
	out := `[{"filePath": "a.js", "messages": [
		{"line": 1, "column": 1, "message": "absent severity"},
		{"line": 2, "column": 1, "severity": "bizarre", "message": "unrecognized"}
	]}]`

	diags := diagnostics.Parse(out, "")

	require.Len(t, diags, 2)
	assert.Equal(t, domain.SeverityWarning, diags[0].Severity)
	assert.Equal(t, domain.SeverityWarning, diags[1].Severity)
}

func TestParse_JSONObjectForm(t *testing.T) {
	out := `{"diagnostics": [
		{"file": {"fileName": "src/index.ts"}, "line": 10, "column": 5, "messageText": "type mismatch", "code": 2345}
	]}`

	diags := diagnostics.Parse(out, "")

	require.Len(t, diags, 1)
	assert.Equal(t, "src/index.ts", diags[0].File)
	assert.Equal(t, domain.SeverityError, diags[0].Severity)
	assert.Equal(t, "TS2345", diags[0].Code)
	assert.Equal(t, "type mismatch", diags[0].Message)
}

func TestParse_JSONObjectWithoutCode(t *testing.T) {
	out := `{"diagnostics": [{"file": {"fileName": "a.ts"}, "line": 1, "column": 1, "messageText": "m"}]}`

	diags := diagnostics.Parse(out, "")

	require.Len(t, diags, 1)
	assert.Empty(t, diags[0].Code)
}

func TestParse_EmptyJSONFallsThroughToLines(t *testing.T) {
	// A success object with no diagnostics followed by compiler-style stderr
	// text; the JSON decode yields nothing so line matching takes over.
	out := "{\"ok\": true}\nsrc/a.ts(1,2): error TS7: leftover"

	diags := diagnostics.Parse(out, "")

	require.Len(t, diags, 1)
	assert.Equal(t, "TS7", diags[0].Code)
}

func TestParse_UnparseableReturnsEmpty(t *testing.T) {
	assert.Empty(t, diagnostics.Parse("just some chatter\nnothing to see", ""))
	assert.Empty(t, diagnostics.Parse("", "/work"))
	assert.Empty(t, diagnostics.Parse("{not json at all", ""))
}
