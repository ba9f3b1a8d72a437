// Package diagnostics extracts structured diagnostics from heterogeneous
// tool output. Tools emit JSON in a couple of well-known shapes or plain
// compiler-style lines; Parse tries the structured decoders first and falls
// back to line-oriented matching.
package diagnostics

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
)

// Line formats, tried per line in order. First match wins.
//
//	path(line,col): severity CODE: message
//	path:line:col - severity: message
//	path:line:col: severity: message
var lineFormats = []*regexp.Regexp{
	regexp.MustCompile(`^(.+?)\((\d+),(\d+)\): *([A-Za-z]+) +([A-Z]+\d+): (.+)$`),
	regexp.MustCompile(`^(.+?):(\d+):(\d+) - ([A-Za-z]+): (.+)$`),
	regexp.MustCompile(`^(.+?):(\d+):(\d+): ([A-Za-z]+): (.+)$`),
}

// Parse converts raw tool output into structured diagnostics. It is pure and
// never fails: unparseable input yields an empty slice. workspaceRoot is
// used to relativize absolute file paths.
//
// Strategy order: JSON array of per-file reports, JSON report object, then
// per-line regex formats. A JSON document that decodes but carries zero
// diagnostics falls through to line matching on the same text, so callers
// can hand over concatenated stdout+stderr in one go.
func Parse(output, workspaceRoot string) []domain.Diagnostic {
	if diags := parseJSON(output, workspaceRoot); len(diags) > 0 {
		return diags
	}
	return parseLines(output, workspaceRoot)
}

func parseLines(output, workspaceRoot string) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for line := range strings.Lines(output) {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		for i, re := range lineFormats {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			d := domain.Diagnostic{
				File:   relativizePath(m[1], workspaceRoot),
				Line:   atoi(m[2]),
				Column: atoi(m[3]),
			}
			if i == 0 {
				d.Severity = severityFromString(m[4])
				d.Code = m[5]
				d.Message = m[6]
			} else {
				d.Severity = severityFromString(m[4])
				d.Message = m[5]
			}
			diags = append(diags, d)
			break
		}
	}
	return diags
}

// severityFromString maps a tool's severity word by substring, defaulting to
// warning for anything unrecognized.
func severityFromString(s string) domain.Severity {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "error"):
		return domain.SeverityError
	case strings.Contains(s, "warn"):
		return domain.SeverityWarning
	case strings.Contains(s, "info"):
		return domain.SeverityInfo
	default:
		return domain.SeverityWarning
	}
}

// relativizePath strips the workspace root prefix from absolute paths and
// normalizes separators to forward slashes.
func relativizePath(path, workspaceRoot string) string {
	p := strings.ReplaceAll(path, `\`, "/")
	if workspaceRoot == "" {
		return p
	}
	root := strings.TrimSuffix(strings.ReplaceAll(workspaceRoot, `\`, "/"), "/")
	if rest, ok := strings.CutPrefix(p, root+"/"); ok {
		return rest
	}
	return p
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
