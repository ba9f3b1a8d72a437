package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
)

// fileReport is the per-file record emitted by linters in array form:
// [{"filePath": ..., "messages": [...]}, ...].
type fileReport struct {
	FilePath string        `json:"filePath"`
	Messages []lintMessage `json:"messages"`
}

// lintMessage carries a severity that is numeric in some tools and a string
// in others, so it stays raw until mapped.
type lintMessage struct {
	Line     int             `json:"line"`
	Column   int             `json:"column"`
	Severity json.RawMessage `json:"severity"`
	Message  string          `json:"message"`
	RuleID   string          `json:"ruleId"`
}

// toolReport is the compiler-style object form:
// {"diagnostics": [{"file": {"fileName": ...}, ...}]}.
type toolReport struct {
	Diagnostics []reportDiagnostic `json:"diagnostics"`
}

type reportDiagnostic struct {
	File struct {
		FileName string `json:"fileName"`
	} `json:"file"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	MessageText string `json:"messageText"`
	Code        int    `json:"code"`
}

// parseJSON attempts the structured decoders in order. It returns nil when
// the text is not JSON or decodes to zero diagnostics, letting the caller
// fall through to line matching.
func parseJSON(output, workspaceRoot string) []domain.Diagnostic {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil
	}

	switch trimmed[0] {
	case '[':
		var reports []fileReport
		if err := json.Unmarshal([]byte(trimmed), &reports); err != nil {
			return nil
		}
		return fromFileReports(reports, workspaceRoot)
	case '{':
		var report toolReport
		if err := json.Unmarshal([]byte(trimmed), &report); err != nil {
			return nil
		}
		return fromToolReport(report, workspaceRoot)
	default:
		return nil
	}
}

func fromFileReports(reports []fileReport, workspaceRoot string) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for _, report := range reports {
		file := relativizePath(report.FilePath, workspaceRoot)
		for _, msg := range report.Messages {
			diags = append(diags, domain.Diagnostic{
				File:     file,
				Line:     msg.Line,
				Column:   msg.Column,
				Severity: mapRawSeverity(msg.Severity),
				Message:  msg.Message,
				Code:     msg.RuleID,
			})
		}
	}
	return diags
}

// fromToolReport maps the object form. Every entry is an error by
// convention; the numeric code gets the short "TS"-style prefix.
func fromToolReport(report toolReport, workspaceRoot string) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for _, d := range report.Diagnostics {
		diag := domain.Diagnostic{
			File:     relativizePath(d.File.FileName, workspaceRoot),
			Line:     d.Line,
			Column:   d.Column,
			Severity: domain.SeverityError,
			Message:  d.MessageText,
		}
		if d.Code != 0 {
			diag.Code = fmt.Sprintf("TS%d", d.Code)
		}
		diags = append(diags, diag)
	}
	return diags
}

// mapRawSeverity handles the numeric convention (2 is an error, anything
// else a warning) and the string convention via substring match. Absent or
// unrecognized severities default to warning.
func mapRawSeverity(raw json.RawMessage) domain.Severity {
	if len(raw) == 0 {
		return domain.SeverityWarning
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == 2 {
			return domain.SeverityError
		}
		return domain.SeverityWarning
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return severityFromString(s)
	}
	return domain.SeverityWarning
}
