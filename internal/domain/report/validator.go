// internal/domain/report/validator.go
package report

import (
	"strings"
	"time"
)

// Entry pairs a successfully parsed line with its resolved date.
type Entry struct {
	Line Line
	Date ResolvedDate
}

// Verdict is the outcome of validating one report message. Entries holds,
// in original order, the lines validated before any failure; when AllValid
// is false it covers only the lines preceding the first bad one.
type Verdict struct {
	AllValid bool
	Entries  []Entry
}

// Validator runs the line grammar and date resolution over a whole message.
type Validator struct {
	parser *LineParser
}

func NewValidator(parser *LineParser) *Validator {
	return &Validator{parser: parser}
}

// Validate checks every line of the message against the grammar and resolves
// each line's date relative to the reference date. Validation is fail-fast:
// the first rejected line or unresolvable date marks the whole report
// invalid and no further lines are examined.
func (v *Validator) Validate(text string, reference time.Time) Verdict {
	verdict := Verdict{AllValid: true}

	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		parsed, ok := v.parser.Parse(line)
		if !ok {
			verdict.AllValid = false
			return verdict
		}
		resolved, err := ResolveDate(parsed.Month, parsed.Day, reference)
		if err != nil {
			verdict.AllValid = false
			return verdict
		}
		verdict.Entries = append(verdict.Entries, Entry{Line: parsed, Date: resolved})
	}

	return verdict
}
