// internal/domain/report/line.go
package report

import (
	"regexp"
	"strconv"
	"strings"
)

// dateTokenPattern matches the leading month/day token of a report line.
// It is deliberately lexical: "13/5" matches and is later rejected by the
// date resolver, so the user gets a verdict rather than a silent ignore.
var dateTokenPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)

// Line is one parsed report line. It exists only while the enclosing
// message is being validated.
type Line struct {
	Raw          string
	Month        int
	Day          int
	Name         string
	Category     string
	Extra        []string
	PlannedLeave bool
}

// LineParser matches single report lines against the attendance grammar:
//
//	M/D <name> <category> [<free text...>] [<marker>]
//
// where the trailing marker token flags a planned leave. The marker is
// injected at construction so the grammar itself carries no literals.
type LineParser struct {
	plannedLeaveMarker string
}

func NewLineParser(plannedLeaveMarker string) *LineParser {
	return &LineParser{plannedLeaveMarker: plannedLeaveMarker}
}

// Parse reports whether the line matches the grammar and, if so, returns
// its parsed form. Tokens beyond the date and the marker are opaque.
func (p *LineParser) Parse(line string) (Line, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 3 {
		return Line{}, false
	}

	m := dateTokenPattern.FindStringSubmatch(tokens[0])
	if m == nil {
		return Line{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])

	// The marker counts only as the final token, and only when the two
	// required fields survive its removal.
	planned := false
	if len(tokens) >= 4 && tokens[len(tokens)-1] == p.plannedLeaveMarker {
		planned = true
		tokens = tokens[:len(tokens)-1]
	}

	return Line{
		Raw:          line,
		Month:        month,
		Day:          day,
		Name:         tokens[1],
		Category:     tokens[2],
		Extra:        tokens[3:],
		PlannedLeave: planned,
	}, true
}
