package scanner

import "fmt"

// Location is a 1-based line and column of a character in the source.
// Columns count bytes.
type Location struct {
	Line   uint
	Column uint
}

var startLocation = Location{Line: 1, Column: 1}

func (l Location) String() string {
	return fmt.Sprintf("line:%d; column: %d", l.Line, l.Column)
}

// Diagnostic describes the lexical error of the failed scan step.
type Diagnostic struct {
	Location Location
	Message  string
}

func (d Diagnostic) String() string {
	return d.Message + " at: " + d.Location.String()
}
