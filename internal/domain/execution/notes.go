package execution

import "time"

const (
	// BlankNotes is what a caller passes to report an execution without notes.
	BlankNotes = " "

	autoNotesSuffix = "Test performed automatically"
)

// ResolveNotes applies the notes policy: empty notes become a timestamped
// default, a single space means no notes, anything else is kept as is.
func ResolveNotes(notes string, now time.Time) string {
	switch notes {
	case "":
		return now.Format(time.ANSIC) + " - " + autoNotesSuffix
	case BlankNotes:
		return ""
	default:
		return notes
	}
}
