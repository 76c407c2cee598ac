package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// render prints v as indented JSON when --json is set, else as a table.
func (rt *runtime) render(v any, header []string, rows [][]string) error {
	if rt.jsonOutput {
		enc := json.NewEncoder(rt.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	printTable(rt.out, header, rows)
	return nil
}

func printTable(w io.Writer, header []string, rows [][]string) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoWrapText(false)
	for _, row := range rows {
		tw.Append(row)
	}
	tw.Render()
}

// fields renders key/value pairs as a two-column table.
func fields(pairs ...string) [][]string {
	rows := make([][]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rows = append(rows, []string{pairs[i], pairs[i+1]})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func printLine(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
