// ABOUTME: Column layout for multi-field entry views using tablewriter
// ABOUTME: Borderless, left-aligned, unwrapped table rendered once at construction

package selector

import (
	"strings"

	"github.com/olekukonko/tablewriter"
)

const columnGap = "  "

// layoutColumns renders rows as aligned text, one string per row. Rows with
// a single field (or none) are returned as-is when no row has more.
func layoutColumns(rows [][]string) []string {
	out := make([]string, len(rows))
	ncols := 0
	for _, r := range rows {
		ncols = max(ncols, len(r))
	}
	if ncols <= 1 {
		for i, r := range rows {
			if len(r) == 1 {
				out[i] = r[0]
			}
		}
		return out
	}

	// tablewriter drops ragged cells; pad every row to the same arity.
	padded := make([][]string, len(rows))
	for i, r := range rows {
		p := make([]string, ncols)
		copy(p, r)
		padded[i] = p
	}

	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetColumnSeparator("")
	table.SetCenterSeparator("")
	table.SetRowSeparator("")
	table.SetNoWhiteSpace(true)
	table.SetTablePadding(columnGap)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(padded)
	table.Render()

	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	for i := range out {
		if i < len(lines) {
			out[i] = strings.TrimRight(lines[i], " ")
		}
	}
	return out
}
