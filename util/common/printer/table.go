package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"

	"github.com/proofai/proofai-cli/internal/style"
)

// Column pairs a JSON field name with the header it is displayed under.
type Column struct {
	Field  string
	Header string
}

// TableOptions configures table output.
type TableOptions struct {
	// Columns fixes column order and display names. When empty, columns
	// are derived from the first row's fields in alphabetical order.
	Columns []Column

	// Caption is an optional summary line printed below the table.
	Caption string

	// Out receives the rendered table. Defaults to stdout.
	Out io.Writer
}

// PrintTableWithOptions renders res, a slice of structs or maps, as a table.
// When colour is enabled it uses a lipgloss table with the project theme;
// otherwise it falls back to a boxed pterm table that survives plain pipes.
func PrintTableWithOptions(res any, options TableOptions) error {
	out := options.Out
	if out == nil {
		out = os.Stdout
	}

	records, err := decodeRows(res)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode table data")
		return err
	}
	if len(records) == 0 {
		return nil
	}

	columns := options.Columns
	if len(columns) == 0 {
		columns = inferColumns(records[0])
	}

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, len(columns))
		for i, c := range columns {
			val, ok := record[c.Field]
			if !ok {
				row[i] = "-"
				continue
			}
			row[i] = fmt.Sprint(val)
		}
		rows = append(rows, row)
	}

	if style.Enabled {
		fmt.Fprintln(out, styledTable(headers, rows))
	} else if err := plainTable(out, headers, rows); err != nil {
		log.Error().Err(err).Msg("failed to render table")
		return err
	}

	if options.Caption != "" {
		if style.Enabled {
			fmt.Fprintln(out, lipgloss.NewStyle().Foreground(style.Dim).Render(options.Caption))
		} else {
			fmt.Fprintln(out, options.Caption)
		}
	}

	return nil
}

// decodeRows normalises res through a JSON round trip so column lookups see
// the same field names the --json output uses.
func decodeRows(res any) ([]map[string]any, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("marshal table data: %w", err)
	}
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode table data: %w", err)
	}
	return records, nil
}

func inferColumns(record map[string]any) []Column {
	fields := make([]string, 0, len(record))
	for field := range record {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	columns := make([]Column, len(fields))
	for i, field := range fields {
		columns[i] = Column{Field: field, Header: field}
	}
	return columns
}

// styledTable renders a lipgloss table with zebra-striped rows.
func styledTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(style.Cyan).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().
		Foreground(style.White).
		Padding(0, 1)

	dimCellStyle := lipgloss.NewStyle().
		Foreground(style.Dim).
		Padding(0, 1)

	t := lgtable.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(style.Subtle)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			if row%2 == 0 {
				return cellStyle
			}
			return dimCellStyle
		})

	for _, r := range rows {
		t = t.Row(r...)
	}

	return t.Render()
}

// plainTable renders a boxed pterm table for non-TTY sessions.
func plainTable(out io.Writer, headers []string, rows [][]string) error {
	data := pterm.TableData{headers}
	for _, r := range rows {
		data = append(data, r)
	}
	return pterm.DefaultTable.
		WithWriter(out).
		WithHasHeader().
		WithBoxed(true).
		WithData(data).
		Render()
}
