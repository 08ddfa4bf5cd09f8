package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/sheet"
)

const displayTime = "2006-01-02 15:04"

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// printTable writes tab-separated lines as aligned columns, trimming the
// padding tabwriter leaves at the end of each line.
func printTable(w io.Writer, header string, lines []string) {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, l := range lines {
		fmt.Fprintln(tw, l)
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func printItems(w io.Writer, items []model.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found.")
		return
	}

	lines := make([]string, 0, len(items))
	for _, it := range items {
		picked := "-"
		if it.PickedUpAt != nil {
			picked = it.PickedUpAt.Format(displayTime)
		}
		lines = append(lines, strings.Join([]string{
			it.ID, it.Name, it.OwnerID, it.ReceiptNumber, it.CellID, it.Status,
			it.DepositedAt.Format(displayTime), picked,
		}, "\t"))
	}
	printTable(w, "ID\tNAME\tOWNER\tRECEIPT\tCELL\tSTATUS\tDEPOSITED\tPICKED UP", lines)
}

func printPeople(w io.Writer, people []model.Person) {
	if len(people) == 0 {
		fmt.Fprintln(w, "No people registered.")
		return
	}

	lines := make([]string, 0, len(people))
	for _, p := range people {
		lines = append(lines, strings.Join([]string{p.ID, p.Name, p.Phone, p.RegisteredAt}, "\t"))
	}
	printTable(w, "ID\tNAME\tPHONE\tREGISTERED", lines)
}

func printResponses(w io.Writer, responses []model.Response) {
	if len(responses) == 0 {
		fmt.Fprintln(w, "No responses found.")
		return
	}

	lines := make([]string, 0, len(responses))
	for _, r := range responses {
		processed := "no"
		if r.Processed {
			processed = "yes"
		}
		lines = append(lines, strings.Join([]string{r.Timestamp, r.Name, r.Phone, processed}, "\t"))
	}
	printTable(w, "TIMESTAMP\tNAME\tPHONE\tPROCESSED", lines)
}

func printCells(w io.Writer, cells []model.Cell) {
	if len(cells) == 0 {
		fmt.Fprintln(w, "No cells found.")
		return
	}

	lines := make([]string, 0, len(cells))
	for _, c := range cells {
		state := "free"
		if c.Occupied {
			state = "occupied"
		}
		lines = append(lines, strings.Join([]string{c.ID, c.Room, c.Row, c.Column, c.Level, state}, "\t"))
	}
	printTable(w, "ID\tROOM\tROW\tCOLUMN\tLEVEL\tSTATE", lines)
}

func printDump(w io.Writer, tables map[string][]sheet.Row) {
	for i, name := range sheet.StandardTables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (%d rows)\n", name, len(tables[name]))

		lines := make([]string, 0, len(tables[name]))
		for _, r := range tables[name] {
			lines = append(lines, strings.Join(r, "\t"))
		}
		printTable(w, strings.Join(sheet.Headers[name], "\t"), lines)
	}
}
