package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/marco/movieCatalog/internal/movie"
)

// stdoutIsTerminal reports whether tables should be drawn on stdout
func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printMovies writes movies as a table, or as the plain
// "Id/Title/Genre(s)" blocks when output is not a terminal.
func printMovies(w io.Writer, movies []movie.Movie, asTable bool) {
	if !asTable {
		for _, m := range movies {
			fmt.Fprintf(w, "Id: %d\n", m.ID)
			fmt.Fprintf(w, "Title: %s\n", m.Title)
			fmt.Fprintf(w, "Genre(s): %s\n", m.GenreList())
			fmt.Fprintln(w)
		}
		return
	}

	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{strconv.FormatUint(m.ID, 10), m.Title, m.GenreList()})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"ID", "TITLE", "GENRES"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	))
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
