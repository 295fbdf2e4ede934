package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/marco/movieCatalog/internal/catalog"
)

const doneWord = "done"

// runMenu drives the interactive session until the user enters anything
// other than a menu choice or input ends.
func runMenu(in io.Reader, out io.Writer, cat *catalog.Catalog, asTable bool) {
	scanner := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimRight(scanner.Text(), "\r"), true
	}

	for {
		slog.Info("movies in file", "count", cat.Len())

		fmt.Fprintln(out, "1) Add Movie")
		fmt.Fprintln(out, "2) Display All Movies")
		fmt.Fprintln(out, "Enter to quit")

		choice, ok := readLine()
		if !ok {
			return
		}
		slog.Info("user choice", "choice", choice)

		switch choice {
		case "1":
			promptAdd(out, cat, readLine)
		case "2":
			printMovies(out, cat.All(), asTable)
		default:
			return
		}
	}
}

func promptAdd(out io.Writer, cat *catalog.Catalog, readLine func() (string, bool)) {
	fmt.Fprintln(out, "Enter the movie title")
	title, ok := readLine()
	if !ok {
		return
	}
	if strings.TrimSpace(title) == "" {
		slog.Error("you must enter a movie title")
		return
	}

	// check before asking for genres
	if cat.Exists(strings.TrimSpace(title)) {
		slog.Info("duplicate movie title", "title", title)
		return
	}

	var genres []string
	for {
		fmt.Fprintf(out, "Enter genre (or %s to quit)\n", doneWord)
		genre, ok := readLine()
		if !ok {
			slog.Warn("input ended before genres were finished, movie not added", "title", title)
			return
		}
		if genre == doneWord {
			break
		}
		if strings.TrimSpace(genre) == "" {
			slog.Error("you must enter a genre")
			continue
		}
		genres = append(genres, strings.TrimSpace(genre))
	}

	m, err := cat.Add(title, genres)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrDuplicateTitle):
			slog.Info("duplicate movie title", "title", title)
		case errors.Is(err, catalog.ErrMissingInput):
			slog.Error("missing input", "error", err)
		default:
			slog.Error("failed to add movie", "title", title, "error", err)
		}
		return
	}

	slog.Info("movie added", "id", m.ID)
}
