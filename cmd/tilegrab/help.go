package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/tilegrab/internal/places"
	"github.com/naveenspark/tilegrab/pkg/domain"
)

func banner() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3ecce4")).
		Bold(true).
		Render("T I L E G R A B")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("One point, one zoom, one tile.")

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("Run without flags to be prompted for latitude, longitude, zoom and API key.\n" +
			"Flags may also come from TILEGRAB_* environment variables or ~/.tilegrab.yaml.")

	return fmt.Sprintf("%s\n\n%s\n\n%s", title, tagline, hint)
}

func printPlaces(w io.Writer, ps []places.Place) {
	slugStyle := lipgloss.NewStyle().Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	coordStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a844"))

	fmt.Fprintf(w, "\n  Places:\n") //nolint:errcheck
	for _, p := range ps {
		tile := domain.TileAt(p.Location, 18)
		fmt.Fprintf(w, "    %s  %s  %s\n", //nolint:errcheck
			slugStyle.Render(fmt.Sprintf("%-22s", p.Slug)),
			coordStyle.Render(fmt.Sprintf("%-24s z18 %s", p.Location, tile)),
			nameStyle.Render(p.Name),
		)
	}
	fmt.Fprintln(w) //nolint:errcheck
}
