package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tunjipaul/folio/pkg/session"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d474")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#D4A017")).Bold(true)
	cmdStyle   = lipgloss.NewStyle().Bold(true)
)

func printHelp(w io.Writer) {
	commands := []struct{ cmd, desc string }{
		{"folio", "Open the admin dashboard"},
		{"folio login [--email E]", "Sign in (FOLIO_PASSWORD for non-interactive)"},
		{"folio logout", "Clear your session"},
		{"folio status", "Show who is signed in and until when"},
		{"folio upload <type> <file>", "Upload a resume or cv PDF"},
		{"folio download <type> [dest]", "Save the resume or cv PDF"},
		{"folio delete <type>", "Remove the resume or cv PDF"},
		{"folio site", "Open the public portfolio"},
		{"folio --version", "Show version"},
		{"folio help", "You are here"},
	}

	fmt.Fprintf(w, "\n  %s\n\n  %s\n\n  Commands:\n",
		titleStyle.Render("F O L I O"),
		dimStyle.Italic(true).Render("portfolio admin, from the terminal"))
	for _, c := range commands {
		fmt.Fprintf(w, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-30s", c.cmd)), dimStyle.Render(c.desc))
	}
	fmt.Fprintf(w, "\n  %s\n\n", dimStyle.Render("Config: FOLIO_API_URL, FOLIO_SITE_URL, FOLIO_HOME, FOLIO_TIMEOUT, LOG_LEVEL"))
}

// printStatus describes rec as of now. A logged-in flag without a token
// or with a passed expiry is reported as signed out.
func printStatus(w io.Writer, rec session.Record, now time.Time, apiURL string) {
	fmt.Fprintf(w, "\n  %s  %s\n\n", titleStyle.Render("FOLIO"), dimStyle.Render(apiURL))

	switch {
	case rec.AuthenticatedAt(now):
		exp, _ := rec.Expiry()
		fmt.Fprintf(w, "  %s as %s\n", goodStyle.Render("signed in"), rec.AdminEmail)
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(fmt.Sprintf("expires in %s (%s)",
			exp.Sub(now).Round(time.Minute), exp.Local().Format(time.RFC1123))))
	case rec.Empty():
		fmt.Fprintf(w, "  %s\n", warnStyle.Render("signed out"))
		fmt.Fprintf(w, "  %s\n\n", dimStyle.Render("To sign in: folio login"))
	default:
		fmt.Fprintf(w, "  %s", warnStyle.Render("session expired"))
		if rec.AdminEmail != "" {
			fmt.Fprintf(w, " for %s", rec.AdminEmail)
		}
		fmt.Fprintf(w, "\n  %s\n\n", dimStyle.Render("To sign in again: folio login"))
	}
}
