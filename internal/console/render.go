package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/libroteca/librocli/internal/models"
)

// Sanitize makes backend text safe for terminal rendering: control bytes
// (including ESC, so no escape-sequence injection) are dropped and
// whitespace that would break table layout becomes a plain space. Markup
// like <b>x</b> passes through literally.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(' ')
		case r < 0x20 || r == 0x7f:
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

type styles struct {
	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	danger  lipgloss.Style
}

func newStyles() styles {
	return styles{
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

func (s styles) level(level NoticeLevel) lipgloss.Style {
	switch level {
	case NoticeSuccess:
		return s.success
	case NoticeWarning:
		return s.warning
	case NoticeDanger:
		return s.danger
	default:
		return s.info
	}
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no results")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func renderLibros(w io.Writer, libros []models.Libro) {
	rows := make([][]string, 0, len(libros))
	for _, l := range libros {
		rows = append(rows, []string{
			strconv.FormatInt(l.ID, 10),
			Sanitize(l.Titulo),
			Sanitize(l.Autor),
			Sanitize(l.Isbn),
		})
	}
	printTable(w, []string{"ID", "TITULO", "AUTOR", "ISBN"}, rows)
}

func renderUsuarios(w io.Writer, usuarios []models.Usuario) {
	rows := make([][]string, 0, len(usuarios))
	for _, u := range usuarios {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			Sanitize(u.Email),
			Sanitize(u.Nombre),
			Sanitize(strings.Join(u.Roles, ", ")),
		})
	}
	printTable(w, []string{"ID", "EMAIL", "NOMBRE", "ROLES"}, rows)
}
