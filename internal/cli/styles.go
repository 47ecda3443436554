package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"pymeta/internal/pydist"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)

	kindStyles = map[pydist.Kind]lipgloss.Style{
		pydist.KindDistInfo: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		pydist.KindEggInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
)

// isTerminal reports whether w is an interactive terminal; styling is only
// applied there so piped output stays plain.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// table collects rows for a listing. Plain output goes through tabwriter;
// on a terminal it is drawn as a borderless lipgloss table.
type table struct {
	styled  bool
	headers []string
	rows    [][]string
	// styleFor picks the style of a body cell; ok=false means unstyled.
	styleFor func(row, col int) (lipgloss.Style, bool)
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) {
	if t.styled {
		fmt.Fprintln(w, t.styledString())
		return
	}

	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.headers, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func (t *table) styledString() string {
	last := len(t.headers) - 1
	return lgtable.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle()
			if row == lgtable.HeaderRow {
				style = headerStyle
			} else if t.styleFor != nil {
				if s, ok := t.styleFor(row, col); ok {
					style = s
				}
			}
			if col < last {
				style = style.PaddingRight(2)
			}
			return style
		}).
		String()
}
