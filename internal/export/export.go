// Package export renders report results as CSV files and aligned text
// tables. Flags render as ✔ (hit or better) and ✘ (miss or worse); ties and
// unflagged cells stay blank.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/albapepper/bballscorer/internal/provider"
	"github.com/albapepper/bballscorer/internal/report"
	"github.com/albapepper/bballscorer/internal/stats"
)

// utf8BOM makes spreadsheet applications detect the encoding of ✔/✘.
const utf8BOM = "\ufeff"

const dateLayout = "02/01/2006"

// Table is a header plus string rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// WriteCSV writes the table as UTF-8 CSV preceded by a byte-order mark.
func WriteCSV(w io.Writer, t Table) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// WriteText writes the table with aligned columns.
func WriteText(w io.Writer, t Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Header, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Filename names a downloaded export: "matchup-1b4e28ba.csv".
func Filename(kind, reportID string) string {
	id := reportID
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		return kind + ".csv"
	}
	return kind + "-" + id + ".csv"
}

// --------------------------------------------------------------------------
// Report tables
// --------------------------------------------------------------------------

// MatchupTable renders a matchup comparison: one row per block and metric.
func MatchupTable(r *report.MatchupReport) Table {
	home, away := r.Summary.Home.Abbreviation, r.Summary.Away.Abbreviation
	t := Table{Header: []string{"Metric", home, home + " ✓", away, away + " ✓"}}
	for _, row := range r.Rows {
		t.Rows = append(t.Rows, []string{
			BlockLabel(row.Block) + " - " + row.Label,
			optional(row.HomeValue),
			row.HomeFlag.Symbol(),
			optional(row.AwayValue),
			row.AwayFlag.Symbol(),
		})
	}
	return t
}

// BlockLabel names a matchup block for display.
func BlockLabel(block string) string {
	switch block {
	case report.BlockOverall:
		return "Overall"
	case report.BlockHomeAway:
		return "Home/Away"
	default:
		return block
	}
}

// H2HTable renders head-to-head meetings.
func H2HTable(r *report.H2HReport) Table {
	t := Table{Header: []string{"Date", "Home", "Home PTS", "Home ✓", "Away", "Away PTS", "Away ✓", "Total points"}}
	for _, g := range r.Rows {
		t.Rows = append(t.Rows, []string{
			Date(g.Date),
			g.HomeTeam,
			Number(g.HomePoints),
			g.HomeFlag.Symbol(),
			g.AwayTeam,
			Number(g.AwayPoints),
			g.AwayFlag.Symbol(),
			Number(g.TotalPoints),
		})
	}
	return t
}

// PlayerTable renders a player line report: game context, then a value,
// line and hit column for every requested line. Quarter reports get an extra
// column marking games that fell back to full-game stats.
func PlayerTable(r *report.PlayerReport) Table {
	header := []string{"Date", "Team", "Opponent", "Venue", "MIN"}
	for _, l := range r.Summary.Lines {
		header = append(header, l.Label, l.Label+" Line", l.Label+" ✓")
	}
	quarter := r.Summary.Period > 0
	if quarter {
		header = append(header, "Quarter data")
	}

	t := Table{Header: header}
	for _, row := range r.Rows {
		cols := []string{Date(row.Date), row.Team, row.Opponent, VenueLabel(row.Venue), row.Minutes}
		for _, c := range row.Cells {
			cols = append(cols, cellValue(c), c.Line, hitSymbol(c))
		}
		if quarter {
			if row.Approximate {
				cols = append(cols, "approx")
			} else {
				cols = append(cols, "✔")
			}
		}
		t.Rows = append(t.Rows, cols)
	}
	return t
}

// ScanTable renders line-scan matches.
func ScanTable(r *report.ScanReport) Table {
	t := Table{Header: []string{"Player", "Team", "Next game", "Hits", "Games", "Hit %", "Stat", "Line"}}
	for _, row := range r.Rows {
		next := row.NextGame
		if next == "" {
			next = "-"
		}
		t.Rows = append(t.Rows, []string{
			row.Player,
			row.Team,
			next,
			strconv.Itoa(row.Hits),
			strconv.Itoa(row.Games),
			Number(row.HitRate),
			string(row.Key),
			row.Line,
		})
	}
	return t
}

// PlayersTable renders player candidates.
func PlayersTable(players []provider.Player) Table {
	t := Table{Header: []string{"ID", "Name", "Active"}}
	for _, p := range players {
		active := ""
		if p.Active {
			active = "✔"
		}
		t.Rows = append(t.Rows, []string{strconv.Itoa(p.ID), p.FullName, active})
	}
	return t
}

// --------------------------------------------------------------------------
// Cell formatting
// --------------------------------------------------------------------------

// Number formats a value without trailing zeros: 10, 112.8, 46.5.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// VenueLabel renders a venue as Home/Away.
func VenueLabel(v provider.Venue) string {
	switch v {
	case provider.VenueHome:
		return "Home"
	case provider.VenueAway:
		return "Away"
	default:
		return ""
	}
}

// Date renders a date the way every table does.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return Number(*v)
}

func cellValue(c stats.Cell) string {
	if !c.Available {
		return ""
	}
	return Number(c.Value)
}

func hitSymbol(c stats.Cell) string {
	if !c.Available {
		return ""
	}
	if c.Hit {
		return stats.FlagBetter.Symbol()
	}
	return stats.FlagWorse.Symbol()
}
