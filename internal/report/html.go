package report

import (
	"fmt"
	"html/template"
	"io"

	"github.com/couchcryptid/quake-report/internal/domain"
)

// LeaderboardColumns is the fixed header of the leaderboard table.
var LeaderboardColumns = []string{
	"Top Location",
	"Months as Monthly Maximum",
	"Highest Monthly Magnitude",
	"When Highest Occurred",
}

var leaderboardTmpl = template.Must(template.New("leaderboard").Funcs(template.FuncMap{
	"mag":  func(m float64) string { return fmt.Sprintf("%.1f", m) },
	"when": FormatTime,
}).Parse(`<table class="leaderboard">
  <thead>
    <tr>
{{- range .Columns}}
      <th>{{.}}</th>
{{- end}}
    </tr>
  </thead>
  <tbody>
{{- range .Entries}}
    <tr>
      <td>{{.Location}}</td>
      <td>{{.Wins}}</td>
      <td>{{mag .BestMagnitude}}</td>
      <td>{{when .BestTimestamp}}</td>
    </tr>
{{- end}}
  </tbody>
</table>
`))

// WriteLeaderboardHTML renders the leaderboard as a standalone HTML table
// fragment. An empty leaderboard still yields the header row.
func WriteLeaderboardHTML(w io.Writer, entries []domain.LeaderboardEntry) error {
	data := struct {
		Columns []string
		Entries []domain.LeaderboardEntry
	}{
		Columns: LeaderboardColumns,
		Entries: entries,
	}
	if err := leaderboardTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render leaderboard: %w", err)
	}
	return nil
}
