package normalizer

// Cell is one button-like odds cell extracted from a board card:
// the points text ("-3.5", "O 45.5"), the price text ("−110") and the
// button title ("O", "U", ...). Any field may be empty.
type Cell struct {
	Points string `json:"points"`
	Odds   string `json:"odds"`
	Title  string `json:"title"`
}

// Card is one matchup's worth of labeled text cells as extracted by the
// retrieval layer. The normalizer consumes only this; it never touches
// the page itself.
type Card struct {
	// TeamLabels are the labels found with the primary selector pattern,
	// away team first. AltTeamLabels come from the fallback pattern and
	// are consulted only when TeamLabels has fewer than two entries.
	TeamLabels    []string `json:"team_labels"`
	AltTeamLabels []string `json:"alt_team_labels"`

	// Cells are the odds cells in board order.
	Cells []Cell `json:"cells"`

	// ScoreCells are the live scoreboard values, present only while a
	// game is in play.
	ScoreCells []string `json:"score_cells"`

	// TimeText is the raw time/status cell ("SUN 1:00PM", "FINAL", ...).
	TimeText string `json:"time_text"`
}
