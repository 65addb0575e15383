package normalizer

import "strings"

// UnknownAbbr is the sentinel for a team name that yields no code at all.
const UnknownAbbr = "UNK"

type teamEntry struct {
	key  string
	abbr string
}

// teamTable maps NFL team names to abbreviations. Full names sit before
// short names so the most specific key wins; entries are checked in
// order with a substring match against the uppercased label.
var teamTable = []teamEntry{
	{"ARIZONA CARDINALS", "ARI"}, {"CARDINALS", "ARI"},
	{"ATLANTA FALCONS", "ATL"}, {"FALCONS", "ATL"},
	{"BALTIMORE RAVENS", "BAL"}, {"RAVENS", "BAL"},
	{"BUFFALO BILLS", "BUF"}, {"BILLS", "BUF"},
	{"CAROLINA PANTHERS", "CAR"}, {"PANTHERS", "CAR"},
	{"CHICAGO BEARS", "CHI"}, {"BEARS", "CHI"},
	{"CINCINNATI BENGALS", "CIN"}, {"BENGALS", "CIN"},
	{"CLEVELAND BROWNS", "CLE"}, {"BROWNS", "CLE"},
	{"DALLAS COWBOYS", "DAL"}, {"COWBOYS", "DAL"},
	{"DENVER BRONCOS", "DEN"}, {"BRONCOS", "DEN"},
	{"DETROIT LIONS", "DET"}, {"LIONS", "DET"},
	{"GREEN BAY PACKERS", "GB"}, {"PACKERS", "GB"},
	{"HOUSTON TEXANS", "HOU"}, {"TEXANS", "HOU"},
	{"INDIANAPOLIS COLTS", "IND"}, {"COLTS", "IND"},
	{"JACKSONVILLE JAGUARS", "JAX"}, {"JAGUARS", "JAX"},
	{"KANSAS CITY CHIEFS", "KC"}, {"CHIEFS", "KC"},
	{"LAS VEGAS RAIDERS", "LV"}, {"RAIDERS", "LV"},
	{"LOS ANGELES CHARGERS", "LAC"}, {"CHARGERS", "LAC"},
	{"LOS ANGELES RAMS", "LAR"}, {"RAMS", "LAR"},
	{"MIAMI DOLPHINS", "MIA"}, {"DOLPHINS", "MIA"},
	{"MINNESOTA VIKINGS", "MIN"}, {"VIKINGS", "MIN"},
	{"NEW ENGLAND PATRIOTS", "NE"}, {"PATRIOTS", "NE"},
	{"NEW ORLEANS SAINTS", "NO"}, {"SAINTS", "NO"},
	{"NEW YORK GIANTS", "NYG"}, {"GIANTS", "NYG"},
	{"NEW YORK JETS", "NYJ"}, {"JETS", "NYJ"},
	{"PHILADELPHIA EAGLES", "PHI"}, {"EAGLES", "PHI"},
	{"PITTSBURGH STEELERS", "PIT"}, {"STEELERS", "PIT"},
	{"SAN FRANCISCO 49ERS", "SF"}, {"49ERS", "SF"},
	{"SEATTLE SEAHAWKS", "SEA"}, {"SEAHAWKS", "SEA"},
	{"TAMPA BAY BUCCANEERS", "TB"}, {"BUCCANEERS", "TB"},
	{"TENNESSEE TITANS", "TEN"}, {"TITANS", "TEN"},
	{"WASHINGTON COMMANDERS", "WAS"}, {"COMMANDERS", "WAS"},
}

// Abbreviate resolves a team name to its code. Unknown names fall back
// to the first three characters of the normalized name, then UnknownAbbr.
func Abbreviate(teamName string) string {
	name := strings.ToUpper(strings.TrimSpace(teamName))
	for _, e := range teamTable {
		if strings.Contains(name, e.key) {
			return e.abbr
		}
	}
	if len(name) >= 3 {
		return name[:3]
	}
	if name != "" {
		return name
	}
	return UnknownAbbr
}
