package catalog

import "github.com/albapepper/bballscorer/internal/provider"

// nbaTeams is the league's static team reference data, in franchise id order.
var nbaTeams = []provider.Team{
	{ID: 1610612737, Abbreviation: "ATL", FullName: "Atlanta Hawks", Nickname: "Hawks", City: "Atlanta"},
	{ID: 1610612738, Abbreviation: "BOS", FullName: "Boston Celtics", Nickname: "Celtics", City: "Boston"},
	{ID: 1610612739, Abbreviation: "CLE", FullName: "Cleveland Cavaliers", Nickname: "Cavaliers", City: "Cleveland"},
	{ID: 1610612740, Abbreviation: "NOP", FullName: "New Orleans Pelicans", Nickname: "Pelicans", City: "New Orleans"},
	{ID: 1610612741, Abbreviation: "CHI", FullName: "Chicago Bulls", Nickname: "Bulls", City: "Chicago"},
	{ID: 1610612742, Abbreviation: "DAL", FullName: "Dallas Mavericks", Nickname: "Mavericks", City: "Dallas"},
	{ID: 1610612743, Abbreviation: "DEN", FullName: "Denver Nuggets", Nickname: "Nuggets", City: "Denver"},
	{ID: 1610612744, Abbreviation: "GSW", FullName: "Golden State Warriors", Nickname: "Warriors", City: "Golden State"},
	{ID: 1610612745, Abbreviation: "HOU", FullName: "Houston Rockets", Nickname: "Rockets", City: "Houston"},
	{ID: 1610612746, Abbreviation: "LAC", FullName: "Los Angeles Clippers", Nickname: "Clippers", City: "Los Angeles"},
	{ID: 1610612747, Abbreviation: "LAL", FullName: "Los Angeles Lakers", Nickname: "Lakers", City: "Los Angeles"},
	{ID: 1610612748, Abbreviation: "MIA", FullName: "Miami Heat", Nickname: "Heat", City: "Miami"},
	{ID: 1610612749, Abbreviation: "MIL", FullName: "Milwaukee Bucks", Nickname: "Bucks", City: "Milwaukee"},
	{ID: 1610612750, Abbreviation: "MIN", FullName: "Minnesota Timberwolves", Nickname: "Timberwolves", City: "Minnesota"},
	{ID: 1610612751, Abbreviation: "BKN", FullName: "Brooklyn Nets", Nickname: "Nets", City: "Brooklyn"},
	{ID: 1610612752, Abbreviation: "NYK", FullName: "New York Knicks", Nickname: "Knicks", City: "New York"},
	{ID: 1610612753, Abbreviation: "ORL", FullName: "Orlando Magic", Nickname: "Magic", City: "Orlando"},
	{ID: 1610612754, Abbreviation: "IND", FullName: "Indiana Pacers", Nickname: "Pacers", City: "Indiana"},
	{ID: 1610612755, Abbreviation: "PHI", FullName: "Philadelphia 76ers", Nickname: "76ers", City: "Philadelphia"},
	{ID: 1610612756, Abbreviation: "PHX", FullName: "Phoenix Suns", Nickname: "Suns", City: "Phoenix"},
	{ID: 1610612757, Abbreviation: "POR", FullName: "Portland Trail Blazers", Nickname: "Trail Blazers", City: "Portland"},
	{ID: 1610612758, Abbreviation: "SAC", FullName: "Sacramento Kings", Nickname: "Kings", City: "Sacramento"},
	{ID: 1610612759, Abbreviation: "SAS", FullName: "San Antonio Spurs", Nickname: "Spurs", City: "San Antonio"},
	{ID: 1610612760, Abbreviation: "OKC", FullName: "Oklahoma City Thunder", Nickname: "Thunder", City: "Oklahoma City"},
	{ID: 1610612761, Abbreviation: "TOR", FullName: "Toronto Raptors", Nickname: "Raptors", City: "Toronto"},
	{ID: 1610612762, Abbreviation: "UTA", FullName: "Utah Jazz", Nickname: "Jazz", City: "Utah"},
	{ID: 1610612763, Abbreviation: "MEM", FullName: "Memphis Grizzlies", Nickname: "Grizzlies", City: "Memphis"},
	{ID: 1610612764, Abbreviation: "WAS", FullName: "Washington Wizards", Nickname: "Wizards", City: "Washington"},
	{ID: 1610612765, Abbreviation: "DET", FullName: "Detroit Pistons", Nickname: "Pistons", City: "Detroit"},
	{ID: 1610612766, Abbreviation: "CHA", FullName: "Charlotte Hornets", Nickname: "Hornets", City: "Charlotte"},
}

// NBATeams returns a copy of the static team list.
func NBATeams() []provider.Team {
	out := make([]provider.Team, len(nbaTeams))
	copy(out, nbaTeams)
	return out
}
