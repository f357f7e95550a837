package service

import "strings"

// AliasEntry maps one spelling of a team identity to its canonical full name.
type AliasEntry struct {
	From string
	To   string
}

// TeamResolver reconciles team identities across sources onto one canonical
// full-name key: schedule/historical team codes on one side, bookmaker team
// strings (which vary by book and by era) on the other. Unresolved names pass
// through unchanged; downstream joins are inner, so unmapped rows drop there.
type TeamResolver struct {
	byCode   map[string]string
	byMarket map[string]string
}

// NewTeamResolver builds a resolver from the two alias tables. On duplicate
// keys the first entry wins.
func NewTeamResolver(codes, marketAliases []AliasEntry) *TeamResolver {
	return &TeamResolver{
		byCode:   buildAliasMap(codes),
		byMarket: buildAliasMap(marketAliases),
	}
}

func buildAliasMap(entries []AliasEntry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, exists := m[e.From]; !exists {
			m[e.From] = e.To
		}
	}
	return m
}

// CanonicalFromCode resolves a schedule/historical team code.
func (r *TeamResolver) CanonicalFromCode(code string) (string, bool) {
	name, ok := r.byCode[code]
	return name, ok
}

// CanonicalFromMarket resolves a bookmaker's team string. Unmapped names are
// returned unchanged after trimming.
func (r *TeamResolver) CanonicalFromMarket(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := r.byMarket[trimmed]; ok {
		return canonical
	}
	return trimmed
}

// DefaultTeamCodes returns the abbreviation table for current NFL franchises.
func DefaultTeamCodes() []AliasEntry {
	return []AliasEntry{
		{"ARI", "Arizona Cardinals"},
		{"ATL", "Atlanta Falcons"},
		{"BAL", "Baltimore Ravens"},
		{"BUF", "Buffalo Bills"},
		{"CAR", "Carolina Panthers"},
		{"CHI", "Chicago Bears"},
		{"CIN", "Cincinnati Bengals"},
		{"CLE", "Cleveland Browns"},
		{"DAL", "Dallas Cowboys"},
		{"DEN", "Denver Broncos"},
		{"DET", "Detroit Lions"},
		{"GB", "Green Bay Packers"},
		{"HOU", "Houston Texans"},
		{"IND", "Indianapolis Colts"},
		{"JAX", "Jacksonville Jaguars"},
		{"KC", "Kansas City Chiefs"},
		{"LAC", "Los Angeles Chargers"},
		{"LAR", "Los Angeles Rams"},
		{"LV", "Las Vegas Raiders"},
		{"MIA", "Miami Dolphins"},
		{"MIN", "Minnesota Vikings"},
		{"NE", "New England Patriots"},
		{"NO", "New Orleans Saints"},
		{"NYG", "New York Giants"},
		{"NYJ", "New York Jets"},
		{"PHI", "Philadelphia Eagles"},
		{"PIT", "Pittsburgh Steelers"},
		{"SEA", "Seattle Seahawks"},
		{"SF", "San Francisco 49ers"},
		{"TB", "Tampa Bay Buccaneers"},
		{"TEN", "Tennessee Titans"},
		{"WAS", "Washington Commanders"},
	}
}

// DefaultMarketAliases returns the spelling table for bookmaker team strings,
// covering short forms and relocated or renamed franchises.
func DefaultMarketAliases() []AliasEntry {
	return []AliasEntry{
		{"Washington Football Team", "Washington Commanders"},
		{"Washington Redskins", "Washington Commanders"},
		{"San Diego Chargers", "Los Angeles Chargers"},
		{"LA Chargers", "Los Angeles Chargers"},
		{"St. Louis Rams", "Los Angeles Rams"},
		{"St Louis Rams", "Los Angeles Rams"},
		{"LA Rams", "Los Angeles Rams"},
		{"Oakland Raiders", "Las Vegas Raiders"},
		{"LA Raiders", "Las Vegas Raiders"},
		{"NY Giants", "New York Giants"},
		{"NY Jets", "New York Jets"},
		{"SF 49ers", "San Francisco 49ers"},
		{"San Fran 49ers", "San Francisco 49ers"},
		{"Tampa Bay Bucs", "Tampa Bay Buccaneers"},
		{"New England Pats", "New England Patriots"},
		{"Jax Jaguars", "Jacksonville Jaguars"},
		{"Houston Oilers", "Tennessee Titans"},
	}
}
