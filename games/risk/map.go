package risk

import (
	"fmt"
	"sort"

	"gamesearch/utils"
)

type Canton struct {
	ID           int
	Name         string
	Abbreviation string
	Adjacent     []int // Sorted canton IDs
}

// Region grants Bonus extra reinforcements to a player holding all of its cantons.
type Region struct {
	Name    string
	Bonus   int
	Cantons []int
}

// Map is the static board. It is built once and shared by every state
// derived from it, so it must not be modified after the first game starts.
type Map struct {
	Cantons []*Canton
	Regions []*Region
}

func NewMap() *Map {
	return &Map{}
}

// AddCanton appends a canton and returns its ID.
func (m *Map) AddCanton(name, abbreviation string) int {
	id := len(m.Cantons)
	m.Cantons = append(m.Cantons, &Canton{ID: id, Name: name, Abbreviation: abbreviation})
	return id
}

// AddBorder adds a bidirectional border between two cantons.
func (m *Map) AddBorder(a, b int) {
	if a == b {
		return
	}
	m.link(a, b)
	m.link(b, a)
}

func (m *Map) link(from, to int) {
	c := m.Cantons[from]
	if utils.Contains(c.Adjacent, to) {
		return
	}
	c.Adjacent = append(c.Adjacent, to)
	sort.Ints(c.Adjacent)
}

func (m *Map) AddRegion(name string, bonus int, abbreviations ...string) error {
	region := &Region{Name: name, Bonus: bonus}
	for _, abbreviation := range abbreviations {
		id, ok := m.Lookup(abbreviation)
		if !ok {
			return fmt.Errorf("region %s: unknown canton %s", name, abbreviation)
		}
		region.Cantons = append(region.Cantons, id)
	}
	m.Regions = append(m.Regions, region)
	return nil
}

// Lookup finds a canton ID by abbreviation.
func (m *Map) Lookup(abbreviation string) (int, bool) {
	for _, c := range m.Cantons {
		if c.Abbreviation == abbreviation {
			return c.ID, true
		}
	}
	return -1, false
}

func (m *Map) Adjacent(a, b int) bool {
	return utils.Contains(m.Cantons[a].Adjacent, b)
}

// Switzerland returns the 26 canton board grouped into the seven statistical regions.
func Switzerland() *Map {
	m := NewMap()
	for _, c := range swissCantons {
		m.AddCanton(c.name, c.abbreviation)
	}
	for _, c := range swissCantons {
		from, _ := m.Lookup(c.abbreviation)
		for _, neighbour := range c.borders {
			to, ok := m.Lookup(neighbour)
			if !ok {
				panic(fmt.Sprintf("canton %s borders unknown canton %s", c.abbreviation, neighbour))
			}
			m.AddBorder(from, to)
		}
	}
	for _, r := range swissRegions {
		if err := m.AddRegion(r.name, r.bonus, r.cantons...); err != nil {
			panic(err)
		}
	}
	return m
}

var swissCantons = []struct {
	abbreviation string
	name         string
	borders      []string
}{
	{"AG", "Aargau", []string{"BE", "BL", "LU", "SO", "ZG", "ZH"}},
	{"AI", "Appenzell Innerrhoden", []string{"AR", "SG"}},
	{"AR", "Appenzell Ausserrhoden", []string{"SG"}},
	{"BE", "Bern", []string{"FR", "JU", "LU", "NE", "NW", "OW", "SO", "UR", "VD", "VS"}},
	{"BL", "Basel-Landschaft", []string{"BS", "JU", "SO"}},
	{"BS", "Basel-Stadt", nil},
	{"FR", "Fribourg", []string{"NE", "VD"}},
	{"GE", "Geneva", []string{"VD"}},
	{"GL", "Glarus", []string{"GR", "SG", "SZ", "UR"}},
	{"GR", "Graubünden", []string{"SG", "TI", "UR"}},
	{"JU", "Jura", []string{"SO"}},
	{"LU", "Lucerne", []string{"NW", "OW", "SZ", "ZG"}},
	{"NE", "Neuchâtel", []string{"VD"}},
	{"NW", "Nidwalden", []string{"OW", "UR"}},
	{"OW", "Obwalden", []string{"UR"}},
	{"SG", "St. Gallen", []string{"SZ", "TG", "ZH"}},
	{"SH", "Schaffhausen", []string{"TG", "ZH"}},
	{"SO", "Solothurn", nil},
	{"SZ", "Schwyz", []string{"UR", "ZG", "ZH"}},
	{"TG", "Thurgau", []string{"ZH"}},
	{"TI", "Ticino", []string{"UR", "VS"}},
	{"UR", "Uri", []string{"VS"}},
	{"VD", "Vaud", []string{"VS"}},
	{"VS", "Valais", nil},
	{"ZG", "Zug", []string{"ZH"}},
	{"ZH", "Zürich", nil},
}

var swissRegions = []struct {
	name    string
	bonus   int
	cantons []string
}{
	{"Lake Geneva", 2, []string{"GE", "VD", "VS"}},
	{"Espace Mittelland", 4, []string{"BE", "FR", "JU", "NE", "SO"}},
	{"Northwestern Switzerland", 2, []string{"AG", "BL", "BS"}},
	{"Zürich", 1, []string{"ZH"}},
	{"Eastern Switzerland", 5, []string{"AI", "AR", "GL", "GR", "SG", "SH", "TG"}},
	{"Central Switzerland", 4, []string{"LU", "NW", "OW", "SZ", "UR", "ZG"}},
	{"Ticino", 1, []string{"TI"}},
}
