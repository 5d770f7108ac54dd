package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
)

//go:embed teams.yaml
var defaultTeamTable []byte

// TeamStyle is how a team is shown on the page.
type TeamStyle struct {
	Abbreviation string `yaml:"abbreviation" json:"abbreviation"`
	Color        string `yaml:"color" json:"color,omitempty"`
}

// TeamTable maps teams and broadcasters to display labels.
type TeamTable struct {
	Teams    map[string]TeamStyle `yaml:"teams"`
	Networks map[string]string    `yaml:"networks"`
}

// LoadTeamTable reads the table at path, or the embedded default when path is empty.
func LoadTeamTable(path string) (TeamTable, error) {
	raw := defaultTeamTable
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return TeamTable{}, fmt.Errorf("config: read team table: %w", err)
		}
		raw = b
	}
	return ParseTeamTable(raw)
}

// ParseTeamTable decodes a YAML team table.
func ParseTeamTable(raw []byte) (TeamTable, error) {
	var table TeamTable
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return TeamTable{}, fmt.Errorf("config: parse team table: %w", err)
	}
	networks := make(map[string]string, len(table.Networks))
	for k, v := range table.Networks {
		networks[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	table.Networks = networks
	return table, nil
}

// Style returns the display style for a team. Unknown teams fall back to the
// feed tricode, then to the first three letters of the team name. A fallback
// keeps the colour of the table entry matched by name or by tricode.
func (t TeamTable) Style(team schedule.TeamRef) TeamStyle {
	style, ok := t.Teams[team.FullName()]
	if ok && style.Abbreviation != "" {
		return style
	}
	if tricode := strings.ToUpper(strings.TrimSpace(team.Tricode)); tricode != "" {
		if style.Color == "" {
			style.Color = t.colorFor(tricode)
		}
		return TeamStyle{Abbreviation: tricode, Color: style.Color}
	}
	name := []rune(strings.ToUpper(strings.TrimSpace(team.Name)))
	if len(name) > 3 {
		name = name[:3]
	}
	return TeamStyle{Abbreviation: string(name), Color: style.Color}
}

func (t TeamTable) colorFor(abbreviation string) string {
	for _, style := range t.Teams {
		if strings.EqualFold(style.Abbreviation, abbreviation) && style.Color != "" {
			return style.Color
		}
	}
	return ""
}

// NetworkLabel returns the display label for a broadcaster name.
func (t TeamTable) NetworkLabel(name string) string {
	if label, ok := t.Networks[strings.ToUpper(strings.TrimSpace(name))]; ok && label != "" {
		return label
	}
	return strings.TrimSpace(name)
}
