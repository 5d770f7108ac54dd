package view

import (
	"time"

	"github.com/preston-bernstein/nba-tonight/internal/broadcast"
	"github.com/preston-bernstein/nba-tonight/internal/config"
	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
	"github.com/preston-bernstein/nba-tonight/internal/teamgames"
	"github.com/preston-bernstein/nba-tonight/internal/timeutil"
)

// Messages shown by the page renderer.
const (
	MessageNoNationalGames  = "There are no national TV games today."
	MessageUnavailable      = "Couldn't load schedule"
	MessageGamesUnavailable = "Couldn't load games"
	MessageNoRecentGames    = "No recent games"
	MessageNoUpcomingGames  = "No upcoming games"
)

const (
	OutcomeWin  = "W"
	OutcomeLoss = "L"
)

// TeamLabel is how a team is shown on the page.
type TeamLabel struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Color        string `json:"color,omitempty"`
}

// TodayGame is a nationally broadcast game on today's slate.
type TodayGame struct {
	ID        string                `json:"id"`
	Away      TeamLabel             `json:"away"`
	Home      TeamLabel             `json:"home"`
	StartTime time.Time             `json:"startTime"`
	Time      string                `json:"time"`
	Times     []timeutil.ZonedClock `json:"times"`
	Networks  []string              `json:"networks"`
}

// PastGame is a completed game seen from the target team's side.
type PastGame struct {
	ID            string    `json:"id"`
	Opponent      TeamLabel `json:"opponent"`
	Home          bool      `json:"home"`
	Prefix        string    `json:"prefix"`
	TeamScore     int       `json:"teamScore"`
	OpponentScore int       `json:"opponentScore"`
	Outcome       string    `json:"outcome"`
	StartTime     time.Time `json:"startTime"`
	Date          string    `json:"date"`
}

// UpcomingGame is a scheduled game seen from the target team's side.
type UpcomingGame struct {
	ID        string    `json:"id"`
	Opponent  TeamLabel `json:"opponent"`
	Home      bool      `json:"home"`
	Prefix    string    `json:"prefix"`
	StartTime time.Time `json:"startTime"`
	When      string    `json:"when"`
}

// View is everything the page renderer needs for one day and one team.
type View struct {
	Date        string            `json:"date"`
	DateKey     string            `json:"dateKey"`
	Available   bool              `json:"available"`
	Message     string            `json:"message,omitempty"`
	TeamID      int64             `json:"teamId"`
	Today       []TodayGame       `json:"today"`
	Last        []PastGame        `json:"last"`
	LastMessage string            `json:"lastMessage,omitempty"`
	Next        []UpcomingGame    `json:"next"`
	NextMessage string            `json:"nextMessage,omitempty"`
	Record      *teamgames.Record `json:"record"`
	GeneratedAt time.Time         `json:"generatedAt"`

	TalkingPoint *config.TalkingPoint `json:"talkingPoint,omitempty"`
}

// Qualified is a game from today's bucket that passed the broadcast filter,
// along with the broadcast names that matched.
type Qualified struct {
	Game     schedule.Game
	Networks []string
}

// TodayGames returns, in feed order, the games from buckets keyed on dateKey
// that the policy considers nationally relevant.
func TodayGames(s schedule.Schedule, dateKey string, policy broadcast.Policy) []Qualified {
	out := make([]Qualified, 0)
	for _, day := range s.Days {
		if !timeutil.MatchesDateKey(day.Key, dateKey) {
			continue
		}
		for _, g := range day.Games {
			decision := policy.Evaluate(g.BroadcastNames())
			if !decision.Relevant {
				continue
			}
			out = append(out, Qualified{Game: g, Networks: decision.Matched})
		}
	}
	return out
}

// Input collects the results of one build for assembly.
type Input struct {
	Now        time.Time
	TeamID     int64
	Normalizer timeutil.Normalizer
	Teams      config.TeamTable
	Today      []Qualified
	Windows    teamgames.Windows
	Record     teamgames.Record
}

// Assemble packages the build results into a View. It only maps values and
// never modifies the games it is given.
func Assemble(in Input) View {
	n := in.Normalizer
	record := in.Record

	v := View{
		Date:        n.LongDate(in.Now),
		DateKey:     n.DateKey(in.Now),
		Available:   true,
		TeamID:      in.TeamID,
		Today:       make([]TodayGame, 0, len(in.Today)),
		Last:        make([]PastGame, 0, len(in.Windows.Last)),
		Next:        make([]UpcomingGame, 0, len(in.Windows.Next)),
		Record:      &record,
		GeneratedAt: in.Now.UTC(),
	}

	for _, q := range in.Today {
		v.Today = append(v.Today, TodayGame{
			ID:        q.Game.ID,
			Away:      label(in.Teams, q.Game.Away.Team),
			Home:      label(in.Teams, q.Game.Home.Team),
			StartTime: q.Game.StartTime,
			Time:      n.Clock(q.Game.StartTime),
			Times:     n.Clocks(q.Game.StartTime),
			Networks:  networkLabels(in.Teams, q.Networks),
		})
	}
	if len(v.Today) == 0 {
		v.Message = MessageNoNationalGames
	}

	for _, g := range in.Windows.Last {
		own, opp, home, ok := teamgames.Perspective(g, in.TeamID)
		if !ok {
			continue
		}
		outcome := OutcomeLoss
		if own.Score > opp.Score {
			outcome = OutcomeWin
		}
		v.Last = append(v.Last, PastGame{
			ID:            g.ID,
			Opponent:      label(in.Teams, opp.Team),
			Home:          home,
			Prefix:        prefix(home),
			TeamScore:     own.Score,
			OpponentScore: opp.Score,
			Outcome:       outcome,
			StartTime:     g.StartTime,
			Date:          n.ShortDay(g.StartTime),
		})
	}
	if len(v.Last) == 0 {
		v.LastMessage = MessageNoRecentGames
	}

	for _, g := range in.Windows.Next {
		_, opp, home, ok := teamgames.Perspective(g, in.TeamID)
		if !ok {
			continue
		}
		v.Next = append(v.Next, UpcomingGame{
			ID:        g.ID,
			Opponent:  label(in.Teams, opp.Team),
			Home:      home,
			Prefix:    prefix(home),
			StartTime: g.StartTime,
			When:      n.DayAndClock(g.StartTime),
		})
	}
	if len(v.Next) == 0 {
		v.NextMessage = MessageNoUpcomingGames
	}

	return v
}

// Fallback is the view served when there is no usable schedule: nothing for
// today, empty windows and no record.
func Fallback(n timeutil.Normalizer, now time.Time, teamID int64) View {
	return View{
		Date:        n.LongDate(now),
		DateKey:     n.DateKey(now),
		Available:   false,
		Message:     MessageUnavailable,
		TeamID:      teamID,
		Today:       []TodayGame{},
		Last:        []PastGame{},
		LastMessage: MessageGamesUnavailable,
		Next:        []UpcomingGame{},
		NextMessage: MessageGamesUnavailable,
		GeneratedAt: now.UTC(),
	}
}

// Summary returns the counts logged after a build.
func (v View) Summary() (today, last, next int) {
	return len(v.Today), len(v.Last), len(v.Next)
}

func label(table config.TeamTable, team schedule.TeamRef) TeamLabel {
	style := table.Style(team)
	return TeamLabel{
		ID:           team.ID,
		Name:         team.FullName(),
		Abbreviation: style.Abbreviation,
		Color:        style.Color,
	}
}

func networkLabels(table config.TeamTable, names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		l := table.NetworkLabel(name)
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func prefix(home bool) string {
	if home {
		return "vs"
	}
	return "@"
}
