package nbacdn

type scheduleResponse struct {
	LeagueSchedule leagueSchedule `json:"leagueSchedule"`
}

type leagueSchedule struct {
	SeasonYear string         `json:"seasonYear"`
	GameDates  []gameDateResp `json:"gameDates"`
}

type gameDateResp struct {
	GameDate string     `json:"gameDate"`
	Games    []gameResp `json:"games"`
}

type gameResp struct {
	GameID          string           `json:"gameId"`
	GameStatus      int              `json:"gameStatus"`
	GameDateTimeUTC string           `json:"gameDateTimeUTC"`
	HomeTeam        teamResp         `json:"homeTeam"`
	AwayTeam        teamResp         `json:"awayTeam"`
	Broadcasters    broadcastersResp `json:"broadcasters"`
}

type teamResp struct {
	TeamID      int64  `json:"teamId"`
	TeamCity    string `json:"teamCity"`
	TeamName    string `json:"teamName"`
	TeamTricode string `json:"teamTricode"`
	Score       int    `json:"score"`
}

type broadcastersResp struct {
	NationalBroadcasters []broadcasterResp `json:"nationalBroadcasters"`
}

type broadcasterResp struct {
	BroadcasterDisplay string `json:"broadcasterDisplay"`
}
