package nbacdn

import "time"

const (
	providerName = "nbacdn"

	// DefaultScheduleURL is the public season schedule published by the league CDN.
	DefaultScheduleURL = "https://cdn.nba.com/static/json/staticData/scheduleLeagueV2.json"
	defaultUserAgent   = "Mozilla/5.0 (compatible; nba-tonight/1.0)"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)
