package nbacdn

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-tonight/internal/domain/schedule"
	"github.com/preston-bernstein/nba-tonight/internal/providers"
)

const sampleFeed = `{
	"leagueSchedule": {
		"seasonYear": "2024-25",
		"gameDates": [
			{
				"gameDate": "10/22/2024 00:00:00",
				"games": [
					{
						"gameId": "0022400061",
						"gameStatus": 3,
						"gameDateTimeUTC": "2024-10-23T23:30:00Z",
						"homeTeam": {"teamId": 1610612740, "teamCity": "New Orleans", "teamName": "Pelicans", "teamTricode": "NOP", "score": 116},
						"awayTeam": {"teamId": 1610612745, "teamCity": "Houston", "teamName": "Rockets", "teamTricode": "HOU", "score": 113},
						"broadcasters": {"nationalBroadcasters": [{"broadcasterDisplay": "ESPN"}, {"broadcasterDisplay": " "}]}
					},
					{
						"gameId": "0022400062",
						"gameStatus": 1,
						"gameDateTimeUTC": "2024-10-24T02:00:00Z",
						"homeTeam": {"teamId": 1610612747, "teamCity": "Los Angeles", "teamName": "Lakers", "teamTricode": "LAL", "score": 0},
						"awayTeam": {"teamId": 1610612738, "teamCity": "Boston", "teamName": "Celtics", "teamTricode": "BOS", "score": 0},
						"broadcasters": {}
					}
				]
			}
		]
	}
}`

func TestFetchScheduleHitsFeedAndMapsResponse(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, sampleFeed)
	}))
	defer srv.Close()

	client := NewClient(Config{UserAgent: "test-agent"})
	sched, err := client.FetchSchedule(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotUA != "test-agent" {
		t.Fatalf("expected user agent header, got %q", gotUA)
	}
	if sched.Season != "2024-25" || len(sched.Days) != 1 {
		t.Fatalf("unexpected schedule %+v", sched)
	}
	day := sched.Days[0]
	if day.Key != "10/22/2024 00:00:00" || len(day.Games) != 2 {
		t.Fatalf("unexpected bucket %+v", day)
	}

	g := day.Games[0]
	if g.ID != "0022400061" || g.Status != schedule.StatusFinal {
		t.Fatalf("unexpected game identity %+v", g)
	}
	if !g.StartTime.Equal(time.Date(2024, 10, 23, 23, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %s", g.StartTime)
	}
	if g.Home.Team.ID != 1610612740 || g.Home.Score != 116 || g.Away.Score != 113 {
		t.Fatalf("unexpected sides %+v / %+v", g.Home, g.Away)
	}
	if len(g.Broadcasts) != 1 || g.Broadcasts[0].Display != "ESPN" {
		t.Fatalf("expected blank broadcaster dropped, got %+v", g.Broadcasts)
	}
	if day.Games[1].Broadcasts != nil {
		t.Fatalf("expected no broadcasts for empty block, got %+v", day.Games[1].Broadcasts)
	}
}

func TestFetchScheduleHandlesNon200(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return &http.Response{
			StatusCode: http.StatusForbidden,
			Body:       io.NopCloser(strings.NewReader("denied")),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})
	_, err := client.FetchSchedule(context.Background(), "http://example.com/feed.json")
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
	stErr, ok := providers.AsStatusError(err)
	if !ok {
		t.Fatalf("expected status error, got %T", err)
	}
	if stErr.StatusCode != http.StatusForbidden || stErr.Body != "denied" || stErr.Provider != providerName {
		t.Fatalf("unexpected status error %+v", stErr)
	}
}

func TestFetchScheduleHandlesDecodeError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("{bad json")),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})
	if _, err := client.FetchSchedule(context.Background(), "http://example.com/feed.json"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFetchScheduleWrapsTransportError(t *testing.T) {
	boom := errors.New("dial failed")
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		_ = req
		return nil, boom
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})
	_, err := client.FetchSchedule(context.Background(), "http://example.com/feed.json")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}

func TestFetchScheduleDefaultsURLAndAgent(t *testing.T) {
	var gotURL, gotUA string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		gotUA = req.Header.Get("User-Agent")
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"leagueSchedule":{"gameDates":[]}}`)),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})
	sched, err := client.FetchSchedule(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotURL != DefaultScheduleURL {
		t.Fatalf("expected default url, got %s", gotURL)
	}
	if gotUA != defaultUserAgent {
		t.Fatalf("expected default user agent, got %s", gotUA)
	}
	if sched.GameCount() != 0 {
		t.Fatalf("expected empty schedule, got %d games", sched.GameCount())
	}
}

func TestFetchScheduleHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(Config{})
	if _, err := client.FetchSchedule(ctx, srv.URL); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestNewClientSetsDefaultHTTPClient(t *testing.T) {
	c := NewClient(Config{})
	httpClient, ok := c.httpClient.(*http.Client)
	if !ok {
		t.Fatalf("expected default http client")
	}
	if httpClient.Timeout == 0 {
		t.Fatalf("expected timeout to be set on default http client")
	}
	if c.Name() != "nbacdn" {
		t.Fatalf("unexpected provider name %s", c.Name())
	}
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
