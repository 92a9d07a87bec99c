// Package riot talks to the League of Legends Live Client Data API, a
// local HTTPS endpoint (self-signed certificate) that exists only while a
// match is running. It is the same data source Overwolf's game events use.
package riot

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is where the Live Client Data API listens during a match.
const DefaultBaseURL = "https://127.0.0.1:2999"

// Client fetches live game data.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client for the local Live Client Data API. The API
// serves a self-signed certificate, so verification is skipped; the
// endpoint is loopback-only.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 2 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// GameData is the subset of the allgamedata payload the logger needs.
type GameData struct {
	AllPlayers []Player        `json:"allPlayers"`
	Events     json.RawMessage `json:"events"`
	GameData   struct {
		GameTime float64 `json:"gameTime"`
	} `json:"gameData"`
}

// Player identifies one participant.
type Player struct {
	ParticipantID *int   `json:"participantId"`
	SummonerName  string `json:"summonerName"`
}

// RawEvent is one entry of the events list, with the fixed fields pulled
// out and everything else retained.
type RawEvent struct {
	EventID   *int    `json:"EventID"`
	EventName string  `json:"EventName"`
	EventTime float64 `json:"EventTime"`

	Fields map[string]any `json:"-"`
}

// UnmarshalJSON keeps the full field set alongside the typed ones.
func (e *RawEvent) UnmarshalJSON(data []byte) error {
	type plain RawEvent
	if err := json.Unmarshal(data, (*plain)(e)); err != nil {
		return err
	}
	return json.Unmarshal(data, &e.Fields)
}

// AllGameData fetches the full live payload. A nil result with a nil error
// never happens; an unreachable API is an error (the session loop treats it
// as "no game running").
func (c *Client) AllGameData(ctx context.Context) (*GameData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/liveclientdata/allgamedata", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("live client API returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var data GameData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse live client payload: %w", err)
	}
	return &data, nil
}

// EventList extracts the event entries, tolerating the API's habit of
// returning the events object either inline or as a JSON-encoded string.
func (d *GameData) EventList() []RawEvent {
	raw := d.Events
	if len(raw) == 0 {
		return nil
	}

	// String form: unquote, then parse the embedded object.
	if raw[0] == '"' {
		var embedded string
		if err := json.Unmarshal(raw, &embedded); err != nil {
			return nil
		}
		raw = []byte(embedded)
	}

	var wrapper struct {
		Events []RawEvent `json:"Events"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil
	}
	return wrapper.Events
}

// PlayerMap builds a participantId -> summoner name map.
func (d *GameData) PlayerMap() map[int]string {
	m := make(map[int]string, len(d.AllPlayers))
	for _, p := range d.AllPlayers {
		if p.ParticipantID != nil && p.SummonerName != "" {
			m[*p.ParticipantID] = p.SummonerName
		}
	}
	return m
}
