// Package events reads the kill-event log written by the game events
// logger. The log is produced once per capture session and consumed
// read-only here; a missing or broken log is never an error, it just means
// the signal-analysis path runs instead.
package events

import (
	"encoding/json"
	"os"
	"strings"
)

// EventTypeChampionKill is the only event type the selectors act on.
const EventTypeChampionKill = "ChampionKill"

// GameEvent is one logged in-game event. WallClock is an absolute Unix
// timestamp comparable to the video file's creation time; GameTime is
// seconds of in-game clock.
type GameEvent struct {
	Type       string         `json:"type"`
	GameTime   float64        `json:"game_time"`
	WallClock  *float64       `json:"wall_clock"`
	EventID    int            `json:"event_id"`
	KillerName string         `json:"killer_name"`
	VictimName string         `json:"victim_name"`
	Data       map[string]any `json:"data,omitempty"`
}

// EventLog is the session file schema.
type EventLog struct {
	SessionStart  *float64    `json:"session_start"`
	GameStartTime *float64    `json:"game_start_time"`
	Events        []GameEvent `json:"events"`
	TotalKills    int         `json:"total_kills"`
}

// Load reads an event log. Absence or malformed content signals "unusable"
// with a nil log, not an error.
func Load(path string) *EventLog {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var log EventLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil
	}
	return &log
}

// Kills returns the champion-kill events in log order.
func (l *EventLog) Kills() []GameEvent {
	var kills []GameEvent
	for _, e := range l.Events {
		if e.Type == EventTypeChampionKill {
			kills = append(kills, e)
		}
	}
	return kills
}

// Killer resolves the killer name, falling back through the raw API fields
// when the logger could not resolve it at capture time.
func (e GameEvent) Killer() string {
	if e.KillerName != "" {
		return e.KillerName
	}
	for _, key := range []string{"KillerName", "killerName"} {
		if v, ok := e.Data[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// KillerIs reports whether the killer name case-insensitively matches name.
func (e GameEvent) KillerIs(name string) bool {
	return strings.EqualFold(strings.TrimSpace(e.Killer()), strings.TrimSpace(name))
}

// WallClockTime returns the event's wall-clock timestamp, reconstructing it
// from game time and session start when the field is missing.
func (e GameEvent) WallClockTime(l *EventLog) float64 {
	if e.WallClock != nil {
		return *e.WallClock
	}
	var sessionStart float64
	if l != nil && l.SessionStart != nil {
		sessionStart = *l.SessionStart
	}
	return e.GameTime + sessionStart
}
