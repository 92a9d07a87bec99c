package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/joes9987/CreatorAssistant/internal/events"
)

// SessionLogger polls the Live Client Data API during a match and records
// champion kills with wall-clock timestamps. Run it while playing and
// recording; the resulting log is what the event highlight selector reads.
type SessionLogger struct {
	logger zerolog.Logger
	client *Client

	outputPath string
	interval   time.Duration
}

// NewSessionLogger creates a logger writing the event log to outputPath.
func NewSessionLogger(logger zerolog.Logger, client *Client, outputPath string) *SessionLogger {
	return &SessionLogger{
		logger:     logger.With().Str("component", "riot").Logger(),
		client:     client,
		outputPath: outputPath,
		interval:   time.Second,
	}
}

// Run polls until ctx is cancelled, then saves the collected events. A log
// with zero kills is not written.
func (s *SessionLogger) Run(ctx context.Context) error {
	s.logger.Info().
		Str("output", s.outputPath).
		Msg("waiting for an active match")

	seen := make(map[int]bool)
	var log events.EventLog
	var sessionStart *float64
	disconnected := false

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.save(&log)
		case <-ticker.C:
		}

		data, err := s.client.AllGameData(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return s.save(&log)
			}
			disconnected = true
			continue
		}

		// Reconnect after a gap means a new game started; event IDs
		// restart from zero so the dedup set must too.
		if disconnected && sessionStart != nil {
			seen = make(map[int]bool)
			s.logger.Info().Msg("new game detected")
		}
		disconnected = false

		if sessionStart == nil {
			now := unixNow()
			sessionStart = &now
			log.SessionStart = sessionStart
			s.logger.Info().Msg("connected to game")
		}

		if log.GameStartTime == nil && data.GameData.GameTime > 0 {
			gt := data.GameData.GameTime
			log.GameStartTime = &gt
		}

		s.collect(data, seen, &log)
	}
}

func (s *SessionLogger) collect(data *GameData, seen map[int]bool, log *events.EventLog) {
	for _, ev := range data.EventList() {
		if ev.EventID == nil || seen[*ev.EventID] {
			continue
		}
		seen[*ev.EventID] = true

		switch ev.EventName {
		case "GameStart":
			gt := ev.EventTime
			log.GameStartTime = &gt
			s.logger.Info().Float64("game_time", ev.EventTime).Msg("game start")

		case "ChampionKill":
			kill := s.buildKill(data, ev)
			log.Events = append(log.Events, kill)
			log.TotalKills = len(log.Events)
			s.logger.Info().
				Str("killer", kill.KillerName).
				Str("victim", kill.VictimName).
				Float64("game_time", kill.GameTime).
				Msg("kill")
		}
	}
}

func (s *SessionLogger) buildKill(data *GameData, ev RawEvent) events.GameEvent {
	killer := stringField(ev.Fields, "KillerName", "killerName")
	if killer == "" {
		if id, ok := intField(ev.Fields, "KillerID", "killerId"); ok {
			if name, found := data.PlayerMap()[id]; found {
				killer = name
			} else {
				killer = fmt.Sprintf("Unknown#%d", id)
			}
		} else {
			killer = "Unknown"
		}
	}

	victim := stringField(ev.Fields, "VictimName", "victimName")
	if victim == "" {
		victim = "?"
	}

	// Keep the raw fields minus the ones promoted to typed columns.
	raw := make(map[string]any, len(ev.Fields))
	for k, v := range ev.Fields {
		switch k {
		case "EventID", "EventName", "EventTime":
		default:
			raw[k] = v
		}
	}

	now := unixNow()
	return events.GameEvent{
		Type:       events.EventTypeChampionKill,
		GameTime:   ev.EventTime,
		WallClock:  &now,
		EventID:    *ev.EventID,
		KillerName: killer,
		VictimName: victim,
		Data:       raw,
	}
}

func (s *SessionLogger) save(log *events.EventLog) error {
	if len(log.Events) == 0 {
		s.logger.Info().Msg("no kill events recorded")
		return nil
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode event log: %w", err)
	}
	if err := os.WriteFile(s.outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write event log: %w", err)
	}

	s.logger.Info().
		Int("kills", len(log.Events)).
		Str("output", s.outputPath).
		Msg("saved event log")
	return nil
}

func unixNow() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

func stringField(fields map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := fields[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func intField(fields map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		if v, ok := fields[k].(float64); ok {
			return int(v), true
		}
	}
	return 0, false
}
