package server

import (
	"sort"

	"github.com/tomz197/aimtrainer/internal/loop/config"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Hits     int
	Accuracy float64
	clientID int // Used for deterministic tie-break when scores are equal
}

// Snapshot is an immutable view of the hub for rendering.
type Snapshot struct {
	Players   int
	TotalHits int
	TopScores []TopScoreEntry // Best sessions, highest hit count first
}

// buildTopScores ranks sessions by hits, then accuracy, then join order.
// Sessions with fewer than TopScoreMinShot shots are left out.
func buildTopScores(clients map[int]*ClientHandle) []TopScoreEntry {
	entries := make([]TopScoreEntry, 0, len(clients))
	for id, h := range clients {
		if h.Stats.Shots() < config.TopScoreMinShot {
			continue
		}
		entries = append(entries, TopScoreEntry{
			Username: h.Username,
			Hits:     h.Stats.Hits,
			Accuracy: h.Stats.Accuracy(),
			clientID: id,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Hits != b.Hits {
			return a.Hits > b.Hits
		}
		if a.Accuracy != b.Accuracy {
			return a.Accuracy > b.Accuracy
		}
		return a.clientID < b.clientID
	})

	if len(entries) > config.TopScoresCount {
		entries = entries[:config.TopScoresCount]
	}
	return entries
}

// totalHits sums hits over all sessions.
func totalHits(clients map[int]*ClientHandle) int {
	n := 0
	for _, h := range clients {
		n += h.Stats.Hits
	}
	return n
}
