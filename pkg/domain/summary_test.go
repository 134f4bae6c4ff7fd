package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExplorationSummary(t *testing.T) {
	s := &ExplorationSummary{
		ID:        "exp1",
		Title:     "Fractions",
		Objective: "learn fractions",
		Ratings:   map[string]int{"1": 0, "2": 1, "3": 0, "4": 2, "5": 4},
	}

	assert.Equal(t, 7, s.RatingCount())
	assert.Equal(t, map[string]any{
		"id":        "exp1",
		"title":     "Fractions",
		"objective": "learn fractions",
	}, s.ToMetadataDict())
}

func TestCommitLogEntryToDict(t *testing.T) {
	updated := time.Date(2016, 4, 1, 12, 0, 0, 0, time.UTC)
	entry := &ExplorationCommitLogEntry{
		CreatedOn:     updated.Add(-time.Hour),
		LastUpdated:   updated,
		UserID:        "uid-secret",
		Username:      "alice",
		ExplorationID: "exp1",
		CommitType:    "edit",
		CommitMessage: "fix typos",
		CommitCmds: []map[string]any{
			{"cmd": CmdAddState, "state_name": "A"},
		},
		Version:                  3,
		PostCommitStatus:         "public",
		PostCommitCommunityOwned: false,
		PostCommitIsPrivate:      false,
	}

	d := entry.ToDict()
	assert.Equal(t, updated.UnixMilli(), d["last_updated"])
	assert.Equal(t, "alice", d["username"])
	assert.Equal(t, 3, d["version"])
	assert.NotContains(t, d, "created_on", "audit fields stay out of the public form")
	assert.NotContains(t, d, "user_id")
}
