package domain

import "time"

// ExplorationSummary is a denormalized snapshot of an exploration's metadata
// kept adjacent to the document for cheap listing and search.
type ExplorationSummary struct {
	ID           string
	Title        string
	Category     string
	Objective    string
	LanguageCode string
	Tags         []string

	// Ratings maps each value on the 1..5 scale, as a string key, to the
	// number of users who assigned it.
	Ratings             map[string]int
	ScaledAverageRating float64

	Status         string
	CommunityOwned bool

	OwnerIDs            []string
	EditorIDs           []string
	ViewerIDs           []string
	ContributorIDs      []string
	ContributorsSummary map[string]int

	Version            int
	ModelCreatedOn     time.Time
	ModelLastUpdated   time.Time
	FirstPublishedMsec float64
}

// RatingCount returns the total number of ratings recorded.
func (s *ExplorationSummary) RatingCount() int {
	total := 0
	for _, n := range s.Ratings {
		total += n
	}
	return total
}

// ToMetadataDict returns the subset of the summary shown in search results
// and collection listings.
func (s *ExplorationSummary) ToMetadataDict() map[string]any {
	return map[string]any{
		"id":        s.ID,
		"title":     s.Title,
		"objective": s.Objective,
	}
}

// ExplorationCommitLogEntry records one commit against an exploration:
// who made it, when, what it did, and the document's visibility afterwards.
type ExplorationCommitLogEntry struct {
	CreatedOn     time.Time
	LastUpdated   time.Time
	UserID        string
	Username      string
	ExplorationID string
	CommitType    string
	CommitMessage string
	CommitCmds    []map[string]any
	Version       int

	PostCommitStatus         string
	PostCommitCommunityOwned bool
	PostCommitIsPrivate      bool
}

// ToDict returns the externally visible form of the entry. The creation
// timestamp and raw user id are audit-only and excluded.
func (e *ExplorationCommitLogEntry) ToDict() map[string]any {
	cmds := make([]any, 0, len(e.CommitCmds))
	for _, c := range e.CommitCmds {
		cmds = append(cmds, c)
	}
	return map[string]any{
		"last_updated":                e.LastUpdated.UnixMilli(),
		"username":                    e.Username,
		"exploration_id":              e.ExplorationID,
		"commit_type":                 e.CommitType,
		"commit_message":              e.CommitMessage,
		"commit_cmds":                 cmds,
		"version":                     e.Version,
		"post_commit_status":          e.PostCommitStatus,
		"post_commit_community_owned": e.PostCommitCommunityOwned,
		"post_commit_is_private":      e.PostCommitIsPrivate,
	}
}
