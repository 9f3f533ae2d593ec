package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-collect/internal/core"
	"github.com/vovakirdan/tui-collect/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func completedResult(score1, score2 int) multiplayer.MatchResult {
	winner := core.Player1
	if score2 > score1 {
		winner = core.Player2
	}
	return multiplayer.MatchResult{
		MatchID:   multiplayer.NewMatchID(),
		Mode:      multiplayer.MatchModeLocal,
		Reason:    multiplayer.MatchEndReasonCompleted,
		Winner:    winner,
		Score1:    score1,
		Score2:    score2,
		BoardSize: (score1 + score2) / 2,
		Items:     score1 + score2,
		Seed:      42,
		Ticks:     300,
		Duration:  1500 * time.Millisecond,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndFetchMatch(t *testing.T) {
	store := openTestStore(t)

	result := completedResult(12, 18)
	result.Dropped = 3
	if err := store.SaveMatchResult(result); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	rec, err := store.MatchByID(string(result.MatchID))
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("MatchByID() returned nil for a saved match")
	}

	if !rec.Completed() {
		t.Errorf("EndReason = %q, want completed", rec.EndReason)
	}
	if rec.Winner != 1 {
		t.Errorf("Winner = %d, want 1", rec.Winner)
	}
	if rec.Score1 != 12 || rec.Score2 != 18 {
		t.Errorf("Scores = %d/%d, want 12/18", rec.Score1, rec.Score2)
	}
	if rec.Mode != "Local" {
		t.Errorf("Mode = %q, want Local", rec.Mode)
	}
	if rec.Items != 30 || rec.BoardSize != 15 || rec.Seed != 42 || rec.Ticks != 300 || rec.Dropped != 3 {
		t.Errorf("record fields not round-tripped: %+v", rec)
	}
	if rec.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %s, want 1.5s", rec.Duration)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestStoreMatchByIDMissing(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.MatchByID("nope")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil record, got %+v", rec)
	}
}

func TestStoreDuplicateMatchID(t *testing.T) {
	store := openTestStore(t)

	result := completedResult(3, 1)
	if err := store.SaveMatchResult(result); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}
	if err := store.SaveMatchResult(result); err == nil {
		t.Error("saving the same match twice should fail")
	}
}

func TestStoreQuitHasNoWinner(t *testing.T) {
	store := openTestStore(t)

	result := completedResult(2, 0)
	result.Reason = multiplayer.MatchEndReasonQuit
	if err := store.SaveMatchResult(result); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	rec, err := store.MatchByID(string(result.MatchID))
	if err != nil || rec == nil {
		t.Fatalf("MatchByID() = %v, %v", rec, err)
	}
	if rec.Winner != -1 {
		t.Errorf("Winner = %d, want -1 for a quit match", rec.Winner)
	}
}

func TestStoreRecentMatchesLimit(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := 0; i < 5; i++ {
		r := completedResult(i, 10)
		r.MatchID = multiplayer.MatchID(fmt.Sprintf("match-%d", i))
		ids = append(ids, string(r.MatchID))
		if err := store.SaveMatchResult(r); err != nil {
			t.Fatalf("SaveMatchResult() failed: %v", err)
		}
	}

	recent, err := store.RecentMatches(3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 matches with limit, got %d", len(recent))
	}

	// Newest first
	if recent[0].MatchID != ids[4] || recent[2].MatchID != ids[2] {
		t.Errorf("matches not newest first: %s, %s", recent[0].MatchID, recent[2].MatchID)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Matches != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	for _, r := range []multiplayer.MatchResult{
		completedResult(20, 10),
		completedResult(5, 25),
		completedResult(15, 15), // tie goes to Player 1
	} {
		if err := store.SaveMatchResult(r); err != nil {
			t.Fatalf("SaveMatchResult() failed: %v", err)
		}
	}
	quit := completedResult(1, 2)
	quit.Reason = multiplayer.MatchEndReasonQuit
	if err := store.SaveMatchResult(quit); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Matches != 4 || stats.Completed != 3 {
		t.Errorf("Matches/Completed = %d/%d, want 4/3", stats.Matches, stats.Completed)
	}
	if stats.Wins[core.Player1] != 2 || stats.Wins[core.Player2] != 1 {
		t.Errorf("Wins = %v, want [2 1]", stats.Wins)
	}
	if stats.BestScore != 25 {
		t.Errorf("BestScore = %d, want 25", stats.BestScore)
	}
	if stats.TotalItems != 93 {
		t.Errorf("TotalItems = %d, want 93", stats.TotalItems)
	}
}

func TestStoreClearMatches(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatchResult(completedResult(1, 0))
	if err := store.ClearMatches(); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}

	recent, _ := store.RecentMatches(10)
	if len(recent) != 0 {
		t.Errorf("Expected 0 matches after clear, got %d", len(recent))
	}
}

func TestRecordFromResult(t *testing.T) {
	r := completedResult(4, 6)
	r.Reason = multiplayer.MatchEndReasonCancelled
	rec := RecordFromResult(r)

	if rec.EndReason != "cancelled" || rec.Winner != -1 {
		t.Errorf("RecordFromResult() = %+v", rec)
	}
}
