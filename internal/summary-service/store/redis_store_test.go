package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Lobster444/AI-HAC25/internal/summary-service/odds"
)

// Testes de integração contra um Redis real. Sem REDIS_TEST_ADDR, são pulados.
func testStore(t *testing.T) *Store {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set, skipping redis-backed store tests")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 9})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("redis at %s not reachable: %v", addr, err)
	}
	t.Cleanup(func() {
		_ = rdb.FlushDB(context.Background()).Err()
		_ = rdb.Close()
	})

	return New(rdb)
}

func strPtr(s string) *string { return &s }

func TestSaveThenGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	ou := odds.Generate()
	saved, err := s.Save(ctx, SaveInput{
		MatchID:           "team-a-vs-team-b-20250717",
		Summary:           "Team A is weak.",
		BettingSuggestion: strPtr("Over 2.5 goals recommended."),
		OverUnderOdds:     &ou,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Get(ctx, "team-a-vs-team-b-20250717")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected a document after save")
	}
	if got.ID != got.MatchID || got.MatchID != "team-a-vs-team-b-20250717" {
		t.Errorf("id/matchId mismatch: %q / %q", got.ID, got.MatchID)
	}
	if got.Summary != "Team A is weak." || got.BettingSuggestion != "Over 2.5 goals recommended." {
		t.Errorf("unexpected content: %+v", got)
	}
	if got.OverUnderOdds == nil || got.OverUnderOdds.Over != ou.Over || got.OverUnderOdds.Under != ou.Under {
		t.Errorf("odds not round-tripped: %+v", got.OverUnderOdds)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Errorf("updatedAt %v before createdAt %v", got.UpdatedAt, got.CreatedAt)
	}
	if !saved.CreatedAt.Equal(got.CreatedAt) {
		t.Errorf("createdAt drifted between save and get")
	}
}

func TestSavePreservesCreatedAt(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, SaveInput{MatchID: "m1", Summary: "v1"})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	second, err := s.Save(ctx, SaveInput{MatchID: "m1", Summary: "v2"})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("createdAt changed on upsert: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("updatedAt not refreshed: %v -> %v", first.UpdatedAt, second.UpdatedAt)
	}
	if second.Summary != "v2" {
		t.Errorf("summary not overwritten: %q", second.Summary)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	s := testStore(t)

	got, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil document, got %+v", got)
	}
}

func TestUpdate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.Update(ctx, "missing", UpdateInput{Summary: strPtr("x")}); err != ErrNotFound {
		t.Fatalf("update missing: want ErrNotFound, got %v", err)
	}

	if _, err := s.Save(ctx, SaveInput{MatchID: "m2", Summary: "orig", BettingSuggestion: strPtr("Over 2.5")}); err != nil {
		t.Fatalf("save: %v", err)
	}

	updated, err := s.Update(ctx, "m2", UpdateInput{Summary: strPtr("edited")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Summary != "edited" {
		t.Errorf("summary = %q, want edited", updated.Summary)
	}
	// campo não informado permanece intacto
	if updated.BettingSuggestion != "Over 2.5" {
		t.Errorf("suggestion lost on partial update: %q", updated.BettingSuggestion)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, SaveInput{MatchID: "m3", Summary: "bye"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(ctx, "m3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := s.Get(ctx, "m3")
	if err != nil || got != nil {
		t.Fatalf("after delete want (nil, nil), got (%+v, %v)", got, err)
	}

	// segunda remoção não é erro
	if err := s.Delete(ctx, "m3"); err != nil {
		t.Fatalf("delete twice: %v", err)
	}
}

func TestCredentialLifecycle(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	key, err := s.GetAPIKey(ctx)
	if err != nil || key != "" {
		t.Fatalf("empty store: want (\"\", nil), got (%q, %v)", key, err)
	}

	if err := s.SaveAPIKey(ctx, "sk-test-123"); err != nil {
		t.Fatalf("save key: %v", err)
	}
	key, err = s.GetAPIKey(ctx)
	if err != nil || key != "sk-test-123" {
		t.Fatalf("get key: got (%q, %v)", key, err)
	}

	cred, err := s.GetCredential(ctx)
	if err != nil {
		t.Fatalf("get credential: %v", err)
	}
	if cred.ID != "openai" {
		t.Errorf("credential id = %q, want openai", cred.ID)
	}

	if err := s.DeleteAPIKey(ctx); err != nil {
		t.Fatalf("delete key: %v", err)
	}
	if err := s.DeleteAPIKey(ctx); err != nil {
		t.Fatalf("delete key twice: %v", err)
	}
	key, _ = s.GetAPIKey(ctx)
	if key != "" {
		t.Fatalf("key survived delete: %q", key)
	}
}
