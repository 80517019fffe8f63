package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/arianlotfi/crypto-locker/internal/config"
	"github.com/arianlotfi/crypto-locker/internal/logger"
	"github.com/arianlotfi/crypto-locker/models"
)

// newTestSQLite opens a throwaway database file, runs migrations, and
// returns wired repositories. The file lives in t.TempDir so it is removed
// with the test.
func newTestSQLite(t *testing.T) (*Repositories, *DB) {
	t.Helper()

	ctx := context.Background()
	cfg := config.DB{Path: filepath.Join(t.TempDir(), "vault.db")}
	log := logger.Nop()

	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		t.Fatalf("NewConnectSQLite error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate error: %v", err)
	}

	return NewRepositories(db, log), db
}

func mustCreate(t *testing.T, repos *Repositories, owner int64, name string) int64 {
	t.Helper()

	ctx := context.Background()
	if err := repos.Users.EnsureUser(ctx, owner); err != nil {
		t.Fatalf("EnsureUser error: %v", err)
	}
	id, err := repos.Credentials.Create(ctx, owner, name, []byte("user-ct"), []byte("pass-ct"))
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	return id
}

func TestSQLite_ListOrdersByName(t *testing.T) {
	repos, _ := newTestSQLite(t)
	ctx := context.Background()

	mustCreate(t, repos, 7, "Gmail")
	mustCreate(t, repos, 7, "Bank")
	mustCreate(t, repos, 7, "Work VPN")

	got, err := repos.Credentials.List(ctx, 7)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}
	want := []string{"Bank", "Gmail", "Work VPN"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", names, want)
		}
	}
}

func TestSQLite_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	repos, _ := newTestSQLite(t)
	ctx := context.Background()

	mustCreate(t, repos, 7, "Gmail")
	mustCreate(t, repos, 7, "Work VPN")

	got, err := repos.Credentials.Search(ctx, 7, "gma")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Gmail" {
		t.Fatalf("expected [Gmail], got %+v", got)
	}

	got, err = repos.Credentials.Search(ctx, 7, "zzz")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result for zzz, got %+v", got)
	}
}

func TestSQLite_OwnerIsolation(t *testing.T) {
	repos, _ := newTestSQLite(t)
	ctx := context.Background()

	const ownerA, ownerB = int64(7), int64(8)
	id := mustCreate(t, repos, ownerA, "Gmail")
	if err := repos.Users.EnsureUser(ctx, ownerB); err != nil {
		t.Fatalf("EnsureUser error: %v", err)
	}

	// fetch: A's record and a nonexistent id are indistinguishable for B
	_, errForeign := repos.Credentials.Get(ctx, id, ownerB)
	_, errMissing := repos.Credentials.Get(ctx, id+1000, ownerB)
	if !errors.Is(errForeign, ErrCredentialNotFound) || !errors.Is(errMissing, ErrCredentialNotFound) {
		t.Fatalf("expected identical not-found errors, got %v and %v", errForeign, errMissing)
	}

	// list and search never cross owners
	listB, err := repos.Credentials.List(ctx, ownerB)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(listB) != 0 {
		t.Fatalf("expected B to see no records, got %+v", listB)
	}
	searchB, err := repos.Credentials.Search(ctx, ownerB, "Gmail")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(searchB) != 0 {
		t.Fatalf("expected B's search to be empty, got %+v", searchB)
	}

	// update and delete with the wrong owner are silent no-ops
	ok, err := repos.Credentials.UpdateField(ctx, id, ownerB, models.FieldPassword, []byte("stolen"))
	if err != nil || ok {
		t.Fatalf("expected no-op update, got ok=%v err=%v", ok, err)
	}
	ok, err = repos.Credentials.Delete(ctx, id, ownerB)
	if err != nil || ok {
		t.Fatalf("expected no-op delete, got ok=%v err=%v", ok, err)
	}

	// A still sees the untouched record
	cred, err := repos.Credentials.Get(ctx, id, ownerA)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(cred.Password) != "pass-ct" {
		t.Fatalf("record was mutated across owners: %q", cred.Password)
	}
}

func TestSQLite_UpdateFieldRefreshesTimestamp(t *testing.T) {
	repos, _ := newTestSQLite(t)
	ctx := context.Background()

	id := mustCreate(t, repos, 7, "Gmail")
	before, err := repos.Credentials.Get(ctx, id, 7)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}

	// stored timestamps have second precision; ensure the clock moves
	time.Sleep(1100 * time.Millisecond)

	ok, err := repos.Credentials.UpdateField(ctx, id, 7, models.FieldPassword, []byte("new-ct"))
	if err != nil || !ok {
		t.Fatalf("UpdateField: ok=%v err=%v", ok, err)
	}

	after, err := repos.Credentials.Get(ctx, id, 7)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("updated_at did not advance: before=%v after=%v", before.UpdatedAt, after.UpdatedAt)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("created_at changed: before=%v after=%v", before.CreatedAt, after.CreatedAt)
	}
	if string(after.Password) != "new-ct" {
		t.Fatalf("password not updated: %q", after.Password)
	}
	if string(after.Username) != "user-ct" {
		t.Fatalf("username must be untouched: %q", after.Username)
	}
}

func TestSQLite_DeletingUserCascadesToCredentials(t *testing.T) {
	repos, db := newTestSQLite(t)
	ctx := context.Background()

	id := mustCreate(t, repos, 7, "Gmail")
	mustCreate(t, repos, 7, "Bank")

	if err := repos.Users.DeleteUser(ctx, 7); err != nil {
		t.Fatalf("DeleteUser error: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM credentials WHERE owner_id = 7").Scan(&count); err != nil {
		t.Fatalf("count query error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cascade to remove all credentials, %d left", count)
	}

	if _, err := repos.Credentials.Get(ctx, id, 7); !errors.Is(err, ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound after cascade, got %v", err)
	}
}
