// Package storage provides SQLite-based persistence for player profiles.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

// DefaultNamespace is the key-value namespace of the local player.
const DefaultNamespace = "wakuwaku_cooking_data"

// Record keys within a namespace.
const (
	KeyTotalStars   = "total_stars"
	KeyUnlocked     = "unlocked"
	KeyRecipeStars  = "recipe_stars"
	KeyHistory      = "history"
	KeyAchievements = "achievements"
)

// UserNamespace returns the namespace for a named remote player.
func UserNamespace(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		return DefaultNamespace
	}
	return DefaultNamespace + "/" + user
}

// Store manages the SQLite database connection for profile persistence.
type Store struct {
	db *sql.DB
}

// DishEntry is one row of the dish log.
type DishEntry struct {
	ID          string
	Namespace   string
	RecipeID    string
	Stars       int
	Reaction    string
	Score       int
	CookingTime time.Duration
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// SSH sessions write concurrently; let writers wait instead of failing.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (namespace, key)
		);

		CREATE TABLE IF NOT EXISTS dishes (
			id TEXT PRIMARY KEY,
			namespace TEXT NOT NULL,
			recipe_id TEXT NOT NULL,
			stars INTEGER NOT NULL,
			reaction TEXT NOT NULL,
			score INTEGER NOT NULL,
			cooking_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_dishes_namespace ON dishes(namespace, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_dishes_recipe ON dishes(namespace, recipe_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the raw value stored under (namespace, key).
// ok is false when no record exists.
func (s *Store) Get(namespace, key string) (value []byte, ok bool, err error) {
	var v string
	err = s.db.QueryRow(
		"SELECT value FROM kv WHERE namespace = ? AND key = ?",
		namespace, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot read %s/%s: %w", namespace, key, err)
	}
	return []byte(v), true, nil
}

// Put stores value under (namespace, key), replacing any previous value.
func (s *Store) Put(namespace, key string, value []byte) error {
	return s.putAll(namespace, map[string][]byte{key: value})
}

func (s *Store) putAll(namespace string, records map[string][]byte) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	for key, value := range records {
		_, err := tx.Exec(
			`INSERT INTO kv (namespace, key, value, updated_at)
			 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			namespace, key, string(value),
		)
		if err != nil {
			return fmt.Errorf("storage: cannot write %s/%s: %w", namespace, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// LoadProfile implements kitchen.ProfileStore. Each record is decoded on its
// own; an absent or malformed record leaves its field at the zero value.
func (s *Store) LoadProfile(namespace string) (kitchen.Profile, error) {
	var p kitchen.Profile

	fields := []struct {
		key  string
		dest any
	}{
		{KeyTotalStars, &p.TotalStars},
		{KeyUnlocked, &p.Unlocked},
		{KeyRecipeStars, &p.RecipeStars},
		{KeyHistory, &p.History},
		{KeyAchievements, &p.Achievements},
	}

	for _, f := range fields {
		raw, ok, err := s.Get(namespace, f.key)
		if err != nil {
			return kitchen.Profile{}, err
		}
		if !ok {
			continue
		}
		decodeRecord(raw, f.dest)
	}

	return p, nil
}

// decodeRecord unmarshals raw into dest, resetting dest on failure so a
// half-decoded value never leaks into the profile.
func decodeRecord(raw []byte, dest any) {
	switch d := dest.(type) {
	case *int:
		var v int
		if json.Unmarshal(raw, &v) == nil {
			*d = v
		}
	case *[]string:
		var v []string
		if json.Unmarshal(raw, &v) == nil {
			*d = v
		}
	case *map[string]int:
		var v map[string]int
		if json.Unmarshal(raw, &v) == nil {
			*d = v
		}
	case *[]kitchen.Dish:
		var v []kitchen.Dish
		if json.Unmarshal(raw, &v) == nil {
			*d = v
		}
	}
}

// SaveProfile implements kitchen.ProfileStore. All records are written in
// one transaction.
func (s *Store) SaveProfile(namespace string, p kitchen.Profile) error {
	records := make(map[string][]byte, 5)
	for key, v := range map[string]any{
		KeyTotalStars:   p.TotalStars,
		KeyUnlocked:     nonNil(p.Unlocked),
		KeyRecipeStars:  p.RecipeStars,
		KeyHistory:      nonNilDishes(p.History),
		KeyAchievements: nonNil(p.Achievements),
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("storage: cannot encode %s: %w", key, err)
		}
		records[key] = raw
	}
	return s.putAll(namespace, records)
}

// ResetProfile implements kitchen.ProfileStore. It deletes every record and
// logged dish of the namespace.
func (s *Store) ResetProfile(namespace string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM kv WHERE namespace = ?", namespace); err != nil {
		return fmt.Errorf("storage: cannot clear profile: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM dishes WHERE namespace = ?", namespace); err != nil {
		return fmt.Errorf("storage: cannot clear dishes: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// RecordDish implements kitchen.DishRecorder. The dish log keeps every
// play-through, unlike the capped album inside the profile.
func (s *Store) RecordDish(namespace string, d kitchen.Dish) error {
	_, err := s.db.Exec(
		`INSERT INTO dishes (id, namespace, recipe_id, stars, reaction, score, cooking_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, namespace, d.RecipeID, d.Stars, string(d.Reaction), d.Score,
		d.CookingTime.Milliseconds(), d.CreatedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save dish: %w", err)
	}
	return nil
}

// RecentDishes returns the newest logged dishes of a namespace.
func (s *Store) RecentDishes(namespace string, limit int) ([]DishEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, namespace, recipe_id, stars, reaction, score, cooking_ms, created_at
		 FROM dishes
		 WHERE namespace = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		namespace, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query dishes: %w", err)
	}
	defer rows.Close()

	var entries []DishEntry
	for rows.Next() {
		var e DishEntry
		var cookingMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Namespace, &e.RecipeID, &e.Stars, &e.Reaction, &e.Score, &cookingMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CookingTime = time.Duration(cookingMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RecipeStats contains aggregated statistics for one recipe.
type RecipeStats struct {
	RecipeID   string
	Dishes     int
	BestScore  int
	AvgScore   float64
	LastCooked time.Time
}

// AllRecipeStats retrieves statistics for every recipe cooked in a namespace.
func (s *Store) AllRecipeStats(namespace string) (map[string]*RecipeStats, error) {
	rows, err := s.db.Query(
		`SELECT recipe_id, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM dishes
		 WHERE namespace = ?
		 GROUP BY recipe_id`,
		namespace,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get recipe stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*RecipeStats)
	for rows.Next() {
		var rs RecipeStats
		var lastCooked any
		if err := rows.Scan(&rs.RecipeID, &rs.Dishes, &rs.BestScore, &rs.AvgScore, &lastCooked); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		rs.LastCooked = parseTime(lastCooked)
		stats[rs.RecipeID] = &rs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Namespaces lists every namespace that has a stored profile.
func (s *Store) Namespaces() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT namespace FROM kv ORDER BY namespace")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list namespaces: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, ns)
	}
	return out, rows.Err()
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilDishes(d []kitchen.Dish) []kitchen.Dish {
	if d == nil {
		return []kitchen.Dish{}
	}
	return d
}

var (
	_ kitchen.ProfileStore = (*Store)(nil)
	_ kitchen.DishRecorder = (*Store)(nil)
)
