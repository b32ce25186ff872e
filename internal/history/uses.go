package history

import (
	"fmt"
)

// Use is one journal row: a key and when it was invoked (Unix seconds).
type Use struct {
	ID     int64
	Key    string
	UsedAt int64
}

// KeyCount is an aggregated row from TopSince.
type KeyCount struct {
	Key   string
	Count int
}

// Append records a single invocation of key at usedAt.
func (db *DB) Append(key string, usedAt int64) error {
	_, err := db.Exec("INSERT INTO uses (key, used_at) VALUES (?, ?)", key, usedAt)
	if err != nil {
		return fmt.Errorf("append use: %w", err)
	}
	return nil
}

// CountSince returns the number of recorded uses at or after since.
func (db *DB) CountSince(since int64) (int, error) {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM uses WHERE used_at >= ?", since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count since: %w", err)
	}
	return n, nil
}

// TopSince returns the most-used keys at or after since, capped at limit.
// Ordered by count descending, then key ascending so output is stable.
func (db *DB) TopSince(since int64, limit int) ([]KeyCount, error) {
	rows, err := db.Query(`
		SELECT key, COUNT(*) AS n FROM uses
		WHERE used_at >= ?
		GROUP BY key
		ORDER BY n DESC, key ASC
		LIMIT ?
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top since: %w", err)
	}
	defer rows.Close()

	var out []KeyCount
	for rows.Next() {
		var kc KeyCount
		if err := rows.Scan(&kc.Key, &kc.Count); err != nil {
			return nil, fmt.Errorf("scan top row: %w", err)
		}
		out = append(out, kc)
	}
	return out, rows.Err()
}

// Recent returns the newest journal rows, most recent first.
func (db *DB) Recent(limit int) ([]Use, error) {
	rows, err := db.Query(`
		SELECT id, key, used_at FROM uses
		ORDER BY used_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent uses: %w", err)
	}
	defer rows.Close()

	var out []Use
	for rows.Next() {
		var u Use
		if err := rows.Scan(&u.ID, &u.Key, &u.UsedAt); err != nil {
			return nil, fmt.Errorf("scan use: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Prune deletes journal rows older than before and returns how many went.
func (db *DB) Prune(before int64) (int, error) {
	result, err := db.Exec("DELETE FROM uses WHERE used_at < ?", before)
	if err != nil {
		return 0, fmt.Errorf("prune uses: %w", err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}
