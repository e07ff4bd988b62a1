// Package store persists wait-time and weather history in SQLite for the
// dashboard. Writes are append-only; reads never mutate.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/example/parkboard/internal/model"
	"github.com/example/parkboard/internal/weather"
)

const schema = `
CREATE TABLE IF NOT EXISTS wait_times (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp DATETIME NOT NULL,
    ride_id   INTEGER  NOT NULL,
    ride_name TEXT     NOT NULL,
    park_name TEXT     NOT NULL,
    wait_time INTEGER  NOT NULL,
    is_open   BOOLEAN  NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_wait_times_timestamp ON wait_times(timestamp);
CREATE INDEX IF NOT EXISTS idx_wait_times_ride ON wait_times(ride_name);
CREATE INDEX IF NOT EXISTS idx_wait_times_park ON wait_times(park_name);

CREATE TABLE IF NOT EXISTS weather (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp   DATETIME NOT NULL,
    temperature REAL     NOT NULL,
    condition   TEXT     NOT NULL,
    humidity    INTEGER,
    description TEXT
);
CREATE INDEX IF NOT EXISTS idx_weather_timestamp ON weather(timestamp);
`

// Store wraps the history database. database/sql serializes access from
// multiple goroutines, which is the guarantee the per-operation
// connections of older kiosk builds existed to provide.
type Store struct {
	db        *sql.DB
	path      string
	retention time.Duration
}

// Open creates (if needed) and opens the database at path.
func Open(path string, retentionDays int) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	log.Info().Str("path", path).Int("retention_days", retentionDays).Msg("history database opened")
	return &Store{
		db:        db,
		path:      path,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// StoreWaitTimes appends one row per ride at the given timestamp.
func (s *Store) StoreWaitTimes(rides []model.Ride, at time.Time) error {
	if len(rides) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO wait_times
		(timestamp, ride_id, ride_name, park_name, wait_time, is_open)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, r := range rides {
		if _, err := stmt.Exec(at, r.ID, r.Name, r.ParkName, r.WaitTime, r.Open); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// StoreWeather appends one observation row.
func (s *Store) StoreWeather(o weather.Observation, at time.Time) error {
	_, err := s.db.Exec(`INSERT INTO weather
		(timestamp, temperature, condition, humidity, description)
		VALUES (?, ?, ?, ?, ?)`,
		at, o.Temperature, o.Condition, o.Humidity, o.Description)
	return err
}

// Cleanup deletes rows older than the retention window.
func (s *Store) Cleanup(now time.Time) error {
	cutoff := now.Add(-s.retention)
	res, err := s.db.Exec(`DELETE FROM wait_times WHERE timestamp < ?`, cutoff)
	if err != nil {
		return err
	}
	waits, _ := res.RowsAffected()
	res, err = s.db.Exec(`DELETE FROM weather WHERE timestamp < ?`, cutoff)
	if err != nil {
		return err
	}
	wx, _ := res.RowsAffected()
	if waits > 0 || wx > 0 {
		log.Info().Int64("wait_rows", waits).Int64("weather_rows", wx).Msg("pruned old history")
	}
	return nil
}

// WaitRecord is one stored reading.
type WaitRecord struct {
	RideName  string    `json:"ride_name"`
	ParkName  string    `json:"park_name"`
	WaitTime  int       `json:"wait_time"`
	Open      bool      `json:"is_open"`
	Timestamp time.Time `json:"timestamp"`
}

// CurrentWaits returns every ride's reading at the most recent stored
// timestamp, ordered by park then wait descending.
func (s *Store) CurrentWaits() ([]WaitRecord, error) {
	var latest sql.NullString
	if err := s.db.QueryRow(`SELECT MAX(timestamp) FROM wait_times`).Scan(&latest); err != nil {
		return nil, err
	}
	if !latest.Valid {
		return nil, nil
	}
	rows, err := s.db.Query(`SELECT ride_name, park_name, wait_time, is_open, timestamp
		FROM wait_times WHERE timestamp = ?
		ORDER BY park_name, wait_time DESC`, latest.String)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []WaitRecord
	for rows.Next() {
		var r WaitRecord
		if err := rows.Scan(&r.RideName, &r.ParkName, &r.WaitTime, &r.Open, &r.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// HistoryPoint is a (timestamp, wait) sample.
type HistoryPoint struct {
	Timestamp time.Time `json:"timestamp"`
	WaitTime  int       `json:"wait_time"`
}

// RideHistory returns a ride's samples since the given time, ascending.
func (s *Store) RideHistory(rideName string, since time.Time) ([]HistoryPoint, error) {
	rows, err := s.db.Query(`SELECT timestamp, wait_time FROM wait_times
		WHERE ride_name = ? AND timestamp >= ?
		ORDER BY timestamp ASC`, rideName, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []HistoryPoint
	for rows.Next() {
		var p HistoryPoint
		if err := rows.Scan(&p.Timestamp, &p.WaitTime); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ParkPoint is an averaged sample across a park's open rides.
type ParkPoint struct {
	Timestamp time.Time `json:"timestamp"`
	AvgWait   float64   `json:"avg_wait"`
	RideCount int       `json:"ride_count"`
}

// ParkHistory returns a park's average open-ride wait per stored
// timestamp, ascending.
func (s *Store) ParkHistory(parkName string, since time.Time) ([]ParkPoint, error) {
	rows, err := s.db.Query(`SELECT timestamp, AVG(wait_time), COUNT(*)
		FROM wait_times
		WHERE park_name = ? AND timestamp >= ? AND is_open = 1
		GROUP BY timestamp ORDER BY timestamp ASC`, parkName, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ParkPoint
	for rows.Next() {
		var p ParkPoint
		if err := rows.Scan(&p.Timestamp, &p.AvgWait, &p.RideCount); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Stats aggregates one ride's readings over a window.
type Stats struct {
	MinWait    int     `json:"min_wait"`
	MaxWait    int     `json:"max_wait"`
	AvgWait    float64 `json:"avg_wait"`
	DataPoints int     `json:"data_points"`
}

// RideStats returns min/max/avg wait for open readings since the given
// time. All zeros when no data exists.
func (s *Store) RideStats(rideName string, since time.Time) (Stats, error) {
	var (
		min, max sql.NullInt64
		avg      sql.NullFloat64
		count    int
	)
	err := s.db.QueryRow(`SELECT MIN(wait_time), MAX(wait_time), AVG(wait_time), COUNT(*)
		FROM wait_times
		WHERE ride_name = ? AND timestamp >= ? AND is_open = 1`, rideName, since).
		Scan(&min, &max, &avg, &count)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		MinWait:    int(min.Int64),
		MaxWait:    int(max.Int64),
		AvgWait:    avg.Float64,
		DataPoints: count,
	}, nil
}

func (s *Store) distinct(column string) ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT ` + column + ` FROM wait_times ORDER BY ` + column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Rides lists every ride name ever stored.
func (s *Store) Rides() ([]string, error) { return s.distinct("ride_name") }

// Parks lists every park name ever stored.
func (s *Store) Parks() ([]string, error) { return s.distinct("park_name") }

// DBStats summarizes the database for the dashboard.
type DBStats struct {
	WaitRecords   int    `json:"wait_records"`
	OldestRecord  string `json:"oldest_record"`
	NewestRecord  string `json:"newest_record"`
	Path          string `json:"db_path"`
	RetentionDays int    `json:"retention_days"`
}

func (s *Store) DatabaseStats() (DBStats, error) {
	st := DBStats{Path: s.path, RetentionDays: int(s.retention.Hours() / 24)}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM wait_times`).Scan(&st.WaitRecords); err != nil {
		return st, err
	}
	var oldest, newest sql.NullString
	if err := s.db.QueryRow(`SELECT MIN(timestamp), MAX(timestamp) FROM wait_times`).Scan(&oldest, &newest); err != nil {
		return st, err
	}
	st.OldestRecord = oldest.String
	st.NewestRecord = newest.String
	return st, nil
}
