// Package storage persists dogs, profiles, training logs and relations in a
// SQLite database and produces the immutable snapshots the planning core
// consumes. The core never touches this package.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kennelops/kennelplan/core/model"
)

// Config defines the storage location.
type Config struct {
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Path == "" {
		c.Path = "kennelplan.db"
	}
}

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `
    CREATE TABLE IF NOT EXISTS dogs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL UNIQUE
    );
    CREATE TABLE IF NOT EXISTS dog_profile (
        dog_id INTEGER PRIMARY KEY REFERENCES dogs(id),
        age_years INTEGER NOT NULL,
        can_lead INTEGER NOT NULL DEFAULT 0,
        can_team INTEGER NOT NULL DEFAULT 0,
        can_wheel INTEGER NOT NULL DEFAULT 0
    );
    CREATE TABLE IF NOT EXISTS training_log (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        dog_id INTEGER NOT NULL REFERENCES dogs(id),
        day INTEGER NOT NULL,
        distance_km REAL NOT NULL,
        source TEXT NOT NULL DEFAULT 'manual',
        UNIQUE(dog_id, day, source)
    );
    CREATE INDEX IF NOT EXISTS ix_training_day_dog ON training_log(day, dog_id);
    CREATE TABLE IF NOT EXISTS dog_relations (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        dog_id_a INTEGER NOT NULL REFERENCES dogs(id),
        dog_id_b INTEGER NOT NULL REFERENCES dogs(id),
        relation_type TEXT NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) upsertDog(name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("dog name is required")
	}
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO dogs (name) VALUES (?)`, name); err != nil {
		return 0, err
	}
	var id int64
	if err := s.db.QueryRow(`SELECT id FROM dogs WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// SetProfile inserts or updates the profile for a dog, creating the dog row
// if needed.
func (s *Store) SetProfile(p model.DogProfile) error {
	id, err := s.upsertDog(p.Name)
	if err != nil {
		return fmt.Errorf("upsert dog: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO dog_profile (dog_id, age_years, can_lead, can_team, can_wheel)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(dog_id) DO UPDATE SET
            age_years = excluded.age_years,
            can_lead = excluded.can_lead,
            can_team = excluded.can_team,
            can_wheel = excluded.can_wheel`,
		id, p.AgeYears, boolInt(p.CanLead), boolInt(p.CanTeam), boolInt(p.CanWheel))
	return err
}

// AddRelation stores a pair or conflict declaration.
func (s *Store) AddRelation(r model.Relation) error {
	a, err := s.upsertDog(r.A)
	if err != nil {
		return fmt.Errorf("upsert dog: %w", err)
	}
	b, err := s.upsertDog(r.B)
	if err != nil {
		return fmt.Errorf("upsert dog: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO dog_relations (dog_id_a, dog_id_b, relation_type) VALUES (?, ?, ?)`,
		a, b, r.Kind.String())
	return err
}

// AddWorkload inserts one training-log entry. Duplicate (dog, day, source)
// entries are ignored and reported via the returned flag.
func (s *Store) AddWorkload(rec model.WorkloadRecord, source string) (inserted bool, err error) {
	if err := rec.Validate(); err != nil {
		return false, err
	}
	id, err := s.upsertDog(rec.Dog)
	if err != nil {
		return false, fmt.Errorf("upsert dog: %w", err)
	}
	res, err := s.db.Exec(`INSERT OR IGNORE INTO training_log (dog_id, day, distance_km, source) VALUES (?, ?, ?, ?)`,
		id, model.Day(rec.Date).Unix(), rec.DistanceKm, source)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Profiles returns all dog profiles ordered by name.
func (s *Store) Profiles() ([]model.DogProfile, error) {
	rows, err := s.db.Query(`SELECT d.name, p.age_years, p.can_lead, p.can_team, p.can_wheel
        FROM dog_profile p JOIN dogs d ON d.id = p.dog_id ORDER BY d.name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.DogProfile
	for rows.Next() {
		var p model.DogProfile
		var lead, team, wheel int
		if err := rows.Scan(&p.Name, &p.AgeYears, &lead, &team, &wheel); err != nil {
			return nil, err
		}
		p.CanLead = lead != 0
		p.CanTeam = team != 0
		p.CanWheel = wheel != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

// Relations returns all declared relations in insertion order.
func (s *Store) Relations() ([]model.Relation, error) {
	rows, err := s.db.Query(`SELECT d1.name, d2.name, r.relation_type
        FROM dog_relations r
        JOIN dogs d1 ON d1.id = r.dog_id_a
        JOIN dogs d2 ON d2.id = r.dog_id_b
        ORDER BY r.id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.Relation
	for rows.Next() {
		var rel model.Relation
		var kind string
		if err := rows.Scan(&rel.A, &rel.B, &kind); err != nil {
			return nil, err
		}
		k, err := model.ParseRelationKind(kind)
		if err != nil {
			return nil, err
		}
		rel.Kind = k
		out = append(out, rel)
	}
	return out, rows.Err()
}

// Workload returns all training-log entries with days in [start, end],
// ordered by day then dog name.
func (s *Store) Workload(start, end time.Time) ([]model.WorkloadRecord, error) {
	rows, err := s.db.Query(`SELECT d.name, t.day, t.distance_km
        FROM training_log t JOIN dogs d ON d.id = t.dog_id
        WHERE t.day >= ? AND t.day <= ?
        ORDER BY t.day, d.name`,
		model.Day(start).Unix(), model.Day(end).Unix())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.WorkloadRecord
	for rows.Next() {
		var rec model.WorkloadRecord
		var ts int64
		if err := rows.Scan(&rec.Dog, &ts, &rec.DistanceKm); err != nil {
			return nil, err
		}
		rec.Date = time.Unix(ts, 0).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
