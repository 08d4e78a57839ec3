package store

import (
	"fmt"
	"strconv"
	"time"
)

// Setting keys seeded by the first migration.
const (
	SettingSubject     = "subject"
	SettingAckDuration = "ack_duration" // milliseconds
)

const (
	DefaultSubject     = "CONECRIU"
	DefaultAckDuration = 3 * time.Second
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// SeedSubject stores subject only while the setting still holds
// DefaultSubject, so a name chosen in the settings form is never replaced.
// It reports whether the value was written.
func (s *Store) SeedSubject(subject string) (bool, error) {
	res, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value WHERE settings.value = ?`,
		SettingSubject, subject, DefaultSubject,
	)
	if err != nil {
		return false, fmt.Errorf("seed subject: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("seed subject: %w", err)
	}
	return n > 0, nil
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var st Setting
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return nil, err
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

// Subject returns the configured subject name, or DefaultSubject.
func (s *Store) Subject() string {
	v, err := s.GetSetting(SettingSubject)
	if err != nil || v == "" {
		return DefaultSubject
	}
	return v
}

// AckDuration returns how long the reset acknowledgement stays on screen.
// Missing or non-positive values fall back to DefaultAckDuration.
func (s *Store) AckDuration() time.Duration {
	v, err := s.GetSetting(SettingAckDuration)
	if err != nil {
		return DefaultAckDuration
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return DefaultAckDuration
	}
	return time.Duration(ms) * time.Millisecond
}
