package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Setting keys for environment-level preferences that live outside the
// catalog itself.
const (
	SettingSoundEnabled = "sound_enabled"
	SettingMusicEnabled = "music_enabled"
	SettingLastBackup   = "last_backup_time"
)

// Settings holds the scalar preferences. Read once at startup; written
// through on every toggle.
type Settings struct {
	SoundEnabled bool   `json:"soundEnabled"`
	MusicEnabled bool   `json:"musicEnabled"`
	LastBackup   string `json:"lastBackupTime,omitempty"`
}

// GetSetting returns a setting value, or "" if the key is not set.
func GetSetting(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores a setting value, replacing any existing one.
func SetSetting(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storing setting %s: %w", key, err)
	}
	return nil
}

// LoadSettings reads all preference scalars. Missing keys default to
// disabled sound/music and no recorded backup.
func LoadSettings(ctx context.Context, db *sql.DB) (*Settings, error) {
	sound, err := GetSetting(ctx, db, SettingSoundEnabled)
	if err != nil {
		return nil, err
	}
	music, err := GetSetting(ctx, db, SettingMusicEnabled)
	if err != nil {
		return nil, err
	}
	backup, err := GetSetting(ctx, db, SettingLastBackup)
	if err != nil {
		return nil, err
	}

	return &Settings{
		SoundEnabled: sound == "true",
		MusicEnabled: music == "true",
		LastBackup:   backup,
	}, nil
}

// SaveSettings writes the sound and music toggles. The last-backup
// timestamp is written separately when an export happens.
func SaveSettings(ctx context.Context, db *sql.DB, s *Settings) error {
	if err := SetSetting(ctx, db, SettingSoundEnabled, boolValue(s.SoundEnabled)); err != nil {
		return err
	}
	return SetSetting(ctx, db, SettingMusicEnabled, boolValue(s.MusicEnabled))
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
