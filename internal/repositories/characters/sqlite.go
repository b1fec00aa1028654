package characters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/scum-bot-discord/internal/domain/character"
	dnderr "github.com/KirkDiggler/scum-bot-discord/internal/errors"
	"github.com/KirkDiggler/scum-bot-discord/internal/repositories/characters/migrations"
	"github.com/KirkDiggler/scum-bot-discord/internal/repositories/sqlitemigrate"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const selectCharacter = `SELECT attune, command, consort, doctor, hack, helm, rig, scramble, scrap, skulk, study, sway
FROM characters
WHERE channel_id = ? AND user_id = ?`

const upsertCharacter = `INSERT INTO characters (
    channel_id, user_id,
    attune, command, consort, doctor, hack, helm, rig, scramble, scrap, skulk, study, sway
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (channel_id, user_id) DO UPDATE SET
    attune = excluded.attune,
    command = excluded.command,
    consort = excluded.consort,
    doctor = excluded.doctor,
    hack = excluded.hack,
    helm = excluded.helm,
    rig = excluded.rig,
    scramble = excluded.scramble,
    scrap = excluded.scrap,
    skulk = excluded.skulk,
    study = excluded.study,
    sway = excluded.sway`

// sqliteRepo stores characters in the characters table
type sqliteRepo struct {
	db *sql.DB
}

// OpenSQLiteDB opens (creating if needed) a SQLite file tuned for concurrent use
func OpenSQLiteDB(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

// NewSQLite creates a SQLite-backed repository on an open handle and applies migrations.
// The caller keeps ownership of db and closes it.
func NewSQLite(ctx context.Context, db *sql.DB) (Repository, error) {
	if db == nil {
		return nil, dnderr.InvalidArgument("sqlite db is required")
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS, "."); err != nil {
		return nil, dnderr.Storage(err, "failed to migrate character storage")
	}
	return &sqliteRepo{db: db}, nil
}

// Load reads one row; no row means a fresh character
func (r *sqliteRepo) Load(ctx context.Context, key character.Key) (*character.Character, error) {
	char := character.NewCharacter(key)
	err := r.db.QueryRowContext(ctx, selectCharacter, key.ChannelID, key.UserID).Scan(
		&char.Attune,
		&char.Command,
		&char.Consort,
		&char.Doctor,
		&char.Hack,
		&char.Helm,
		&char.Rig,
		&char.Scramble,
		&char.Scrap,
		&char.Skulk,
		&char.Study,
		&char.Sway,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return character.NewCharacter(key), nil
	}
	if err != nil {
		return nil, dnderr.Storagef(err, "failed to load character %s", key).
			WithMeta("channel_id", key.ChannelID).
			WithMeta("user_id", key.UserID).
			WithMeta("sqlite_code", sqliteCode(err))
	}

	char.Normalize()
	return char, nil
}

// Save upserts the row in a single statement
func (r *sqliteRepo) Save(ctx context.Context, char *character.Character) error {
	if err := validateForSave(char); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, upsertCharacter,
		char.ChannelID,
		char.UserID,
		char.Attune,
		char.Command,
		char.Consort,
		char.Doctor,
		char.Hack,
		char.Helm,
		char.Rig,
		char.Scramble,
		char.Scrap,
		char.Skulk,
		char.Study,
		char.Sway,
	)
	if err != nil {
		return dnderr.Storagef(err, "failed to save character %s", char.Key()).
			WithMeta("channel_id", char.ChannelID).
			WithMeta("user_id", char.UserID).
			WithMeta("sqlite_code", sqliteCode(err)).
			WithMeta("busy", isBusy(err))
	}
	return nil
}

// Ping checks the database handle
func (r *sqliteRepo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return dnderr.Storage(err, "sqlite ping failed")
	}
	return nil
}

func sqliteCode(err error) int {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()
	}
	return 0
}

func isBusy(err error) bool {
	switch sqliteCode(err) & 0xff {
	case sqlite3lib.SQLITE_BUSY, sqlite3lib.SQLITE_LOCKED:
		return true
	}
	return false
}
