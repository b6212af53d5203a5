package audit

import (
	"database/sql"
	_ "embed"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schema string

// Archive keeps an append-only local copy of every audit entry in sqlite,
// so records survive even when no log channel is configured.
type Archive struct {
	db *sql.DB
}

func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) Record(e Entry) {
	_, err := a.db.Exec(
		`INSERT INTO audit_entries (id, guild_id, action, actor_id, target_id, details, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), e.GuildID, e.Action, e.ActorID, e.TargetID, e.Details, e.At.Unix(),
	)
	if err != nil {
		log.Error().Err(err).Str("action", e.Action).Msg("audit archive insert failed")
	}
}
