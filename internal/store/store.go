// Package store archives finished games in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MatthewR-B/Chess-Honors-Project/internal/engine"
	"github.com/MatthewR-B/Chess-Honors-Project/internal/model"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var schemaStmts = []string{
	`PRAGMA journal_mode=WAL;`,
	`CREATE TABLE IF NOT EXISTS finished_games (
		id TEXT PRIMARY KEY,
		finished_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
		white TEXT NOT NULL DEFAULT '',
		black TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL,
		winner TEXT NOT NULL DEFAULT '',
		result TEXT NOT NULL,
		moves TEXT NOT NULL DEFAULT '',
		ply_count INTEGER NOT NULL DEFAULT 0,
		CHECK (state IN ('checkmate', 'stalemate')),
		CHECK (result IN ('1-0', '0-1', '1/2-1/2'))
	);`,
	`CREATE INDEX IF NOT EXISTS idx_finished_games_finished_at ON finished_games(finished_at);`,
}

type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the archive at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// single-instance service; one connection keeps sqlite predictable
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schemaStmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type gameRow struct {
	ID         string `db:"id"`
	FinishedAt string `db:"finished_at"`
	White      string `db:"white"`
	Black      string `db:"black"`
	State      string `db:"state"`
	Winner     string `db:"winner"`
	Result     string `db:"result"`
	Moves      string `db:"moves"`
	PlyCount   int    `db:"ply_count"`
}

func (r gameRow) toResult() (model.Result, error) {
	moves, err := model.ParseMoves(r.Moves)
	if err != nil {
		return model.Result{}, fmt.Errorf("game %s: %w", r.ID, err)
	}
	return model.Result{
		GameID: r.ID,
		White:  r.White,
		Black:  r.Black,
		State:  engine.GameState(r.State),
		Winner: engine.Color(r.Winner),
		Moves:  moves,
	}, nil
}

func (s *Store) InsertFinishedGame(ctx context.Context, r model.Result) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO finished_games (id, white, black, state, winner, result, moves, ply_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.GameID, r.White, r.Black, string(r.State), string(r.Winner), r.Score(), model.JoinMoves(r.Moves), len(r.Moves))
	if err != nil {
		return fmt.Errorf("insert game %s: %w", r.GameID, err)
	}
	return nil
}

// ListFinishedGames returns up to limit games, most recent first.
func (s *Store) ListFinishedGames(ctx context.Context, limit int) ([]model.Result, error) {
	var rows []gameRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, finished_at, white, black, state, winner, result, moves, ply_count
		FROM finished_games
		ORDER BY finished_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}

	out := make([]model.Result, 0, len(rows))
	for _, row := range rows {
		r, err := row.toResult()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) GetFinishedGame(ctx context.Context, gameID string) (model.Result, error) {
	var row gameRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, finished_at, white, black, state, winner, result, moves, ply_count
		FROM finished_games
		WHERE id = ?
	`, gameID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Result{}, fmt.Errorf("game %s: %w", gameID, model.ErrGameNotFound)
	}
	if err != nil {
		return model.Result{}, err
	}
	return row.toResult()
}
