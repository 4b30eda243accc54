// Package journal keeps an append-only record of accepted moves in SQLite.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// queued entries before Record starts dropping them
const queueSize = 256

var ErrClosed = errors.New("journal is closed")

// Entry is one accepted move
type Entry struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	PlayerID  string    `json:"player_id"`
	Command   string    `json:"command"`
	Targets   []string  `json:"targets"`
	Decision  []int     `json:"decision"`
	Phase     string    `json:"phase_after"`
	CreatedAt time.Time `json:"created_at"`
}

type request struct {
	entry   Entry
	flushed chan struct{}
}

// Journal writes entries in the background so callers never wait on disk
type Journal struct {
	db     *sql.DB
	queue  chan request
	closed chan struct{}
	done   chan struct{}
	log    *zap.Logger
}

// Open opens or creates the journal at path
func Open(path string, log *zap.Logger) (*Journal, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	// one connection, so an in-memory journal is a single database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping journal: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal schema: %w", err)
	}

	j := &Journal{
		db:     db,
		queue:  make(chan request, queueSize),
		closed: make(chan struct{}),
		done:   make(chan struct{}),
		log:    log,
	}
	go j.run()

	return j, nil
}

func createSchema(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS moves (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			player_id TEXT NOT NULL,
			command TEXT NOT NULL,
			targets TEXT NOT NULL,
			decision TEXT NOT NULL,
			phase_after TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

// Record queues an entry. It never blocks; a full queue drops the entry.
func (j *Journal) Record(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewV4().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	select {
	case <-j.closed:
		j.log.Warn("journal closed, move dropped", zap.String("game_id", entry.GameID))
		return
	default:
	}

	select {
	case j.queue <- request{entry: entry}:
	default:
		j.log.Warn("journal queue full, move dropped", zap.String("game_id", entry.GameID))
	}
}

// Flush waits until everything queued so far is written
func (j *Journal) Flush(ctx context.Context) error {
	flushed := make(chan struct{})

	select {
	case <-j.closed:
		return ErrClosed
	default:
	}

	select {
	case j.queue <- request{flushed: flushed}:
	case <-j.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Journal) run() {
	defer close(j.done)

	for {
		select {
		case req := <-j.queue:
			j.handle(req)
		case <-j.closed:
			for {
				select {
				case req := <-j.queue:
					j.handle(req)
				default:
					return
				}
			}
		}
	}
}

func (j *Journal) handle(req request) {
	if req.flushed != nil {
		close(req.flushed)
		return
	}
	if err := j.insert(context.Background(), req.entry); err != nil {
		j.log.Error("could not journal move", zap.String("game_id", req.entry.GameID), zap.Error(err))
	}
}

func (j *Journal) insert(ctx context.Context, e Entry) error {
	targets, err := json.Marshal(orEmpty(e.Targets))
	if err != nil {
		return fmt.Errorf("failed to marshal targets: %w", err)
	}
	decision, err := json.Marshal(e.Decision)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}
	if e.Decision == nil {
		decision = []byte("[]")
	}

	query := `
		INSERT INTO moves (id, game_id, player_id, command, targets, decision, phase_after, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = j.db.ExecContext(ctx, query,
		e.ID, e.GameID, e.PlayerID, e.Command,
		string(targets), string(decision), e.Phase, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to append move: %w", err)
	}
	return nil
}

// ByGame returns a game's moves in the order they were accepted
func (j *Journal) ByGame(ctx context.Context, gameID string) ([]Entry, error) {
	query := `
		SELECT id, game_id, player_id, command, targets, decision, phase_after, created_at
		FROM moves WHERE game_id = ? ORDER BY rowid
	`
	rows, err := j.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var targets, decision string
		var createdAt int64
		err := rows.Scan(&e.ID, &e.GameID, &e.PlayerID, &e.Command, &targets, &decision, &e.Phase, &createdAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(targets), &e.Targets); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(decision), &e.Decision); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(0, createdAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close writes what is queued and closes the database
func (j *Journal) Close() error {
	select {
	case <-j.closed:
		return ErrClosed
	default:
		close(j.closed)
	}
	<-j.done

	return j.db.Close()
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
