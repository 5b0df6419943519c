package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"ref-bot/internal/session"
)

var ErrNotFound = errors.New("storage: record not found")

type Storage struct {
	db *sql.DB
}

// Reference is one finalized submission as persisted to the refs table.
type Reference struct {
	ID               int64
	SourceURL        string
	Title            string
	Category         string
	Tags             []string
	Dir              string
	Dop              string
	Color            string
	Prod             string
	ChannelMessageID int64
	Media            []session.MediaRef
	CreatedAt        time.Time
}

type mediaItem struct {
	Type   string `json:"type"`
	FileID string `json:"file_id"`
}

func NewStorage(dbPath string) (*Storage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("could not create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	s := &Storage{db: db}
	if err = s.initSchema(); err != nil {
		return nil, fmt.Errorf("could not initialize database schema: %w", err)
	}
	log.Println("Database connection successful and schema initialized.")
	return s, nil
}

func (s *Storage) initSchema() error {
	query := `CREATE TABLE IF NOT EXISTS refs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_url TEXT NOT NULL,
		title TEXT,
		category TEXT,
		tags TEXT,
		dir TEXT,
		dop TEXT,
		color TEXT,
		prod TEXT,
		channel_message_id INTEGER,
		media_json TEXT,
		created_at TEXT NOT NULL
	);`
	if _, err := s.db.Exec(query); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return fmt.Errorf("schema execution failed: %w", err)
		}
	}

	// Columns added since the first schema version. Failures mean the
	// column already exists on this store, which is fine.
	alterQueries := []string{
		`ALTER TABLE refs ADD COLUMN dir TEXT`,
		`ALTER TABLE refs ADD COLUMN dop TEXT`,
		`ALTER TABLE refs ADD COLUMN color TEXT`,
		`ALTER TABLE refs ADD COLUMN prod TEXT`,
		`ALTER TABLE refs ADD COLUMN media_json TEXT`,
	}
	for _, q := range alterQueries {
		if _, err := s.db.Exec(q); err != nil {
		}
	}

	return nil
}

// InsertReference appends a finalized submission and returns its new id.
func (s *Storage) InsertReference(ref Reference) (int64, error) {
	mediaJSON, err := marshalMedia(ref.Media)
	if err != nil {
		return 0, fmt.Errorf("could not encode media list: %w", err)
	}
	createdAt := ref.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	query := `INSERT INTO refs (source_url, title, category, tags, dir, dop, color, prod, channel_message_id, media_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.Exec(query,
		ref.SourceURL,
		ref.Title,
		ref.Category,
		strings.Join(ref.Tags, ","),
		ref.Dir,
		ref.Dop,
		ref.Color,
		ref.Prod,
		ref.ChannelMessageID,
		mediaJSON,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Storage) GetReference(id int64) (*Reference, error) {
	query := `SELECT id, source_url, title, category, tags, dir, dop, color, prod, channel_message_id, media_json, created_at
		FROM refs WHERE id = ?`
	ref, err := scanReference(s.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ref, nil
}

// ListRecent returns the most recently stored submissions, newest first.
func (s *Storage) ListRecent(limit int) ([]Reference, error) {
	query := `SELECT id, source_url, title, category, tags, dir, dop, color, prod, channel_message_id, media_json, created_at
		FROM refs ORDER BY id DESC LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []Reference
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, err
		}
		refs = append(refs, *ref)
	}
	return refs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReference(row rowScanner) (*Reference, error) {
	var ref Reference
	var title, category, tags, dir, dop, color, prod, mediaJSON sql.NullString
	var messageID sql.NullInt64
	var createdAt string
	err := row.Scan(&ref.ID, &ref.SourceURL, &title, &category, &tags, &dir, &dop, &color, &prod, &messageID, &mediaJSON, &createdAt)
	if err != nil {
		return nil, err
	}
	ref.Title = title.String
	ref.Category = category.String
	if tags.String != "" {
		ref.Tags = strings.Split(tags.String, ",")
	}
	ref.Dir = dir.String
	ref.Dop = dop.String
	ref.Color = color.String
	ref.Prod = prod.String
	ref.ChannelMessageID = messageID.Int64
	if mediaJSON.Valid && mediaJSON.String != "" {
		media, err := unmarshalMedia(mediaJSON.String)
		if err != nil {
			return nil, fmt.Errorf("could not decode media list: %w", err)
		}
		ref.Media = media
	}
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		ref.CreatedAt = ts
	}
	return &ref, nil
}

func marshalMedia(media []session.MediaRef) (string, error) {
	items := make([]mediaItem, 0, len(media))
	for _, m := range media {
		items = append(items, mediaItem{Type: string(m.Kind), FileID: m.FileID})
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func unmarshalMedia(encoded string) ([]session.MediaRef, error) {
	var items []mediaItem
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return nil, err
	}
	media := make([]session.MediaRef, 0, len(items))
	for _, item := range items {
		media = append(media, session.MediaRef{Kind: session.MediaKind(item.Type), FileID: item.FileID})
	}
	return media, nil
}

func (s *Storage) Close() {
	s.db.Close()
}
