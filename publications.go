package mediagate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Publication is the collaborator record the preview renderer works from.
// Only the fields relevant to preview composition are carried; the rest of
// the marketplace record stays with the backend.
type Publication struct {
	ID          string   `json:"id"`
	Title       string   `json:"titulo"`
	Description string   `json:"descripcion"`
	Imagen      string   `json:"imagen"`
	ImagenURL   string   `json:"imagen_url"`
	Foto        string   `json:"foto"`
	Fotos       []string `json:"fotos"`
}

// candidateImages returns the publication's image fields in fixed priority
// order. The first non-empty entry wins.
func (p Publication) candidateImages() []string {
	candidates := []string{p.Imagen, p.ImagenURL, p.Foto}
	if len(p.Fotos) > 0 {
		candidates = append(candidates, p.Fotos[0])
	}
	return candidates
}

// PublicationSource looks up publications for the preview renderer. The
// marketplace backend is the real source; a local sqlite store backs
// development and tests.
type PublicationSource interface {
	GetPublication(ctx context.Context, id string) (Publication, error)
}

// APIPublicationSource fetches publications from the marketplace backend's
// REST API.
type APIPublicationSource struct {
	base   string
	client *http.Client
}

// NewAPIPublicationSource creates a source reading from the backend API at
// base (no trailing slash).
func NewAPIPublicationSource(base string, timeout time.Duration) *APIPublicationSource {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &APIPublicationSource{
		base:   strings.TrimSuffix(base, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// GetPublication fetches one publication by id. A backend 404 maps to
// ErrPublicationNotFound; any other failure is returned as-is.
func (s *APIPublicationSource) GetPublication(ctx context.Context, id string) (Publication, error) {
	endpoint := s.base + "/api/publicaciones/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Publication{}, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return Publication{}, fmt.Errorf("publication lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Publication{}, ErrPublicationNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Publication{}, fmt.Errorf("publication lookup: backend status %d", resp.StatusCode)
	}

	var pub Publication
	if err := json.NewDecoder(resp.Body).Decode(&pub); err != nil {
		return Publication{}, fmt.Errorf("publication lookup: decode: %w", err)
	}
	if pub.ID == "" {
		pub.ID = id
	}
	return pub, nil
}

// PublicationStore wraps a SQLite database holding publication records.
// It serves as the PublicationSource in development and tests, where no
// backend API is running.
type PublicationStore struct {
	db *sql.DB
}

// NewPublicationStore opens (or creates) the SQLite database at path,
// ensures the data directory exists, and runs schema migrations.
func NewPublicationStore(path string) (*PublicationStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent reads, busy timeout so writers wait instead of
	// failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &PublicationStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *PublicationStore) Close() error {
	return s.db.Close()
}

func (s *PublicationStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS publications (
    id TEXT PRIMARY KEY,
    titulo TEXT NOT NULL,
    descripcion TEXT NOT NULL,
    imagen TEXT NOT NULL DEFAULT '',
    imagen_url TEXT NOT NULL DEFAULT '',
    foto TEXT NOT NULL DEFAULT '',
    fotos TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

// GetPublication returns a single publication by id.
func (s *PublicationStore) GetPublication(ctx context.Context, id string) (Publication, error) {
	var p Publication
	var fotos string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, titulo, descripcion, imagen, imagen_url, foto, fotos FROM publications WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Description, &p.Imagen, &p.ImagenURL, &p.Foto, &fotos)
	if errors.Is(err, sql.ErrNoRows) {
		return Publication{}, ErrPublicationNotFound
	}
	if err != nil {
		return Publication{}, err
	}
	p.Fotos = splitFotos(fotos)
	return p, nil
}

// SavePublication upserts a publication record.
func (s *PublicationStore) SavePublication(p Publication) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO publications (id, titulo, descripcion, imagen, imagen_url, foto, fotos) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.Imagen, p.ImagenURL, p.Foto, joinFotos(p.Fotos))
	return err
}

// DeletePublication removes a publication by id.
func (s *PublicationStore) DeletePublication(id string) error {
	_, err := s.db.Exec(`DELETE FROM publications WHERE id = ?`, id)
	return err
}

func joinFotos(fotos []string) string {
	var kept []string
	for _, f := range fotos {
		if f = strings.TrimSpace(f); f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, "\n")
}

func splitFotos(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	var fotos []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fotos = append(fotos, p)
		}
	}
	return fotos
}
