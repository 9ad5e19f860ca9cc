package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kuhatje/Spur-AMP/internal/projects/models"
)

// ErrNotFound is returned when a user or project does not exist.
var ErrNotFound = errors.New("not found")

const (
	adminID    = "11111111-1111-1111-1111-111111111111"
	timeLayout = "2006-01-02T15:04:05Z"
)

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init applies pending migrations and seeds the admin account.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.MigrateUp(); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return r.ensureAdmin(ctx)
}

// ============================================================
// Users
// ============================================================

func (r *Repository) GetByCredentials(ctx context.Context, login, password string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, login, password, name, email, created_at
        FROM users
        WHERE login = ? AND password = ?
    `, login, password)
	return scanUser(row)
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, login, password, name, email, created_at
        FROM users
        WHERE id = ?
    `, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Login, &u.Password, &u.Name, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) ensureAdmin(ctx context.Context) error {
	_, err := r.GetUserByID(ctx, adminID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO users (id, login, password, name, email)
        VALUES (?, ?, ?, ?, ?)
    `,
		adminID,
		"admin",
		"admin",
		"Admin User",
		"admin@example.com",
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

// ============================================================
// Projects
// ============================================================

// CreateProject inserts p and stamps its UpdatedAt.
func (r *Repository) CreateProject(ctx context.Context, p *models.Project) error {
	p.UpdatedAt = time.Now().UTC().Format(timeLayout)
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO projects (id, owner_id, name, data, updated_at)
        VALUES (?, ?, ?, ?, ?)
    `, p.ID, p.OwnerID, p.Name, p.Data, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *Repository) GetProject(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, owner_id, name, data, updated_at
        FROM projects
        WHERE id = ?
    `, id)

	var p models.Project
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Data, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// ListProjects returns the owner's projects without their data, most recently
// updated first.
func (r *Repository) ListProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, owner_id, name, updated_at
        FROM projects
        WHERE owner_id = ?
        ORDER BY updated_at DESC, id
    `, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject stores the name and data of p.
func (r *Repository) UpdateProject(ctx context.Context, p *models.Project) error {
	p.UpdatedAt = time.Now().UTC().Format(timeLayout)
	res, err := r.db.ExecContext(ctx, `
        UPDATE projects SET name = ?, data = ?, updated_at = ?
        WHERE id = ?
    `, p.Name, p.Data, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return expectOne(res, p.ID)
}

func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return expectOne(res, id)
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return nil
}

// OpenSQLite opens the database at dbPath, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000&_pragma=foreign_keys(1)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
