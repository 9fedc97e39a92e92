package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	"github.com/scripturesanctuary/sanctuary-server/internal/store"
)

// favoriteColumns must match the scan order in scanFavorite.
const favoriteColumns = `f.id, f.user_id, f.translation, f.book, f.chapter,
	f.start_verse, f.end_verse, f.created_at`

func scanFavorite(scanner interface{ Scan(dest ...any) error }) (*domain.Favorite, error) {
	var (
		f          domain.Favorite
		startVerse sql.NullInt64
		endVerse   sql.NullInt64
		createdAt  string
	)

	err := scanner.Scan(
		&f.ID,
		&f.UserID,
		&f.Translation,
		&f.Book,
		&f.Chapter,
		&startVerse,
		&endVerse,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	f.StartVerse = intPtr(startVerse)
	f.EndVerse = intPtr(endVerse)
	if f.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func scanFavorites(rows *sql.Rows) ([]*domain.Favorite, error) {
	defer rows.Close()

	favs := []*domain.Favorite{}
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}

// CreateFavorite inserts a favorite. The owning user must exist.
func (s *Store) CreateFavorite(ctx context.Context, f *domain.Favorite) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (id, user_id, translation, book, chapter, start_verse, end_verse, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID,
		f.UserID,
		f.Translation,
		f.Book,
		f.Chapter,
		nullInt(f.StartVerse),
		nullInt(f.EndVerse),
		formatTime(f.CreatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// GetFavorite retrieves a favorite by ID.
func (s *Store) GetFavorite(ctx context.Context, id string) (*domain.Favorite, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+favoriteColumns+` FROM favorites f WHERE f.id = ?`, id)

	f, err := scanFavorite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("favorite not found")
	}
	return f, err
}

// ListFavoritesByUser returns a user's favorites, oldest first.
func (s *Store) ListFavoritesByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+favoriteColumns+` FROM favorites f
		WHERE f.user_id = ?
		ORDER BY f.created_at ASC, f.rowid ASC`, userID)
	if err != nil {
		return nil, err
	}
	return scanFavorites(rows)
}

// DeleteFavorite removes a favorite and its tag associations.
func (s *Store) DeleteFavorite(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}
