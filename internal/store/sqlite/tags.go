package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	"github.com/scripturesanctuary/sanctuary-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `t.id, t.name, t.user_id, t.created_at, t.updated_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var (
		t         domain.Tag
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.UserID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTags(rows *sql.Rows) ([]*domain.Tag, error) {
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func tagOrNotFound(t *domain.Tag, err error) (*domain.Tag, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("tag not found")
	}
	return t, err
}

// CreateTag inserts a new tag.
// Returns store.ErrAlreadyExists if any user already has a tag by that name.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID,
		t.Name,
		t.UserID,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("tag %q already exists", t.Name))
	}
	return err
}

// GetTag retrieves a tag by its ID.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags t WHERE t.id = ?`, id)
	return tagOrNotFound(scanTag(row))
}

// GetTagByName retrieves a tag by name, case-insensitively.
func (s *Store) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags t WHERE t.name = ?`, name)
	return tagOrNotFound(scanTag(row))
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags t ORDER BY t.name ASC`)
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}

// UpdateTag renames a tag.
// Returns store.ErrAlreadyExists if the new name is taken.
func (s *Store) UpdateTag(ctx context.Context, t *domain.Tag) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tags SET name = ?, updated_at = ? WHERE id = ?`,
		t.Name, formatTime(t.UpdatedAt), t.ID)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("tag %q already exists", t.Name))
	}
	if err != nil {
		return err
	}
	return expectOne(res)
}

// DeleteTag removes a tag. Its favorite associations are removed by
// ON DELETE CASCADE; the favorites themselves are untouched.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

// SetFavoriteTags replaces all tags for a favorite in a single transaction.
// Names are resolved inside the transaction; an unknown name rolls back
// with store.ErrNotFound. Repeated names are attached once.
func (s *Store) SetFavoriteTags(ctx context.Context, favoriteID string, tagNames []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM favorites WHERE id = ?`, favoriteID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound.WithMessage("favorite not found")
	}
	if err != nil {
		return fmt.Errorf("lookup favorite: %w", err)
	}

	tagIDs := make([]string, 0, len(tagNames))
	seen := make(map[string]bool, len(tagNames))
	for _, name := range tagNames {
		var tagID string
		err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&tagID)
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrNotFound.WithMessage(fmt.Sprintf("tag %q not found", name))
		}
		if err != nil {
			return fmt.Errorf("lookup tag %q: %w", name, err)
		}
		if !seen[tagID] {
			seen[tagID] = true
			tagIDs = append(tagIDs, tagID)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM favorite_tags WHERE favorite_id = ?`, favoriteID); err != nil {
		return fmt.Errorf("delete favorite_tags: %w", err)
	}

	now := formatTime(time.Now().UTC())
	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO favorite_tags (favorite_id, tag_id, created_at)
			VALUES (?, ?, ?)`,
			favoriteID,
			tagID,
			now,
		)
		if err != nil {
			return fmt.Errorf("insert favorite_tag: %w", err)
		}
	}

	return tx.Commit()
}

// ListTagsForFavorite returns the tags attached to a favorite, ordered by name.
func (s *Store) ListTagsForFavorite(ctx context.Context, favoriteID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tagColumns+` FROM tags t
		JOIN favorite_tags ft ON ft.tag_id = t.id
		WHERE ft.favorite_id = ?
		ORDER BY t.name ASC`, favoriteID)
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}

// ListFavoritesForTag returns the favorites carrying a tag in the order
// they were tagged.
func (s *Store) ListFavoritesForTag(ctx context.Context, tagID string) ([]*domain.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+favoriteColumns+` FROM favorites f
		JOIN favorite_tags ft ON ft.favorite_id = f.id
		WHERE ft.tag_id = ?
		ORDER BY ft.rowid ASC`, tagID)
	if err != nil {
		return nil, err
	}
	return scanFavorites(rows)
}

// ListProfileTags returns the tags a user owns together with the tags on
// the user's favorites.
func (s *Store) ListProfileTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tagColumns+` FROM tags t
		WHERE t.user_id = ?
		   OR t.id IN (
			SELECT ft.tag_id FROM favorite_tags ft
			JOIN favorites f ON f.id = ft.favorite_id
			WHERE f.user_id = ?)
		ORDER BY t.name ASC`, userID, userID)
	if err != nil {
		return nil, err
	}
	return scanTags(rows)
}
