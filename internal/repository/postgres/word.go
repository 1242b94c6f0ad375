package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"vocabler/internal/domain"

	"github.com/lib/pq"
)

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

const wordColumns = `id, user_id, word, translation, category_id, is_custom, created_at, updated_at`

// qualified variant for queries joining other tables
const wordColumnsW = `w.id, w.user_id, w.word, w.translation, w.category_id, w.is_custom, w.created_at, w.updated_at`

// GetRandomWord returns a uniformly random word from the shared pool,
// optionally filtered by category, excluding words in the user's
// learned set. Returns domain.ErrNoWords when no candidates remain.
func (r *WordRepo) GetRandomWord(ctx context.Context, userID int64, categoryID *int) (*domain.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words w
		WHERE w.user_id = $1
			AND w.is_custom = FALSE
			AND ($2::int IS NULL OR w.category_id = $2)
			AND NOT EXISTS (
				SELECT 1 FROM user_learned_words l
				WHERE l.user_id = $3 AND l.word_id = w.id
			)
		ORDER BY RANDOM()
		LIMIT 1
	`
	w, err := scanWord(r.db.QueryRowContext(ctx, query, domain.SystemUserID, nullableInt(categoryID), userID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNoWords
	}
	if err != nil {
		return nil, fmt.Errorf("get random word: %w", err)
	}
	return w, nil
}

// GetRandomCustomWord returns a random word the user added themselves,
// restricted to the reserved "My Words" category, excluding already
// learned words.
func (r *WordRepo) GetRandomCustomWord(ctx context.Context, userID int64) (*domain.Word, error) {
	query := `
		SELECT ` + wordColumnsW + `
		FROM words w
		JOIN categories c ON c.id = w.category_id
		WHERE w.user_id = $1
			AND w.is_custom = TRUE
			AND c.name = $2
			AND NOT EXISTS (
				SELECT 1 FROM user_learned_words l
				WHERE l.user_id = $1 AND l.word_id = w.id
			)
		ORDER BY RANDOM()
		LIMIT 1
	`
	w, err := scanWord(r.db.QueryRowContext(ctx, query, userID, domain.MyWordsCategory))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNoWords
	}
	if err != nil {
		return nil, fmt.Errorf("get random custom word: %w", err)
	}
	return w, nil
}

// GetWordsForGeneration returns up to limit learned words, least
// recently shown first, and marks the returned words as shown now.
// Both steps run in one transaction.
func (r *WordRepo) GetWordsForGeneration(ctx context.Context, userID int64, categoryID *int, limit int) ([]domain.Word, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("get words for generation: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT ` + wordColumnsW + `
		FROM user_learned_words l
		JOIN words w ON w.id = l.word_id
		WHERE l.user_id = $1
			AND ($2::int IS NULL OR w.category_id = $2)
		ORDER BY l.last_seen_at ASC NULLS FIRST, l.learned_at ASC
		LIMIT $3
	`
	rows, err := tx.QueryContext(ctx, query, userID, nullableInt(categoryID), limit)
	if err != nil {
		return nil, fmt.Errorf("get words for generation: %w", err)
	}
	words, err := collectWords(rows)
	if err != nil {
		return nil, fmt.Errorf("get words for generation: %w", err)
	}

	if len(words) > 0 {
		ids := make([]int64, len(words))
		for i, w := range words {
			ids[i] = int64(w.ID)
		}
		bump := `
			UPDATE user_learned_words
			SET last_seen_at = NOW()
			WHERE user_id = $1 AND word_id = ANY($2)
		`
		if _, err := tx.ExecContext(ctx, bump, userID, pq.Array(ids)); err != nil {
			return nil, fmt.Errorf("mark words shown: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("get words for generation: %w", err)
	}
	return words, nil
}

// GetWordByID returns a word by id. Returns domain.ErrNotFound when absent.
func (r *WordRepo) GetWordByID(ctx context.Context, wordID int) (*domain.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE id = $1`
	w, err := scanWord(r.db.QueryRowContext(ctx, query, wordID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("word %d: %w", wordID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}
	return w, nil
}

// AddCustomWord inserts a user-owned word and appends it to the user's
// custom list in one transaction, so a failed list update never leaves
// an orphaned word behind.
func (r *WordRepo) AddCustomWord(ctx context.Context, userID int64, word, translation string, categoryID *int) (*domain.Word, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("add custom word: %w", err)
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO words (user_id, word, translation, category_id, is_custom)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING ` + wordColumns + `
	`
	w, err := scanWord(tx.QueryRowContext(ctx, insert, userID, word, translation, nullableInt(categoryID)))
	if err != nil {
		return nil, fmt.Errorf("add custom word: %w", err)
	}

	list := `INSERT INTO user_custom_words (user_id, word_id) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, list, userID, w.ID); err != nil {
		return nil, fmt.Errorf("append custom word to list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("add custom word: %w", err)
	}
	return w, nil
}

// DeleteCustomWord deletes a word only if it is a custom word owned by
// the requesting user, and removes it from the learned and custom
// lists. Returns domain.ErrNotFound when the word is absent or owned
// by someone else.
func (r *WordRepo) DeleteCustomWord(ctx context.Context, userID int64, wordID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete custom word: %w", err)
	}
	defer tx.Rollback()

	del := `DELETE FROM words WHERE id = $1 AND user_id = $2 AND is_custom = TRUE`
	res, err := tx.ExecContext(ctx, del, wordID, userID)
	if err != nil {
		return fmt.Errorf("delete custom word: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete custom word: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("word %d: %w", wordID, domain.ErrNotFound)
	}

	lists := `DELETE FROM user_learned_words WHERE user_id = $1 AND word_id = $2`
	if _, err := tx.ExecContext(ctx, lists, userID, wordID); err != nil {
		return fmt.Errorf("remove word from learned list: %w", err)
	}
	lists = `DELETE FROM user_custom_words WHERE user_id = $1 AND word_id = $2`
	if _, err := tx.ExecContext(ctx, lists, userID, wordID); err != nil {
		return fmt.Errorf("remove word from custom list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete custom word: %w", err)
	}
	return nil
}

// GetAllCustomWords returns every word in the user's custom list.
func (r *WordRepo) GetAllCustomWords(ctx context.Context, userID int64) ([]domain.Word, error) {
	query := `
		SELECT ` + wordColumnsW + `
		FROM user_custom_words cw
		JOIN words w ON w.id = cw.word_id
		WHERE cw.user_id = $1
		ORDER BY w.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get custom words: %w", err)
	}
	words, err := collectWords(rows)
	if err != nil {
		return nil, fmt.Errorf("get custom words: %w", err)
	}
	return words, nil
}

// GetWordsByCategory returns shared-pool words in the named category.
func (r *WordRepo) GetWordsByCategory(ctx context.Context, category string) ([]domain.Word, error) {
	query := `
		SELECT ` + wordColumnsW + `
		FROM words w
		JOIN categories c ON c.id = w.category_id
		WHERE c.name = $1 AND w.user_id = $2
		ORDER BY w.word
	`
	rows, err := r.db.QueryContext(ctx, query, category, domain.SystemUserID)
	if err != nil {
		return nil, fmt.Errorf("get words by category: %w", err)
	}
	words, err := collectWords(rows)
	if err != nil {
		return nil, fmt.Errorf("get words by category: %w", err)
	}
	return words, nil
}

// GetCategoryByName returns a category by its unique name.
func (r *WordRepo) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	query := `SELECT id, name FROM categories WHERE name = $1`
	err := r.db.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// FindTranslation looks the word up in the shared dictionary,
// case-insensitively.
func (r *WordRepo) FindTranslation(ctx context.Context, word string) (*domain.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE user_id = $1 AND LOWER(word) = LOWER($2)
		LIMIT 1
	`
	w, err := scanWord(r.db.QueryRowContext(ctx, query, domain.SystemUserID, word))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("word %q: %w", word, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find translation: %w", err)
	}
	return w, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var w domain.Word
	var categoryID sql.NullInt64
	err := row.Scan(&w.ID, &w.UserID, &w.Word, &w.Translation, &categoryID, &w.IsCustom, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		id := int(categoryID.Int64)
		w.CategoryID = &id
	}
	return &w, nil
}

func collectWords(rows *sql.Rows) ([]domain.Word, error) {
	defer rows.Close()

	var words []domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, *w)
	}
	return words, rows.Err()
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
