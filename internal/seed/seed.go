// Package seed fills the shared word pool and the category list at
// startup. Seeding is idempotent: re-running it never duplicates rows.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"vocabler/internal/domain"

	"go.uber.org/zap"
)

type seedWord struct {
	word        string
	translation string
	category    string
}

// categories is the fixed base list; categories implied by the word
// pool are added on top of it.
var categories = []string{
	domain.MyWordsCategory,
	"Basics",
	"Food",
	"Travel",
	"Work",
	"Nature",
}

var words = []seedWord{
	{"hello", "привет", "Basics"},
	{"goodbye", "до свидания", "Basics"},
	{"please", "пожалуйста", "Basics"},
	{"thank you", "спасибо", "Basics"},
	{"yes", "да", "Basics"},
	{"no", "нет", "Basics"},
	{"friend", "друг", "Basics"},
	{"family", "семья", "Basics"},
	{"time", "время", "Basics"},
	{"day", "день", "Basics"},
	{"apple", "яблоко", "Food"},
	{"bread", "хлеб", "Food"},
	{"water", "вода", "Food"},
	{"milk", "молоко", "Food"},
	{"cheese", "сыр", "Food"},
	{"dinner", "ужин", "Food"},
	{"breakfast", "завтрак", "Food"},
	{"airport", "аэропорт", "Travel"},
	{"ticket", "билет", "Travel"},
	{"luggage", "багаж", "Travel"},
	{"train", "поезд", "Travel"},
	{"map", "карта", "Travel"},
	{"hotel", "отель", "Travel"},
	{"meeting", "встреча", "Work"},
	{"deadline", "срок", "Work"},
	{"salary", "зарплата", "Work"},
	{"office", "офис", "Work"},
	{"colleague", "коллега", "Work"},
	{"forest", "лес", "Nature"},
	{"river", "река", "Nature"},
	{"mountain", "гора", "Nature"},
	{"weather", "погода", "Nature"},
	{"rain", "дождь", "Nature"},
}

// Run inserts categories and system words that are not present yet.
func Run(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	for _, name := range categories {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			name,
		); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}

	inserted := 0
	for _, w := range words {
		res, err := db.ExecContext(ctx, `
			INSERT INTO words (user_id, word, translation, category_id, is_custom)
			SELECT $1, $2, $3, c.id, FALSE
			FROM categories c
			WHERE c.name = $4
			ON CONFLICT (user_id, LOWER(word)) WHERE is_custom = FALSE DO NOTHING
		`, domain.SystemUserID, w.word, w.translation, w.category)
		if err != nil {
			return fmt.Errorf("seed word %q: %w", w.word, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	logger.Info("Seed completed",
		zap.Int("categories", len(categories)),
		zap.Int("new_words", inserted),
	)
	return nil
}
