package cursor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-BotCore/pkg/psqlbuilder"
)

const upsertSuffix = "ON CONFLICT (bot_id) DO UPDATE SET " +
	"next_update_id = GREATEST(" + tableName + ".next_update_id, EXCLUDED.next_update_id), " +
	"instance_id = EXCLUDED.instance_id, " +
	"updated_at = EXCLUDED.updated_at"

// Repository хранит курсор опроса обновлений в PostgreSQL
// Одна строка на бота; сохранённое значение никогда не уменьшается
type Repository struct {
	db    DBExecutor
	botID int64
}

// NewRepository создает репозиторий курсора для бота botID
func NewRepository(db DBExecutor, botID int64) *Repository {
	return &Repository{db: db, botID: botID}
}

// Load возвращает сохранённый курсор; false, если курсор ещё не сохранялся
func (r *Repository) Load(ctx context.Context) (int, bool, error) {
	query, args, err := r.loadQuery()
	if err != nil {
		return 0, false, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	var next int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: Load - scan cursor: %v", ErrScanRow, err)
	}

	return int(next), true, nil
}

// Save сохраняет курсор; меньшее значение, чем уже сохранённое, игнорируется
func (r *Repository) Save(ctx context.Context, cursor int, instanceID string) error {
	if cursor < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCursor, cursor)
	}

	query, args, err := r.saveQuery(cursor, instanceID)
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// Reset удаляет сохранённый курсор бота
func (r *Repository) Reset(ctx context.Context) error {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"bot_id": r.botID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reset - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Reset - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) loadQuery() (string, []interface{}, error) {
	return psqlbuilder.Select("next_update_id").
		From(tableName).
		Where(squirrel.Eq{"bot_id": r.botID}).
		ToSql()
}

func (r *Repository) saveQuery(cursor int, instanceID string) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableName).
		Columns("bot_id", "next_update_id", "instance_id", "updated_at").
		Values(r.botID, int64(cursor), instanceID, squirrel.Expr("NOW()")).
		Suffix(upsertSuffix).
		ToSql()
}
