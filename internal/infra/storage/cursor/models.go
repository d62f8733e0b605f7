package cursor

import "time"

const tableName = "poll_cursors"

// Checkpoint сохранённое состояние курсора опроса для бота
type Checkpoint struct {
	BotID        int64
	NextUpdateID int
	InstanceID   string
	UpdatedAt    time.Time
}
