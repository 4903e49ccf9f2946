package utils

import (
	"database/sql"
	"time"

	"taskboard-api/models"
)

const taskColumns = "id, title, description, owner, priority, status, position, created_at, updated_at"

func scanTask(row *sql.Row) (*models.Task, error) {
	var task models.Task
	err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Owner,
		&task.Priority, &task.Status, &task.Position, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask retrieves a single task by ID
func GetTask(id int) (*models.Task, error) {
	query := `
    SELECT ` + taskColumns + `
    FROM tasks
    WHERE id = ?
    `
	task, err := scanTask(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks retrieves all tasks, optionally filtered by owner, ordered by
// (status, position, id). The status column is TEXT, so columns come out in
// plain string order: backlog, done, in_progress.
func ListTasks(owner string) ([]models.Task, error) {
	query := `
    SELECT ` + taskColumns + `
    FROM tasks
    ORDER BY status ASC, position ASC, id ASC
    `
	args := []any{}
	if owner != "" {
		query = `
    SELECT ` + taskColumns + `
    FROM tasks
    WHERE owner = ?
    ORDER BY status ASC, position ASC, id ASC
    `
		args = append(args, owner)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Owner,
			&task.Priority, &task.Status, &task.Position, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// CreateTask validates the input, inserts a new row with defaults applied
// and returns the freshly-read row.
func CreateTask(input models.TaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, &ValidationError{Message: "Title is required"}
	}
	if input.Owner == "" {
		return nil, &ValidationError{Message: "Owner is required"}
	}
	if !models.ValidOwner(input.Owner) {
		return nil, &ValidationError{Message: "Owner must be one of: " + models.OwnerA + ", " + models.OwnerB}
	}

	priority := 1
	if input.Priority != nil {
		priority = *input.Priority
	}
	status := models.StatusBacklog
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return nil, &ValidationError{Message: "Status must be one of: " +
				models.StatusBacklog + ", " + models.StatusInProgress + ", " + models.StatusDone}
		}
		status = *input.Status
	}

	now := time.Now()
	query := `
    INSERT INTO tasks (title, description, owner, priority, status, position, created_at, updated_at)
    VALUES (?, ?, ?, ?, ?, 0, ?, ?)
    `
	result, err := db.Exec(query, input.Title, input.Description, input.Owner, priority, status, now, now)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return GetTask(int(id))
}

// UpdateTask applies a partial update: nil fields keep the stored value,
// non-nil fields overwrite it. COALESCE does the merge in SQL, with NULL as
// the "unset" sentinel, so an explicit zero or empty string still lands.
func UpdateTask(id int, patch models.TaskPatch) (*models.Task, error) {
	if _, err := GetTask(id); err != nil {
		return nil, err
	}
	if patch.Owner != nil && !models.ValidOwner(*patch.Owner) {
		return nil, &ValidationError{Message: "Owner must be one of: " + models.OwnerA + ", " + models.OwnerB}
	}
	if patch.Status != nil && !models.ValidStatus(*patch.Status) {
		return nil, &ValidationError{Message: "Status must be one of: " +
			models.StatusBacklog + ", " + models.StatusInProgress + ", " + models.StatusDone}
	}

	query := `
    UPDATE tasks
    SET title = COALESCE(?, title),
        description = COALESCE(?, description),
        owner = COALESCE(?, owner),
        priority = COALESCE(?, priority),
        status = COALESCE(?, status),
        position = COALESCE(?, position),
        updated_at = ?
    WHERE id = ?
    `
	_, err := db.Exec(query, patch.Title, patch.Description, patch.Owner,
		patch.Priority, patch.Status, patch.Position, time.Now(), id)
	if err != nil {
		return nil, err
	}
	return GetTask(id)
}

// MoveTask sets status and position on a task. Position defaults to 0 when
// the caller omits it.
func MoveTask(id int, move models.TaskMove) (*models.Task, error) {
	if _, err := GetTask(id); err != nil {
		return nil, err
	}
	if move.Status == "" {
		return nil, &ValidationError{Message: "Status is required"}
	}
	if !models.ValidStatus(move.Status) {
		return nil, &ValidationError{Message: "Status must be one of: " +
			models.StatusBacklog + ", " + models.StatusInProgress + ", " + models.StatusDone}
	}

	position := 0
	if move.Position != nil {
		position = *move.Position
	}

	query := `
    UPDATE tasks
    SET status = ?, position = ?, updated_at = ?
    WHERE id = ?
    `
	_, err := db.Exec(query, move.Status, position, time.Now(), id)
	if err != nil {
		return nil, err
	}
	return GetTask(id)
}

// DeleteTask removes a task by ID. Sibling positions are left alone.
func DeleteTask(id int) error {
	result, err := db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}
