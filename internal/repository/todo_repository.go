// This file defines the TodoRepo with CRUD operations over the todos
// table. Every mutating operation runs inside an explicit transaction that
// is rolled back on any failure, so a storage error never leaves a partial
// write behind.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to match sentinel values
	"time"         // time supplies the UTC timestamps written to rows

	"todoapi/internal/model"
)

// TodoRepo encapsulates all database queries related to todos. It depends
// on a sql.DB connection pool which is configured elsewhere.
type TodoRepo struct {
	db *sql.DB // db is the underlying database connection pool

	// now is the clock used for created_at/updated_at. Tests replace it
	// to make timestamp assertions deterministic.
	now func() time.Time
}

// NewTodoRepo constructs a TodoRepo with the provided DB handle. This
// function allows dependency injection of the database in tests and at
// startup.
func NewTodoRepo(db *sql.DB) *TodoRepo {
	if db == nil {
		panic("nil db passed to NewTodoRepo")
	}
	return &TodoRepo{db: db, now: time.Now}
}

// timestamp renders the current clock reading in the stored format.
// RFC 3339 UTC strings sort lexicographically in chronological order, which
// ListAll relies on.
func (r *TodoRepo) timestamp() string {
	return r.now().UTC().Format(time.RFC3339)
}

// Ping verifies that the storage engine answers queries. It issues a real
// statement rather than a pool-level ping so a wedged database is detected.
func (r *TodoRepo) Ping(ctx context.Context) error {
	var n int
	return r.db.QueryRowContext(ctx, "SELECT 1").Scan(&n)
}

// Create inserts a new todo. On success the ID, CreatedAt and UpdatedAt
// fields of t are populated; both timestamps carry the same value so a
// fresh todo always satisfies updated_at >= created_at.
func (r *TodoRepo) Create(ctx context.Context, t *model.Todo) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	ts := r.timestamp()
	t.CreatedAt = ts
	t.UpdatedAt = ts

	const q = `INSERT INTO todos (title, description, completed, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, t.Title, t.Description, t.Completed, ts, ts)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

// GetByID fetches a todo by its ID. It returns ErrTodoNotFound if no row
// matches.
func (r *TodoRepo) GetByID(ctx context.Context, id int64) (*model.Todo, error) {
	const q = `SELECT id, title, description, completed, created_at, updated_at
	           FROM todos WHERE id = ?`
	var t model.Todo
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListAll returns every todo ordered newest created first. Rows created in
// the same second keep insertion order reversed via the id tiebreaker. The
// result is never nil so callers serialize an empty list as [].
func (r *TodoRepo) ListAll(ctx context.Context) ([]*model.Todo, error) {
	const q = `SELECT id, title, description, completed, created_at, updated_at
	           FROM todos ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Todo, 0)
	for rows.Next() {
		t := new(model.Todo)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial update to the todo with the given id and returns
// the resulting row. Fields absent from the patch keep their stored values;
// updated_at is refreshed on every call. ErrTodoNotFound is returned when
// the id has no matching row.
func (r *TodoRepo) Update(ctx context.Context, id int64, p model.TodoPatch) (t *model.Todo, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	t = new(model.Todo)
	const qSelect = `SELECT id, title, description, completed, created_at, updated_at
	                 FROM todos WHERE id = ?`
	err = tx.QueryRowContext(ctx, qSelect, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrTodoNotFound
		}
		return nil, err
	}

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	t.UpdatedAt = r.timestamp()

	const qUpdate = `UPDATE todos SET title = ?, description = ?, completed = ?, updated_at = ?
	                 WHERE id = ?`
	if _, err = tx.ExecContext(ctx, qUpdate, t.Title, t.Description, t.Completed, t.UpdatedAt, id); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the todo with the given id. ErrTodoNotFound is returned
// when no row was deleted, which also covers a second delete of the same id.
func (r *TodoRepo) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = ErrTodoNotFound
		return err
	}
	return nil
}
