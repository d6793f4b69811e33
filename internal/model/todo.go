package model

// Todo is the single domain entity: a short task with a title, optional
// description and completion flag. This struct corresponds to a row in the
// `todos` table and doubles as the JSON representation returned by the API.
//
// Fields:
//
//	ID          – primary key identifier, system generated.
//	Title       – required short text, never empty after trimming.
//	Description – optional short text, defaults to "".
//	Completed   – completion flag, defaults to false.
//	CreatedAt   – RFC 3339 UTC timestamp set once at creation.
//	UpdatedAt   – RFC 3339 UTC timestamp refreshed on every mutation.
type Todo struct {
	ID          int64  `json:"id"`          // todos.id
	Title       string `json:"title"`       // todos.title
	Description string `json:"description"` // todos.description
	Completed   bool   `json:"completed"`   // todos.completed
	CreatedAt   string `json:"created_at"`  // todos.created_at
	UpdatedAt   string `json:"updated_at"`  // todos.updated_at
}

// TodoPatch carries a partial update. A nil field was not supplied by the
// client and leaves the stored value unchanged; a non-nil field overwrites
// it, including explicit zero values such as completed=false.
type TodoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}
