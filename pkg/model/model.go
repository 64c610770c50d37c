// Package model defines the wire types shared by the gateway, stores,
// and UI layers.
package model

// User is the account every other entity hangs off of.
type User struct {
	ID    int64  `json:"user_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserCreate is the signup payload. The server assigns the id.
type UserCreate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Task is a single planned item. DueDate is mandatory; DueTime and
// Importance are optional. Finished and DateFinished move together.
type Task struct {
	ID           int64  `json:"task_id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	DueDate      Date   `json:"due_date"`
	DueTime      Clock  `json:"due_time,omitempty"`
	Importance   int    `json:"importance,omitempty"`
	Finished     bool   `json:"finished"`
	DateMade     Date   `json:"date_made,omitempty"`
	DateFinished Date   `json:"date_finished,omitempty"`
	UserID       int64  `json:"user_id"`
}

// Timed reports whether the task carries a wall-clock time. Untimed
// tasks group separately in calendar views.
func (t Task) Timed() bool { return !t.DueTime.IsZero() }

// Complete marks the task finished as of the given date. Finished and
// DateFinished always change together.
func (t *Task) Complete(on Date) {
	t.Finished = true
	t.DateFinished = on
}

// Reopen clears the finished state and the finish date together.
func (t *Task) Reopen() {
	t.Finished = false
	t.DateFinished = ""
}

// TaskCreate is the creation payload. Finished is forced false by the
// form flow; the server assigns id and date_made.
type TaskCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     Date   `json:"due_date"`
	DueTime     Clock  `json:"due_time,omitempty"`
	Importance  int    `json:"importance,omitempty"`
	Finished    bool   `json:"finished"`
	UserID      int64  `json:"user_id"`
}

// TaskPatch is a partial update. Nil means "leave unchanged"; the
// server only touches fields that are present.
type TaskPatch struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	DueDate      *Date   `json:"due_date,omitempty"`
	DueTime      *Clock  `json:"due_time,omitempty"`
	Importance   *int    `json:"importance,omitempty"`
	Finished     *bool   `json:"finished,omitempty"`
	DateFinished *Date   `json:"date_finished,omitempty"`
}

// IsZero reports whether the patch would change nothing.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.DueTime == nil && p.Importance == nil && p.Finished == nil &&
		p.DateFinished == nil
}

// Note is freeform text owned by a user.
type Note struct {
	ID          int64  `json:"note_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DateCreated Date   `json:"date_created,omitempty"`
	UserID      int64  `json:"user_id"`
}

// NoteCreate is the note creation payload.
type NoteCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	UserID      int64  `json:"user_id"`
}

// NotePatch is a partial note update with the same absent-means-keep
// convention as TaskPatch.
type NotePatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsZero reports whether the patch would change nothing.
func (p NotePatch) IsZero() bool {
	return p.Title == nil && p.Description == nil
}

// TaskCompletionReport is a server-side aggregate. The client treats
// it as opaque display data; missing numbers decode as zero.
type TaskCompletionReport struct {
	TotalTasks        int     `json:"total_tasks"`
	CompletedTasks    int     `json:"completed_tasks"`
	AvgCompletionDays float64 `json:"avg_completion_days"`
	AvgImportance     float64 `json:"avg_importance"`
	CompletionRate    float64 `json:"completion_rate"`
}

// NoteActivityReport mirrors the task report for notes.
type NoteActivityReport struct {
	TotalNotes int `json:"total_notes"`
}

// Message is the generic acknowledgement body for deletes and cleanups.
type Message struct {
	Message string `json:"message"`
}

// Ptr is a small helper for building patches from literals.
func Ptr[T any](v T) *T { return &v }
