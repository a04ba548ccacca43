package services

import (
	"strings"
	"time"

	"dropoff-intake-api/models"
)

// statusColumn is one of the fixed columns a status update may touch.
type statusColumn string

const (
	colIsDone    statusColumn = "is_done"
	colDoneAt    statusColumn = "done_at"
	colIsPrinted statusColumn = "is_printed"
	colPrintedAt statusColumn = "printed_at"
)

type assignment struct {
	column statusColumn
	value  interface{}
}

// statusUpdate accumulates column assignments and renders them as a single
// parameterized UPDATE. Values are always bound, never formatted into SQL.
type statusUpdate struct {
	sets []assignment
}

func (u *statusUpdate) set(column statusColumn, value interface{}) {
	u.sets = append(u.sets, assignment{column: column, value: value})
}

// flag sets a boolean and its mirrored timestamp: now when true, NULL when false.
func (u *statusUpdate) flag(flagColumn, atColumn statusColumn, value bool, now time.Time) {
	u.set(flagColumn, value)
	if value {
		u.set(atColumn, now)
	} else {
		u.set(atColumn, nil)
	}
}

// build renders the statement and its arguments, the row id last.
func (u *statusUpdate) build(id int64) (string, []interface{}) {
	var sb strings.Builder
	args := make([]interface{}, 0, len(u.sets)+1)

	sb.WriteString("UPDATE submissions SET ")
	for i, a := range u.sets {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(a.column))
		sb.WriteString(" = ?")
		args = append(args, a.value)
	}
	sb.WriteString(" WHERE id = ?")
	args = append(args, id)

	return sb.String(), args
}

// newStatusUpdate expects a non-empty update; see models.StatusUpdate.IsEmpty.
func newStatusUpdate(update models.StatusUpdate, now time.Time) *statusUpdate {
	u := &statusUpdate{}
	if update.IsDone != nil {
		u.flag(colIsDone, colDoneAt, *update.IsDone, now)
	}
	if update.IsPrinted != nil {
		u.flag(colIsPrinted, colPrintedAt, *update.IsPrinted, now)
	}
	return u
}
