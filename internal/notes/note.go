package notes

import (
	"sort"
	"strconv"
	"time"
)

// Note is a freeform household note. Notes are created, toggled and deleted,
// never edited in place.
type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"` // epoch milliseconds
}

// New creates a note with a time-derived identifier.
func New(text string, now time.Time) Note {
	ms := now.UnixMilli()
	return Note{
		ID:        strconv.FormatInt(ms, 10),
		Text:      text,
		CreatedAt: ms,
	}
}

// SortForDisplay orders notes newest first.
func SortForDisplay(list []Note) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt > list[j].CreatedAt
	})
}
