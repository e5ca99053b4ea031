package sqlstore

import (
	"time"

	"github.com/goliatone/go-bouncer/core"
	"github.com/uptrace/bun"
)

type commentRecord struct {
	bun.BaseModel `bun:"table:comments,alias:c"`

	ID            string               `bun:"id,pk"`
	Status        string               `bun:"status,notnull"`
	ActionCounts  map[string]int       `bun:"action_counts,type:jsonb,notnull"`
	StatusHistory []statusHistoryEntry `bun:"status_history,type:jsonb,notnull"`
	CreatedAt     time.Time            `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time            `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type statusHistoryEntry struct {
	Type       string    `json:"type"`
	AssignedBy string    `json:"assigned_by,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

func commentToDomain(record *commentRecord) core.Comment {
	if record == nil {
		return core.Comment{}
	}

	comment := core.Comment{
		ID:        record.ID,
		Status:    core.CommentStatus(record.Status),
		CreatedAt: record.CreatedAt,
	}
	if record.ActionCounts != nil {
		comment.ActionCounts = core.ActionCounts{Flag: record.ActionCounts["flag"]}
	}
	for _, entry := range record.StatusHistory {
		comment.StatusHistory = append(comment.StatusHistory, core.StatusHistoryEntry{
			Type:       core.CommentStatus(entry.Type),
			AssignedBy: entry.AssignedBy,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return comment
}
