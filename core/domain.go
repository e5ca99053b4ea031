package core

import (
	"strings"
	"time"
)

type CommentStatus string

const (
	StatusNone           CommentStatus = "NONE"
	StatusAccepted       CommentStatus = "ACCEPTED"
	StatusRejected       CommentStatus = "REJECTED"
	StatusPremod         CommentStatus = "PREMOD"
	StatusSystemWithheld CommentStatus = "SYSTEM_WITHHELD"
)

// Neutral reports whether a status entry leaves the comment in a neutral
// moderation position. Anything outside ACCEPTED/NONE means a moderator or
// the system already handled the comment.
func (s CommentStatus) Neutral() bool {
	switch s {
	case StatusNone, StatusAccepted:
		return true
	default:
		return false
	}
}

type StatusHistoryEntry struct {
	Type       CommentStatus
	AssignedBy string
	CreatedAt  time.Time
}

type ActionCounts struct {
	Flag int
}

// Comment is a read-only view over the host platform's comment entity.
// The relay never mutates it.
type Comment struct {
	ID            string
	Status        CommentStatus
	ActionCounts  ActionCounts
	StatusHistory []StatusHistoryEntry
	CreatedAt     time.Time
}

const ItemTypeComments = "COMMENTS"

// Flag is a read-only view over the host platform's action entity for
// flag-created events.
type Flag struct {
	ID       string
	ItemID   string
	ItemType string
}

func (f Flag) TargetsComment() bool {
	return strings.TrimSpace(f.ItemType) == ItemTypeComments
}

type NotificationSource string

const (
	SourceComment NotificationSource = "comment"
	SourceFlag    NotificationSource = "flag"
)

// NotificationPayload is the outbound wire body. Constructed fresh per
// eligible event and discarded after the send.
type NotificationPayload struct {
	ID     string             `json:"id"`
	Source NotificationSource `json:"source"`
}

// CommentCreatedResult is the host mutation result handed to the
// comment-created hook. The hook must return it unchanged.
type CommentCreatedResult struct {
	Comment  *Comment
	Metadata map[string]any
}

// FlagCreatedResult is the host mutation result handed to the flag-created
// hook. Flag is nil when the mutation produced no action record.
type FlagCreatedResult struct {
	Flag     *Flag
	Metadata map[string]any
}

type HandshakeRequest struct {
	Challenge      string `json:"challenge"`
	HandshakeToken string `json:"handshake_token"`
	InjestionURL   string `json:"injestion_url"`
}

type HandshakeResponse struct {
	Challenge     string `json:"challenge"`
	ClientVersion string `json:"client_version"`
}
