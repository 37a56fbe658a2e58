package domain

import "strings"

type Status string

const (
	StatusSuccess   Status = "success"
	StatusFail      Status = "fail"
	StatusCompleted Status = "completed"
	StatusDone      Status = "done"
)

// Normalize lowercases the status and defaults an absent one to "fail".
// Applied on every repository write.
func (s Status) Normalize() Status {
	normalized := Status(strings.ToLower(strings.TrimSpace(string(s))))
	if normalized == "" {
		return StatusFail
	}

	return normalized
}
