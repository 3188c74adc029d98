// Package approval implements the two-level review chain for builder
// visits. Level 1 is the field review, level 2 the final sign-off; level 2
// cannot approve until level 1 has. A level-2 rejection sends the record
// back to the level-1 queue, while a level-1 rejection leaves level 2
// untouched. That asymmetry is deliberate: the level-2 reviewer only ever
// sees records that already cleared level 1.
package approval

import (
	"errors"
	"strings"
	"time"

	"p9e.in/loantrack/models"
)

var (
	// ErrNotFound is returned when the record id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidLevel is returned for levels other than 1 and 2.
	ErrInvalidLevel = errors.New("approval level must be 1 or 2")
	// ErrPrecursorNotApproved is returned when level 2 acts before level 1
	// has approved.
	ErrPrecursorNotApproved = errors.New("level 1 approval required first")
	// ErrInvalidComment is returned when a rejection comment is missing or
	// too short.
	ErrInvalidComment = errors.New("rejection comment must be at least 3 characters")
)

const minCommentLen = 3

// Approve records an approval at the given level and returns the updated
// approval object plus the legacy status projection. The input is not
// mutated.
func Approve(a models.Approval, level int, by string, now time.Time) (models.Approval, string, error) {
	switch level {
	case 1:
		a.Level1 = ApprovalStamp(models.LevelApproved, by, now, "")
		if a.Level2.Status == "" {
			a.Level2.Status = models.LevelPending
		}
		if a.Level2.Status == models.LevelApproved {
			return a, models.StatusLevel2Approved, nil
		}
		return a, models.StatusLevel1Approved, nil
	case 2:
		if a.Level1.Status != models.LevelApproved {
			return a, "", ErrPrecursorNotApproved
		}
		a.Level2 = ApprovalStamp(models.LevelApproved, by, now, "")
		return a, models.StatusLevel2Approved, nil
	default:
		return a, "", ErrInvalidLevel
	}
}

// Reject records a rejection at the given level. A level-2 rejection also
// knocks an approved level 1 back to Pending so the record re-enters the
// level-1 queue.
func Reject(a models.Approval, level int, by, comment string, now time.Time) (models.Approval, string, error) {
	comment = strings.TrimSpace(comment)
	if len(comment) < minCommentLen {
		return a, "", ErrInvalidComment
	}

	switch level {
	case 1:
		a.Level1 = ApprovalStamp(models.LevelRejected, by, now, comment)
		if a.Level2.Status == "" {
			a.Level2.Status = models.LevelPending
		}
		return a, models.StatusLevel1Rejected, nil
	case 2:
		a.Level2 = ApprovalStamp(models.LevelRejected, by, now, comment)
		// only an already-granted level-1 sign-off goes back to the queue
		if a.Level1.Status == models.LevelApproved {
			a.Level1 = models.ApprovalLevel{Status: models.LevelPending}
		}
		return a, models.StatusLevel2Rejected, nil
	default:
		return a, "", ErrInvalidLevel
	}
}

// ApprovalStamp builds a fully-populated level entry.
func ApprovalStamp(status, by string, at time.Time, comment string) models.ApprovalLevel {
	return models.ApprovalLevel{Status: status, By: by, At: &at, Comment: comment}
}

// Reset returns the both-Pending state a record drops back to after any
// content edit; prior sign-offs no longer vouch for the new content.
func Reset() models.Approval {
	return models.NewApproval()
}

// LegacyStatus projects the two-level object onto the single legacy status
// field. When neither rule matches, the current value is kept so rejection
// markers written by Reject survive.
func LegacyStatus(a models.Approval, current string) string {
	switch {
	case a.Level1.Status == models.LevelApproved && a.Level2.Status == models.LevelApproved:
		return models.StatusLevel2Approved
	case a.Level1.Status == models.LevelApproved:
		return models.StatusLevel1Approved
	default:
		return current
	}
}
