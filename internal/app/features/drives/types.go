// internal/app/features/drives/types.go
package drives

import (
	"time"

	"github.com/slopepool/slopepool/internal/domain/models"
)

// driveInput is the request body for creating and updating a drive.
// Seats is a pointer so an explicit 0 still satisfies required.
type driveInput struct {
	LeavingDate string `json:"leaving_date" validate:"required,datefmt,datefuture"`
	LeavingTime string `json:"leaving_time" validate:"required"`
	Resort      string `json:"resort" validate:"required"`
	Seats       *int   `json:"seats" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type commentInput struct {
	Text string `json:"text" validate:"required"`
}

// groupEntryFor builds the membership snapshot stored on a drive. The
// entry copies the user's contact fields and, when a profile exists,
// the rider attributes. Snapshots are frozen at join time.
func groupEntryFor(user models.User, profile *models.Profile) models.GroupEntry {
	entry := models.GroupEntry{
		UserID:   user.ID,
		Name:     user.Name,
		Phone:    user.Phone,
		Avatar:   user.Avatar,
		JoinedAt: time.Now().UTC(),
	}
	if profile != nil {
		entry.Grade = profile.Grade
		entry.Type = profile.Type
		entry.Experience = profile.Experience
		entry.Skills = profile.Skills
	}
	return entry
}
