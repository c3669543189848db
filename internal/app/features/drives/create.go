// internal/app/features/drives/create.go
package drives

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/slopepool/slopepool/internal/app/system/auth"
	"github.com/slopepool/slopepool/internal/app/system/dateval"
	"github.com/slopepool/slopepool/internal/app/system/htmlsanitize"
	"github.com/slopepool/slopepool/internal/app/system/inputval"
	"github.com/slopepool/slopepool/internal/app/system/respond"
	"github.com/slopepool/slopepool/internal/app/system/timeouts"
	"github.com/slopepool/slopepool/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleCreateDrive handles POST /drives.
//
// The caller becomes the drive's owner and its first group member. The
// owner's name and avatar are snapshotted onto the drive record, and
// the seeded group entry carries the owner's profile attributes when a
// profile exists.
func (h *Handler) HandleCreateDrive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUser(r)
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var in driveInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := inputval.Struct(in); len(errs) > 0 {
		respond.Fields(w, errs)
		return
	}
	// Validation has already passed the datefmt/datefuture rules.
	leaving, err := dateval.Parse(in.LeavingDate)
	if err != nil {
		respond.Fields(w, []respond.FieldError{{Msg: "Leaving date must be in MM/DD/YYYY format", Param: "leaving_date"}})
		return
	}

	description := htmlsanitize.Text(in.Description)
	if description == "" {
		respond.Fields(w, []respond.FieldError{{Msg: "Description is required", Param: "description"}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Msg(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("owner lookup failed", zap.Error(err))
		respond.ServerError(w)
		return
	}

	var profile *models.Profile
	if p, err := h.Profiles.GetByUserID(ctx, userID); err == nil {
		profile = &p
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Error("owner profile lookup failed", zap.Error(err))
		respond.ServerError(w)
		return
	}

	drive, err := h.Drives.Create(ctx, models.Drive{
		UserID:      user.ID,
		Name:        user.Name,
		Avatar:      user.Avatar,
		LeavingDate: leaving,
		LeavingTime: strings.TrimSpace(in.LeavingTime),
		Resort:      strings.TrimSpace(in.Resort),
		Seats:       *in.Seats,
		Description: description,
		Group:       []models.GroupEntry{groupEntryFor(user, profile)},
	})
	if err != nil {
		h.Log.Error("create drive failed", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.JSON(w, http.StatusOK, drive)
}
