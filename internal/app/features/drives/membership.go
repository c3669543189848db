// internal/app/features/drives/membership.go
package drives

import (
	"context"
	"errors"
	"net/http"

	"github.com/slopepool/slopepool/internal/app/system/auth"
	"github.com/slopepool/slopepool/internal/app/system/respond"
	"github.com/slopepool/slopepool/internal/app/system/timeouts"
	"github.com/slopepool/slopepool/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleJoinDrive handles PUT /drives/join/{id}.
//
// Joining requires a profile: the group snapshot carries the rider
// attributes so the driver can see who they are taking. The whole
// group plus the seat count is written back in one update; concurrent
// joins against the same drive can still race, matching the
// read-modify-write design of the embedded arrays.
func (h *Handler) HandleJoinDrive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUser(r)
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	id, ok := driveID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	drive, err := h.Drives.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Msg(w, http.StatusNotFound, "Drive not found")
			return
		}
		h.Log.Error("get drive failed", zap.Error(err))
		respond.ServerError(w)
		return
	}

	for _, entry := range drive.Group {
		if entry.UserID == userID {
			respond.Msg(w, http.StatusBadRequest, "Already joined this drive")
			return
		}
	}
	if drive.Seats < 1 {
		respond.Msg(w, http.StatusBadRequest, "Drive is full")
		return
	}

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Msg(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("joiner lookup failed", zap.Error(err))
		respond.ServerError(w)
		return
	}
	profile, err := h.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Msg(w, http.StatusBadRequest, "Create a profile before joining a drive")
			return
		}
		h.Log.Error("joiner profile lookup failed", zap.Error(err))
		respond.ServerError(w)
		return
	}

	group := append([]models.GroupEntry{groupEntryFor(user, &profile)}, drive.Group...)
	if err := h.Drives.SetGroup(ctx, drive.ID, group, drive.Seats-1); err != nil {
		h.Log.Error("join drive failed", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.JSON(w, http.StatusOK, group)
}

// HandleLeaveDrive handles PUT /drives/leave/{id}. Removes the
// caller's entry and frees the seat. A driver may leave their own
// drive; the record keeps them as owner regardless.
func (h *Handler) HandleLeaveDrive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUser(r)
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	id, ok := driveID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	drive, err := h.Drives.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Msg(w, http.StatusNotFound, "Drive not found")
			return
		}
		h.Log.Error("get drive failed", zap.Error(err))
		respond.ServerError(w)
		return
	}

	at := -1
	for i, entry := range drive.Group {
		if entry.UserID == userID {
			at = i
			break
		}
	}
	if at < 0 {
		respond.Msg(w, http.StatusBadRequest, "Not a member of this drive")
		return
	}

	group := make([]models.GroupEntry, 0, len(drive.Group)-1)
	group = append(group, drive.Group[:at]...)
	group = append(group, drive.Group[at+1:]...)

	if err := h.Drives.SetGroup(ctx, drive.ID, group, drive.Seats+1); err != nil {
		h.Log.Error("leave drive failed", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.JSON(w, http.StatusOK, group)
}
