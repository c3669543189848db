// internal/app/features/drives/delete.go
package drives

import (
	"context"
	"errors"
	"net/http"

	"github.com/slopepool/slopepool/internal/app/system/auth"
	"github.com/slopepool/slopepool/internal/app/system/respond"
	"github.com/slopepool/slopepool/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDeleteDrive handles DELETE /drives/{id}. Owner only. Removing
// a drive discards its embedded group and comments with it; user and
// profile records are unaffected.
func (h *Handler) HandleDeleteDrive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUser(r)
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	id, ok := driveID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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
	if drive.UserID != userID {
		respond.Msg(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	n, err := h.Drives.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete drive failed", zap.Error(err))
		respond.ServerError(w)
		return
	}
	if n == 0 {
		respond.Msg(w, http.StatusNotFound, "Drive not found")
		return
	}
	respond.Msg(w, http.StatusOK, "Drive removed")
}
