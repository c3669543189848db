// internal/app/features/drives/list.go
package drives

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/slopepool/slopepool/internal/app/system/auth"
	"github.com/slopepool/slopepool/internal/app/system/dateval"
	"github.com/slopepool/slopepool/internal/app/system/respond"
	"github.com/slopepool/slopepool/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeActiveDrives handles GET /drives: drives leaving today or later
// that still have an open seat, newest departure first.
func (h *Handler) ServeActiveDrives(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	drives, err := h.Drives.ListActive(ctx, dateval.StartOfDay(time.Now()))
	if err != nil {
		h.Log.Error("list active drives failed", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.JSON(w, http.StatusOK, drives)
}

// ServeMyDrives handles GET /drives/dashboard/me: every drive whose
// group contains the caller, owned ones included.
func (h *Handler) ServeMyDrives(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUser(r)
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	drives, err := h.Drives.ListByMember(ctx, userID)
	if err != nil {
		h.Log.Error("list member drives failed", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.JSON(w, http.StatusOK, drives)
}

// ServeDrive handles GET /drives/{id}.
func (h *Handler) ServeDrive(w http.ResponseWriter, r *http.Request) {
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
	respond.JSON(w, http.StatusOK, drive)
}
