// internal/app/features/drives/update.go
package drives

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	drivestore "github.com/slopepool/slopepool/internal/app/store/drives"
	"github.com/slopepool/slopepool/internal/app/system/auth"
	"github.com/slopepool/slopepool/internal/app/system/dateval"
	"github.com/slopepool/slopepool/internal/app/system/htmlsanitize"
	"github.com/slopepool/slopepool/internal/app/system/inputval"
	"github.com/slopepool/slopepool/internal/app/system/respond"
	"github.com/slopepool/slopepool/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleUpdateDrive handles PUT /drives/{id}. Owner only. Overwrites
// the trip fields and the owner snapshot; the group roster and the
// comment thread are untouched.
func (h *Handler) HandleUpdateDrive(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUser(r)
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	id, ok := driveID(w, r)
	if !ok {
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
	if *in.Seats < 0 {
		respond.Msg(w, http.StatusBadRequest, "Seats cannot be negative")
		return
	}
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

	// Refresh the owner snapshot alongside the trip fields.
	owner, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.Log.Error("owner lookup failed", zap.Error(err))
		respond.ServerError(w)
		return
	}

	updated, err := h.Drives.UpdateTrip(ctx, id, drivestore.TripFields{
		Name:        owner.Name,
		Avatar:      owner.Avatar,
		LeavingDate: leaving,
		LeavingTime: strings.TrimSpace(in.LeavingTime),
		Resort:      strings.TrimSpace(in.Resort),
		Seats:       *in.Seats,
		Description: description,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Msg(w, http.StatusNotFound, "Drive not found")
			return
		}
		h.Log.Error("update drive failed", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}
