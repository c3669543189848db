// internal/app/features/drives/comments.go
package drives

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/slopepool/slopepool/internal/app/system/auth"
	"github.com/slopepool/slopepool/internal/app/system/htmlsanitize"
	"github.com/slopepool/slopepool/internal/app/system/inputval"
	"github.com/slopepool/slopepool/internal/app/system/respond"
	"github.com/slopepool/slopepool/internal/app/system/timeouts"
	"github.com/slopepool/slopepool/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleAddComment handles POST /drives/comment/{id}. Prepends the
// caller's comment to the drive's thread and returns the whole thread.
func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUser(r)
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	id, ok := driveID(w, r)
	if !ok {
		return
	}

	var in commentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := inputval.Struct(in); len(errs) > 0 {
		respond.Fields(w, errs)
		return
	}
	text := htmlsanitize.Text(in.Text)
	if text == "" {
		respond.Fields(w, []respond.FieldError{{Msg: "Text is required", Param: "text"}})
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

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Msg(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("commenter lookup failed", zap.Error(err))
		respond.ServerError(w)
		return
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	comments := append([]models.Comment{comment}, drive.Comments...)

	if err := h.Drives.SetComments(ctx, drive.ID, comments); err != nil {
		h.Log.Error("add comment failed", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.JSON(w, http.StatusOK, comments)
}

// HandleRemoveComment handles DELETE /drives/comment/{id}/{commentID}.
// The comment is addressed by its id, and only its author may remove
// it.
func (h *Handler) HandleRemoveComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUser(r)
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}
	id, ok := driveID(w, r)
	if !ok {
		return
	}
	commentID := chi.URLParam(r, "commentID")

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
	for i, c := range drive.Comments {
		if c.ID == commentID {
			at = i
			break
		}
	}
	if at < 0 {
		respond.Msg(w, http.StatusNotFound, "Comment not found")
		return
	}
	if drive.Comments[at].UserID != userID {
		respond.Msg(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	comments := make([]models.Comment, 0, len(drive.Comments)-1)
	comments = append(comments, drive.Comments[:at]...)
	comments = append(comments, drive.Comments[at+1:]...)

	if err := h.Drives.SetComments(ctx, drive.ID, comments); err != nil {
		h.Log.Error("remove comment failed", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.JSON(w, http.StatusOK, comments)
}
