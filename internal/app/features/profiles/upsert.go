// internal/app/features/profiles/upsert.go
package profiles

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/slopepool/slopepool/internal/app/system/auth"
	"github.com/slopepool/slopepool/internal/app/system/inputval"
	"github.com/slopepool/slopepool/internal/app/system/respond"
	"github.com/slopepool/slopepool/internal/app/system/timeouts"
	"github.com/slopepool/slopepool/internal/domain/models"
	"go.uber.org/zap"
)

type profileInput struct {
	Grade      string   `json:"grade" validate:"required"`
	Type       string   `json:"type" validate:"required"`
	Experience string   `json:"experience"`
	Skills     []string `json:"skills"`
}

// HandleUpsertProfile handles POST /profiles. Creates the caller's
// profile or replaces it wholesale if one exists.
func (h *Handler) HandleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.CurrentUser(r)
	if !ok {
		respond.Msg(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var in profileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := inputval.Struct(in); len(errs) > 0 {
		respond.Fields(w, errs)
		return
	}

	skills := make([]string, 0, len(in.Skills))
	for _, s := range in.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	profile, err := h.Profiles.Upsert(ctx, models.Profile{
		UserID:     userID,
		Grade:      strings.TrimSpace(in.Grade),
		Type:       strings.TrimSpace(in.Type),
		Experience: strings.TrimSpace(in.Experience),
		Skills:     skills,
	})
	if err != nil {
		h.Log.Error("profile upsert failed", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}
