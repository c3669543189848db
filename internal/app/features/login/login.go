// internal/app/features/login/login.go
package login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/slopepool/slopepool/internal/app/system/inputval"
	"github.com/slopepool/slopepool/internal/app/system/respond"
	"github.com/slopepool/slopepool/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// invalidCredentials is the single response for both unknown email and
// wrong password, so the endpoint does not leak which one failed.
func invalidCredentials(w http.ResponseWriter) {
	respond.Fields(w, []respond.FieldError{{Msg: "Invalid credentials"}})
}

// HandleLogin handles POST /auth. Exchanges email+password for a
// bearer token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Msg(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := inputval.Struct(in); len(errs) > 0 {
		respond.Fields(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			invalidCredentials(w)
			return
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		respond.ServerError(w)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		invalidCredentials(w)
		return
	}

	token, err := h.Auth.IssueToken(user.ID)
	if err != nil {
		h.Log.Error("issue token failed", zap.Error(err))
		respond.ServerError(w)
		return
	}
	respond.JSON(w, http.StatusOK, tokenResponse{Token: token})
}
