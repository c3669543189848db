// internal/app/features/login/handler.go
package login

import (
	userstore "github.com/slopepool/slopepool/internal/app/store/users"
	"github.com/slopepool/slopepool/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the dependencies for the auth endpoints: credential
// login and current-user lookup.
type Handler struct {
	Users *userstore.Store
	Auth  *auth.Manager
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, authMgr *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Auth:  authMgr,
		Log:   logger,
	}
}
