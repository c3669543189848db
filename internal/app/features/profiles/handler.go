// internal/app/features/profiles/handler.go
package profiles

import (
	profilestore "github.com/slopepool/slopepool/internal/app/store/profiles"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the dependencies for rider profile endpoints.
type Handler struct {
	Profiles *profilestore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Profiles: profilestore.New(db),
		Log:      logger,
	}
}
