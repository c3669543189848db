// internal/app/features/drives/handler.go
package drives

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	drivestore "github.com/slopepool/slopepool/internal/app/store/drives"
	profilestore "github.com/slopepool/slopepool/internal/app/store/profiles"
	userstore "github.com/slopepool/slopepool/internal/app/store/users"
	"github.com/slopepool/slopepool/internal/app/system/respond"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the drives feature:
// trip lifecycle, group membership, and the comment thread.
type Handler struct {
	Drives   *drivestore.Store
	Users    *userstore.Store
	Profiles *profilestore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Drives:   drivestore.New(db),
		Users:    userstore.New(db),
		Profiles: profilestore.New(db),
		Log:      logger,
	}
}

// driveID resolves the {id} URL parameter. A malformed id is reported
// exactly like a well-formed id with no record: 404 Drive not found.
func driveID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Msg(w, http.StatusNotFound, "Drive not found")
		return primitive.NilObjectID, false
	}
	return id, true
}
