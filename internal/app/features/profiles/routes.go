// internal/app/features/profiles/routes.go
package profiles

import (
	"github.com/go-chi/chi/v5"
	"github.com/slopepool/slopepool/internal/app/system/auth"
)

func Routes(h *Handler, authMgr *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(authMgr.RequireSignedIn)
	r.Get("/me", h.ServeMyProfile)
	r.Post("/", h.HandleUpsertProfile)
	return r
}
