// internal/app/features/login/routes.go
package login

import (
	"github.com/go-chi/chi/v5"
	"github.com/slopepool/slopepool/internal/app/system/auth"
)

func Routes(h *Handler, authMgr *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogin)
	r.Group(func(r chi.Router) {
		r.Use(authMgr.RequireSignedIn)
		r.Get("/", h.ServeCurrentUser)
	})
	return r
}
