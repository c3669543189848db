// internal/app/features/drives/routes.go
package drives

import (
	"github.com/go-chi/chi/v5"
	"github.com/slopepool/slopepool/internal/app/system/auth"
)

func Routes(h *Handler, authMgr *auth.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(authMgr.RequireSignedIn)

	r.Get("/", h.ServeActiveDrives)
	r.Post("/", h.HandleCreateDrive)
	r.Get("/dashboard/me", h.ServeMyDrives)

	r.Put("/join/{id}", h.HandleJoinDrive)
	r.Put("/leave/{id}", h.HandleLeaveDrive)

	r.Post("/comment/{id}", h.HandleAddComment)
	r.Delete("/comment/{id}/{commentID}", h.HandleRemoveComment)

	r.Get("/{id}", h.ServeDrive)
	r.Put("/{id}", h.HandleUpdateDrive)
	r.Delete("/{id}", h.HandleDeleteDrive)

	return r
}
