package api

import (
	"fmt"
	"net/http"

	_ "github.com/jcheng-dev/sportlog/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rs/cors"

	"github.com/jcheng-dev/sportlog/internal/api/handlers"
	"github.com/jcheng-dev/sportlog/internal/api/middleware"
	"github.com/jcheng-dev/sportlog/internal/config"
	"github.com/jcheng-dev/sportlog/internal/utils"
)

func SetupRouter() http.Handler {
	mux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mux.HandleFunc("GET /api/health", handlers.Health)
	mux.HandleFunc("POST /api/register", handlers.RegisterUser)
	mux.HandleFunc("GET /api/check-username", handlers.CheckUsername)
	mux.HandleFunc("POST /api/login", handlers.LoginUser)

	mux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	// ---------- PROTECTED ROUTES ----------
	// Session resolution runs before any of these handlers; an unknown or
	// missing bearer token never reaches them.
	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	mux.Handle("GET /api/activities", protected(handlers.ListActivities))
	mux.Handle("GET /api/activities/public", protected(handlers.ListPublicActivities))
	mux.Handle("POST /api/activities", protected(handlers.CreateActivity))
	mux.Handle("PUT /api/activities/{id}", protected(handlers.UpdateActivity))
	mux.Handle("DELETE /api/activities/{id}", protected(handlers.DeleteActivity))

	mux.Handle("POST /api/activities/{id}/like", protected(handlers.LikeActivity))
	mux.Handle("DELETE /api/activities/{id}/like", protected(handlers.UnlikeActivity))
	mux.Handle("GET /api/activities/{id}/likes", protected(handlers.GetLikes))
	mux.Handle("POST /api/activities/{id}/comments", protected(handlers.AddComment))
	mux.Handle("GET /api/activities/{id}/comments", protected(handlers.ListComments))
	mux.Handle("DELETE /api/comments/{id}", protected(handlers.DeleteComment))

	mux.Handle("PUT /api/user/password", protected(handlers.ChangePassword))
	mux.Handle("DELETE /api/user", protected(handlers.DeleteAccount))

	mux.Handle("GET /api/weather", protected(handlers.GetWeather))

	// Anything else is an unknown route, answered in the API's own shape.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		utils.JSONError(w, http.StatusNotFound, fmt.Sprintf("Route not found: %s", r.URL.Path))
	})

	handler := c.Handler(mux)
	handler = middleware.Logger(handler)
	handler = middleware.Recover(handler)
	return handler
}
