package server

import (
	"net/http"

	"notesbackend/cmd/internal/http/handler"
	"notesbackend/cmd/internal/http/middleware"
	"notesbackend/cmd/internal/utils/validators"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Options struct {
	BodyLimit string
}

// New wires the routes and middlewares on a fresh echo instance.
func New(opts Options, noteService handler.NoteService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.New()

	e.Use(echomw.Recover())
	e.Use(middleware.NewRequestID())
	e.Use(middleware.NewRequestLogger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowCredentials: true,
		// Browsers reject "*" together with credentials, so the request
		// origin is echoed back instead.
		UnsafeWildcardOriginWithAllowCredentials: true,
	}))
	if opts.BodyLimit != "" {
		e.Use(echomw.BodyLimit(opts.BodyLimit))
	}

	noteRoutes := handler.NewNoteDefault(noteService)

	// Notes
	for _, prefix := range []string{"/notes", "/notes/"} {
		e.GET(prefix, noteRoutes.GetNotes)
		e.POST(prefix, noteRoutes.CreateNote)
	}
	e.GET("/notes/:id", noteRoutes.GetNote)
	e.PUT("/notes/:id", noteRoutes.UpdateNote)
	e.DELETE("/notes/:id", noteRoutes.DeleteNote)

	e.GET("/", handler.HealthCheck)
	return e
}
