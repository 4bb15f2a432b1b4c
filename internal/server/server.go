package server

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/gridreport/pkg/gridreport"
)

// Server exposes the export pipeline over HTTP.
type Server struct {
	Echo     *echo.Echo
	defaults gridreport.Defaults
}

// New builds a server with the given export defaults threaded through every
// request.
func New(defaults gridreport.Defaults) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{Echo: e, defaults: defaults}

	h := NewExportHandler(defaults)
	e.GET("/healthz", h.HealthHandler)
	e.POST("/api/v1/export", h.ExportHandler)

	return s
}

// Start blocks serving HTTP on the given port.
func (s *Server) Start(port int) error {
	return s.Echo.Start(fmt.Sprintf(":%d", port))
}
