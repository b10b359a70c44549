// Package frontend serves the embedded capture/submit page.
package frontend

import (
	"embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed static
var staticFS embed.FS

const MainPageName = "index.html"

type FrontendService struct{}

func NewFrontendService() *FrontendService {
	return &FrontendService{}
}

func (s *FrontendService) SetRoutes(e *echo.Echo) {
	e.GET("/", s.rootRedirectHandler)
	e.StaticFS("/", echo.MustSubFS(staticFS, "static"))
}

// rootRedirectHandler redirects root path to index.html
func (s *FrontendService) rootRedirectHandler(ctx echo.Context) error {
	return ctx.Redirect(http.StatusMovedPermanently, "/"+MainPageName)
}
