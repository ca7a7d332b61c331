// Package server wires the portfolio's gin routes: the page itself, the
// HTMX fragments behind its interactive sections, the JSON feeds for the
// client-side animations, and the admin dashboard.
package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kiriseka/portfolio/internal/config"
	"github.com/kiriseka/portfolio/internal/contact"
	"github.com/kiriseka/portfolio/internal/content"
	"github.com/kiriseka/portfolio/internal/hero"
	"github.com/kiriseka/portfolio/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Deps are the collaborators a Server needs.
type Deps struct {
	Config  config.Config
	Content *content.Store
	Store   *store.Store
	Contact *contact.Service
	Logger  *zap.Logger

	// HeroFrames builds the typewriter schedule. Defaults to
	// hero.Sequence over the profile's two lines.
	HeroFrames func(content.Profile) []hero.Frame
}

type Server struct {
	cfg        config.Config
	content    *content.Store
	store      *store.Store
	contact    *contact.Service
	logger     *zap.Logger
	heroFrames func(content.Profile) []hero.Frame

	adminToken string
	engine     *gin.Engine

	// tracking counts in-flight visitor inserts.
	tracking sync.WaitGroup
}

func New(d Deps) (*Server, error) {
	token, err := store.Token()
	if err != nil {
		return nil, fmt.Errorf("admin token: %w", err)
	}

	s := &Server{
		cfg:        d.Config,
		content:    d.Content,
		store:      d.Store,
		contact:    d.Contact,
		logger:     d.Logger,
		heroFrames: d.HeroFrames,
		adminToken: token,
	}
	if s.heroFrames == nil {
		s.heroFrames = func(p content.Profile) []hero.Frame {
			return hero.Sequence(p.BootLine, p.IdentityLine(), p.Name)
		}
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), requestLogger(s.logger), s.visitorTracking())
	r.StaticFS("/static", http.FS(static))

	s.setupSiteRoutes(r)
	s.setupAdminRoutes(r)

	if gin.Mode() == gin.DebugMode {
		s.logger.Debug("admin token (dev only)", zap.String("token", token))
	}
	if s.cfg.UsingDefaultAdmin() {
		s.logger.Warn("using default admin credentials; set ADMIN_USERNAME and ADMIN_PASSWORD")
	}

	s.engine = r
	return s, nil
}

// Handler returns the routed engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Wait blocks until background visitor inserts have finished.
func (s *Server) Wait() {
	s.tracking.Wait()
}

var templateFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"inc":   func(i int) int { return i + 1 },
	"year":  func() int { return time.Now().Year() },
}
