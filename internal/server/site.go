package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kiriseka/portfolio/internal/contact"
	"github.com/kiriseka/portfolio/internal/content"
	"github.com/kiriseka/portfolio/internal/hero"
	"github.com/kiriseka/portfolio/internal/palette"
	"github.com/kiriseka/portfolio/internal/projects"
	"github.com/kiriseka/portfolio/internal/skills"
)

func (s *Server) setupSiteRoutes(r *gin.Engine) {
	r.GET("/", s.handleIndex)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Command palette
	r.GET("/palette", s.handlePalette)

	// Project drawer and lightbox
	r.GET("/projects/:id", s.handleProject)
	r.GET("/projects/:id/media/:index", s.handleLightbox)

	// Hero typewriter
	r.GET("/api/hero", s.handleHeroSchedule)
	r.GET("/hero/stream", s.handleHeroStream)

	// Skill node map
	r.GET("/api/skills", s.handleSkills)

	r.GET("/api/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.content.Current())
	})

	// Contact form
	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.handleContact)

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": s.cfg.VisitorRetention.String(),
		})
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	doc := s.content.Current()
	// A fresh page load always starts with an idle form.
	s.contact.Sessions().Reset(session(c))

	c.HTML(http.StatusOK, "index.html", gin.H{
		"profile":  doc.Profile,
		"palette":  doc.Palette,
		"projects": doc.Projects,
		"log":      doc.Log,
		"form":     contact.Form{},
		"cursorMS": hero.CursorBlink.Milliseconds(),
	})
}

func (s *Server) handlePalette(c *gin.Context) {
	items := palette.Filter(s.content.Current().Palette, c.Query("q"))
	c.HTML(http.StatusOK, "palette.html", items)
}

func (s *Server) handleProject(c *gin.Context) {
	p, err := projects.Select(s.content.Current(), c.Param("id"))
	if err != nil {
		s.notFound(c, err)
		return
	}
	c.HTML(http.StatusOK, "project-drawer.html", p)
}

func (s *Server) handleLightbox(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		s.notFound(c, content.ErrNotFound)
		return
	}
	lb, err := projects.OpenLightbox(s.content.Current(), c.Param("id"), index)
	if err != nil {
		s.notFound(c, err)
		return
	}
	c.HTML(http.StatusOK, "lightbox.html", lb)
}

func (s *Server) handleHeroSchedule(c *gin.Context) {
	p := s.content.Current().Profile
	frames := s.heroFrames(p)
	c.JSON(http.StatusOK, gin.H{
		"frames":          frames,
		"duration_ms":     hero.Duration(frames).Milliseconds(),
		"cursor_blink_ms": hero.CursorBlink.Milliseconds(),
		"reveal_after":    hero.RevealAfter,
		"identity":        p.Name + " | " + p.Role,
	})
}

// handleHeroStream pushes each typewriter frame as a server-sent event at
// its scheduled time and finishes with a "done" event.
func (s *Server) handleHeroStream(c *gin.Context) {
	frames := s.heroFrames(s.content.Current().Profile)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	err := hero.Play(c.Request.Context(), frames, func(f hero.Frame) error {
		c.SSEvent("frame", f)
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		s.logger.Debug("hero stream ended early", zap.Error(err))
		return
	}
	c.SSEvent("done", "")
	c.Writer.Flush()
}

func (s *Server) handleSkills(c *gin.Context) {
	scene, err := skills.BuildScene(s.content.Current().Skills)
	if err != nil {
		s.logger.Error("build skill scene", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "skill graph unavailable"})
		return
	}
	c.JSON(http.StatusOK, scene)
}

// handleContactForm resets the visitor's form to idle and returns it.
func (s *Server) handleContactForm(c *gin.Context) {
	s.contact.Sessions().Reset(session(c))
	c.HTML(http.StatusOK, "contact.html", gin.H{"form": contact.Form{}})
}

// handleContact answers every outcome with a 200 fragment so htmx swaps
// it into the form slot.
func (s *Server) handleContact(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"form":  form,
			"error": "Malformed transmission.",
		})
		return
	}

	_, err := s.contact.Submit(c.Request.Context(), session(c), form)
	var fieldErrs contact.FieldErrors
	switch {
	case err == nil, errors.Is(err, contact.ErrAlreadySent):
		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"success": "TRANSMISSION RECEIVED.",
		})
	case errors.As(err, &fieldErrs):
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"form":   form.Normalize(),
			"errors": fieldErrs,
		})
	case errors.Is(err, contact.ErrBusy):
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"form":    form,
			"sending": true,
		})
	default:
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"form":  form,
			"error": "Signal lost. Please try again later.",
		})
	}
}

func (s *Server) notFound(c *gin.Context, err error) {
	if !errors.Is(err, content.ErrNotFound) {
		s.logger.Error("lookup", zap.Error(err))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.HTML(http.StatusNotFound, "not-found.html", gin.H{"error": err.Error()})
}
