package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wanderlog/internal/service"
)

const (
	sessionCookieName   = "wl_session_id"
	sessionCookieMaxAge = 365 * 24 * 60 * 60
)

// ShowPage serves one of a tenant's public pages as a JSON view model.
// 访客可通过 ?user= 指定站点，否则回落到会话用户 / 演示站点 / 最早注册用户。
func (a *API) ShowPage(c *gin.Context) {
	slug := c.Param("page")
	if slug == "" {
		slug = "home"
	}
	if !service.IsKnownPage(slug) {
		respondError(c, http.StatusNotFound, "page not found")
		return
	}

	ownerUID, err := a.resolveOwner(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "no website available")
		return
	}

	page, err := a.website.GetPage(ownerUID, slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load page")
		return
	}

	// 未发布页面仅站点所有者可见
	isOwner := sessionUID(c) == ownerUID
	if !page.Published && !isOwner {
		respondError(c, http.StatusNotFound, "page not found")
		return
	}

	settings, err := a.website.GetSettings(ownerUID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}

	view := gin.H{
		"owner":    ownerUID,
		"slug":     slug,
		"title":    page.Title,
		"sections": page.Sections,
		"settings": gin.H{
			"siteName":       settings.SiteName,
			"tagline":        settings.Tagline,
			"colorPalette":   settings.ColorPalette,
			"primaryColor":   settings.PrimaryColor,
			"secondaryColor": settings.SecondaryColor,
			"accentColor":    settings.AccentColor,
		},
	}

	switch slug {
	case "home":
		if adventures, advErr := a.adventures.ListPublished(ownerUID, 4); advErr == nil {
			view["adventures"] = adventures
		}
	case "gallery":
		if images, imgErr := a.gallery.List(ownerUID); imgErr == nil {
			view["images"] = images
		}
	}

	// 仅统计已发布页面的访问，失败不影响响应
	if page.Published {
		meta := service.VisitMeta{
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			SessionID: a.ensureSessionID(c),
		}
		go func() {
			if err := a.analytics.RecordVisit(ownerUID, slug, meta, time.Now()); err != nil {
				log.Printf("记录访问失败 owner=%s page=%s: %v", ownerUID, slug, err)
			}
		}()
	}

	respondData(c, view)
}

// ShowAdventure serves a single published adventure with rendered content.
func (a *API) ShowAdventure(c *gin.Context) {
	ownerUID, err := a.resolveOwner(c)
	if err != nil {
		respondError(c, http.StatusNotFound, "no website available")
		return
	}

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	adventure, err := a.adventures.Get(ownerUID, id)
	if err != nil || (!adventure.Published && sessionUID(c) != ownerUID) {
		respondError(c, http.StatusNotFound, "adventure not found")
		return
	}

	content, err := service.RenderMarkdown(adventure.Content)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to render content")
		return
	}

	// 所有者预览未发布内容时不计入统计
	if adventure.Published {
		meta := service.VisitMeta{
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			SessionID: a.ensureSessionID(c),
		}
		go func() {
			if err := a.analytics.RecordVisit(ownerUID, "adventures", meta, time.Now()); err != nil {
				log.Printf("记录访问失败 owner=%s page=adventures: %v", ownerUID, err)
			}
		}()
	}

	respondData(c, gin.H{
		"adventure": adventure,
		"content":   content,
	})
}

// resolveOwner decides whose website a public request is viewing.
func (a *API) resolveOwner(c *gin.Context) (string, error) {
	if uid := strings.TrimSpace(c.Query("user")); uid != "" {
		if _, err := a.users.GetByUID(uid); err == nil {
			return uid, nil
		}
	}

	if uid := sessionUID(c); uid != "" {
		return uid, nil
	}

	if uid := strings.TrimSpace(a.cfg.DemoWebsiteUID); uid != "" {
		if _, err := a.users.GetByUID(uid); err == nil {
			return uid, nil
		}
	}

	return a.users.FirstUserUID()
}

func (a *API) ensureSessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookieName); err == nil && strings.TrimSpace(id) != "" {
		return id
	}

	sessionID := uuid.NewString()
	secure := c.Request.TLS != nil

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   sessionCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	return sessionID
}
