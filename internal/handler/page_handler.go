package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wanderlog/internal/db"
	"github.com/wanderlog/internal/service"
)

type pageUpdateRequest struct {
	Title    string     `json:"title"`
	Sections db.JSONMap `json:"sections"`
}

type publishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// GetEditorPage 返回编辑器所需的页面内容
func (a *API) GetEditorPage(c *gin.Context) {
	page, err := a.website.GetPage(sessionUID(c), c.Param("page"))
	if err != nil {
		if errors.Is(err, service.ErrPageUnknown) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load page")
		return
	}
	respondData(c, page)
}

// UpdateEditorPage 合并标题与分区更新
func (a *API) UpdateEditorPage(c *gin.Context) {
	var req pageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid page payload")
		return
	}

	page, err := a.website.UpdatePage(sessionUID(c), c.Param("page"), req.Title, req.Sections)
	if err != nil {
		if errors.Is(err, service.ErrPageUnknown) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update page")
		return
	}
	respondData(c, page)
}

// TogglePublish 切换页面发布状态
func (a *API) TogglePublish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Published == nil {
		respondError(c, http.StatusBadRequest, "published flag is required")
		return
	}

	page, err := a.website.TogglePublish(sessionUID(c), c.Param("page"), *req.Published)
	if err != nil {
		if errors.Is(err, service.ErrPageUnknown) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update page")
		return
	}
	respondData(c, gin.H{"slug": page.Slug, "published": page.Published})
}
