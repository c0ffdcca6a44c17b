package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wanderlog/internal/service"
)

// ListAdventures 返回当前租户的冒险列表
func (a *API) ListAdventures(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	adventures, err := a.adventures.List(sessionUID(c), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load adventures")
		return
	}
	respondData(c, adventures)
}

// CreateAdventure 创建新的冒险记录
func (a *API) CreateAdventure(c *gin.Context) {
	var input service.AdventureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid adventure payload")
		return
	}

	adventure, err := a.adventures.Create(sessionUID(c), input, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrAdventureInvalid) || errors.Is(err, service.ErrAdventureDate) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create adventure")
		return
	}
	respondData(c, adventure)
}

// GetAdventure 返回单条冒险记录及渲染后的内容
func (a *API) GetAdventure(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	adventure, err := a.adventures.Get(sessionUID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrAdventureNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load adventure")
		return
	}

	content, err := service.RenderMarkdown(adventure.Content)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to render content")
		return
	}

	respondData(c, gin.H{"adventure": adventure, "content": content})
}

// UpdateAdventure 合并更新冒险记录
func (a *API) UpdateAdventure(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var input service.AdventureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid adventure payload")
		return
	}

	adventure, err := a.adventures.Update(sessionUID(c), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdventureNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAdventureDate):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to update adventure")
		}
		return
	}
	respondData(c, adventure)
}

// DeleteAdventure 删除冒险记录
func (a *API) DeleteAdventure(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := a.adventures.Delete(sessionUID(c), id); err != nil {
		if errors.Is(err, service.ErrAdventureNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete adventure")
		return
	}
	respondData(c, gin.H{"deleted": id})
}
