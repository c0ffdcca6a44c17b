package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wanderlog/internal/service"
)

// ListGallery 返回当前租户的图库
func (a *API) ListGallery(c *gin.Context) {
	images, err := a.gallery.List(sessionUID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load gallery")
		return
	}
	respondData(c, images)
}

// UploadGalleryImage 接收 multipart 图片并上传到媒体托管服务
func (a *API) UploadGalleryImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read image")
		return
	}

	input := service.GalleryInput{
		Caption:  c.PostForm("caption"),
		Location: c.PostForm("location"),
	}
	contentType := header.Header.Get("Content-Type")

	image, err := a.gallery.Upload(c.Request.Context(), sessionUID(c), header.Filename, contentType, content, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageEmpty), errors.Is(err, service.ErrImageTooLarge):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMediaUpload):
			respondError(c, http.StatusBadGateway, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to store image")
		}
		return
	}
	respondData(c, image)
}

// UpdateImage 更新图片说明与位置
func (a *API) UpdateImage(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var input service.GalleryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid gallery payload")
		return
	}

	image, err := a.gallery.Update(sessionUID(c), id, input)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update image")
		return
	}
	respondData(c, image)
}

// DeleteImage 删除远程媒体与本地记录
func (a *API) DeleteImage(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := a.gallery.Delete(c.Request.Context(), sessionUID(c), id); err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete image")
		return
	}
	respondData(c, gin.H{"deleted": id})
}
