package handler

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/wanderlog/internal/service"
)

// Dashboard 返回后台首页所需的全部数据
func (a *API) Dashboard(c *gin.Context) {
	uid := sessionUID(c)

	report, err := a.reports.GetAnalyticsData(uid, service.Period30Days, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load analytics")
		return
	}

	settings, err := a.website.GetSettings(uid)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load settings")
		return
	}

	pageStatus := make(map[string]bool, len(service.KnownPages))
	for _, slug := range service.KnownPages {
		page, pageErr := a.website.GetPage(uid, slug)
		if pageErr != nil {
			respondError(c, http.StatusInternalServerError, "failed to load pages")
			return
		}
		pageStatus[slug] = page.Published
	}

	adventures, err := a.adventures.List(uid, 5)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load adventures")
		return
	}

	respondData(c, gin.H{
		"analytics":  report,
		"settings":   settings,
		"palettes":   service.ColorPalettes(),
		"pages":      pageStatus,
		"adventures": adventures,
	})
}

// GetAnalytics 按时间范围返回统计报告；未识别的区间由服务层回退到 7 天
func (a *API) GetAnalytics(c *gin.Context) {
	period := c.DefaultQuery("period", service.Period7Days)

	report, err := a.reports.GetAnalyticsData(sessionUID(c), period, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load analytics")
		return
	}

	respondData(c, report)
}

// ExportAnalytics 导出 CSV 报表
func (a *API) ExportAnalytics(c *gin.Context) {
	uid := sessionUID(c)
	period := c.DefaultQuery("period", service.Period30Days)

	now := time.Now()
	report, err := a.reports.GetAnalyticsData(uid, period, now)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load analytics")
		return
	}

	var buf bytes.Buffer
	if err := service.WriteCSV(&buf, report); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to build export")
		return
	}

	filename := service.ExportFilename(uid, now)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// UpdateSettings 更新站点外观配置
func (a *API) UpdateSettings(c *gin.Context) {
	var input service.SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid settings payload")
		return
	}

	settings, err := a.website.UpdateSettings(sessionUID(c), input)
	if err != nil {
		if err == service.ErrSettingMissing {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update settings")
		return
	}

	respondData(c, settings)
}

type profileRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateProfile 更新租户显示名称
func (a *API) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}

	user, err := a.users.UpdateProfile(sessionUID(c), req.Name)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	respondData(c, gin.H{"uid": user.UID, "name": user.Name, "email": user.Email})
}

// UploadPageImage 上传页面或冒险用图到媒体托管服务，只返回 URL，
// 不落图库记录。
func (a *API) UploadPageImage(c *gin.Context) {
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

	asset, err := a.media.Upload(c.Request.Context(), header.Filename, content)
	if err != nil {
		respondError(c, http.StatusBadGateway, "media upload failed")
		return
	}

	respondData(c, gin.H{"url": asset.URL, "media_id": asset.ID})
}

// SiteQRCode 生成指向租户公开站点的二维码 PNG
func (a *API) SiteQRCode(c *gin.Context) {
	uid := sessionUID(c)
	siteURL := a.cfg.SiteBaseURL + "/?user=" + uid

	png, err := qrcode.Encode(siteURL, qrcode.Medium, 256)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to generate qr code")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
