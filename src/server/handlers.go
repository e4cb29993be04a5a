package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cryptoboard/src/export"
	"cryptoboard/src/helpers"
	"cryptoboard/src/models"
	"cryptoboard/src/storage"
	"cryptoboard/src/utils"

	"github.com/gin-gonic/gin"
)

const parquetContentType = "application/vnd.apache.parquet"

// -----------------------------------------------------------------------------
// Page
// -----------------------------------------------------------------------------

func (s *DashboardServer) getPage(c *gin.Context) {
	page, err := s.Dashboard.Render(c.Request.Context())
	if err != nil {
		s.Errors.Handle(err, "page render")
		c.HTML(helpers.HTTPStatus(err), pageTemplateName, pageData{
			Title: s.Config.Dashboard.Title,
			Error: errorMessage(err),
		})
		return
	}

	c.HTML(http.StatusOK, pageTemplateName, pageData{
		Title:       page.Title,
		Attribution: page.Attribution,
		Primary:     &page.Primary,
		Cross:       &page.Cross,
		RenderedAt:  page.RenderedAt.Format(time.RFC1123),
	})
}

// -----------------------------------------------------------------------------
// Render API
// -----------------------------------------------------------------------------

func (s *DashboardServer) getDashboard(c *gin.Context) {
	page, err := s.Dashboard.Render(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err, "dashboard render")
		return
	}
	c.JSON(http.StatusOK, page)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getPrimary(c *gin.Context) {
	panel, ok := s.renderPrimary(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, panel)
}

func (s *DashboardServer) renderPrimary(c *gin.Context) (models.MPrimaryPanel, bool) {
	symbol, granularity, err := s.primaryParams(c)
	if err != nil {
		badRequest(c, err)
		return models.MPrimaryPanel{}, false
	}
	panel, err := s.Dashboard.Primary(c.Request.Context(), symbol, granularity)
	if err != nil {
		s.abortWithError(c, err, "primary render")
		return models.MPrimaryPanel{}, false
	}
	return panel, true
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getCross(c *gin.Context) {
	panel, ok := s.renderCross(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, panel)
}

func (s *DashboardServer) renderCross(c *gin.Context) (models.MCrossPanel, bool) {
	base, quote, granularity, err := s.crossParams(c)
	if err != nil {
		badRequest(c, err)
		return models.MCrossPanel{}, false
	}
	panel, err := s.Dashboard.CrossPair(c.Request.Context(), base, quote, granularity)
	if err != nil {
		s.abortWithError(c, err, "cross render")
		return models.MCrossPanel{}, false
	}
	return panel, true
}

// -----------------------------------------------------------------------------
// Export
// -----------------------------------------------------------------------------

func (s *DashboardServer) exportPrimary(c *gin.Context) {
	panel, ok := s.renderPrimary(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WritePrimary(&buf, panel.Table); err != nil {
		s.abortWithError(c, err, "primary export")
		return
	}
	s.sendParquet(c, export.FileName(panel.Symbol, panel.Granularity), buf.Bytes())
}

func (s *DashboardServer) exportCross(c *gin.Context) {
	panel, ok := s.renderCross(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCross(&buf, panel.Table); err != nil {
		s.abortWithError(c, err, "cross export")
		return
	}
	s.sendParquet(c, export.FileName(panel.Base+"_usd_volume", panel.Granularity), buf.Bytes())
}

func (s *DashboardServer) sendParquet(c *gin.Context, name string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, parquetContentType, data)
}

// -----------------------------------------------------------------------------
// Snapshot archive
// -----------------------------------------------------------------------------

func (s *DashboardServer) listSnapshots(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		badRequest(c, fmt.Errorf("limit must be a positive integer"))
		return
	}

	snaps, err := s.Store.ListSnapshots(limit)
	if err != nil {
		s.abortWithError(c, err, "list snapshots")
		return
	}
	if snaps == nil {
		snaps = []models.MSnapshot{}
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snaps})
}

func (s *DashboardServer) getSnapshot(c *gin.Context) {
	snap, err := s.Store.LoadSnapshot(c.Param("id"))
	if errors.Is(err, storage.ErrSnapshotNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, models.MErrorMessage{Type: "ERROR", Message: err.Error()})
		return
	}
	if err != nil {
		s.abortWithError(c, err, "load snapshot")
		return
	}
	c.JSON(http.StatusOK, snap)
}

// -----------------------------------------------------------------------------
// Status
// -----------------------------------------------------------------------------

func (s *DashboardServer) getConfig(c *gin.Context) {
	d := s.Config.Dashboard
	c.JSON(http.StatusOK, gin.H{
		"title": d.Title,
		"primary": gin.H{
			"symbol":      d.Primary.Symbol,
			"granularity": d.Primary.Granularity,
			"label":       utils.GranularityLabel(d.Primary.Granularity),
		},
		"cross": gin.H{
			"base":        d.Cross.Base,
			"quote":       d.Cross.Quote,
			"granularity": d.Cross.Granularity,
			"label":       utils.GranularityLabel(d.Cross.Granularity),
		},
		"storage": s.Config.Storage.DBType,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getHealth(c *gin.Context) {
	resp := gin.H{
		"status":      "ok",
		"connections": s.connectionCount(),
		"started_at":  s.startedAt,
		"errors":      s.Errors.ErrorCount(),
	}

	if s.Archive != nil {
		runs, lastID, lastErr := s.Archive.Status()
		archive := gin.H{"runs": runs, "last_id": lastID}
		if lastErr != nil {
			archive["last_error"] = lastErr.Error()
		}
		resp["archive"] = archive
	}

	c.JSON(http.StatusOK, resp)
}
