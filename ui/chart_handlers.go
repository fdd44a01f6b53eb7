package ui

import (
	"net/http"

	"sheetviz/app"
	"sheetviz/domain/core"
	"sheetviz/domain/tabular"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleSaveChart(c *gin.Context) {
	var req app.SaveChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondInvalid(c, "invalid chart request: "+err.Error())
		return
	}
	if req.FileID != "" {
		id, err := core.ParseID(string(req.FileID))
		if err != nil {
			s.respondInvalid(c, err.Error())
			return
		}
		req.FileID = id
	}
	saved, err := s.charts.SaveChart(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// handleListCharts lists saved charts, optionally for one file via ?fileId=
func (s *Server) handleListCharts(c *gin.Context) {
	limit, offset, ok := s.pageParams(c)
	if !ok {
		return
	}
	var fileID core.ID
	if raw := c.Query("fileId"); raw != "" {
		id, err := core.ParseID(raw)
		if err != nil {
			s.respondInvalid(c, err.Error())
			return
		}
		fileID = id
	}

	charts, err := s.charts.ListCharts(c.Request.Context(), fileID, limit, offset)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"charts": charts, "limit": limit, "offset": offset})
}

func (s *Server) handleGetChart(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	saved, err := s.charts.GetChart(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) handleDeleteChart(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	if err := s.charts.DeleteChart(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleChartTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chartTypes": tabular.ChartTypes})
}
