package ui

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"sheetviz/app"
	"sheetviz/domain/core"
	"sheetviz/internal/series"

	"github.com/gin-gonic/gin"
)

// handleUpload accepts a multipart upload in the "file" field and returns the analysis
func (s *Server) handleUpload(c *gin.Context) {
	if c.Request.ContentLength > s.maxUploadBytes+multipartOverhead {
		s.respondError(c, fmt.Errorf("%w: request of %d bytes", core.ErrFileTooLarge, c.Request.ContentLength))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.respondError(c, fmt.Errorf("%w: request exceeds %d bytes", core.ErrFileTooLarge, maxErr.Limit))
			return
		}
		s.respondInvalid(c, "multipart field \"file\" is required")
		return
	}
	if header.Size > s.maxUploadBytes {
		s.respondError(c, fmt.Errorf("%w: %d bytes exceeds limit of %d", core.ErrFileTooLarge, header.Size, s.maxUploadBytes))
		return
	}

	f, err := header.Open()
	if err != nil {
		s.respondInvalid(c, "uploaded file could not be read")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, s.maxUploadBytes+1))
	if err != nil {
		s.respondInvalid(c, "uploaded file could not be read")
		return
	}

	result, err := s.files.Upload(c.Request.Context(), app.UploadRequest{
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *Server) handleListFiles(c *gin.Context) {
	limit, offset, ok := s.pageParams(c)
	if !ok {
		return
	}
	files, err := s.files.ListFiles(c.Request.Context(), limit, offset)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files, "limit": limit, "offset": offset})
}

func (s *Server) handleGetFile(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	file, err := s.files.GetFile(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

func (s *Server) handleDeleteFile(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	if err := s.files.DeleteFile(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleBuildSeries rebuilds series for an explicit axis selection
func (s *Server) handleBuildSeries(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	var req series.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondInvalid(c, "invalid series request: "+err.Error())
		return
	}
	data, err := s.charts.BuildSeries(c.Request.Context(), id, req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) pathID(c *gin.Context) (core.ID, bool) {
	id, err := core.ParseID(c.Param("id"))
	if err != nil {
		s.respondInvalid(c, err.Error())
		return "", false
	}
	return id, true
}

// pageParams reads limit and offset; zero values are left for the service to default
func (s *Server) pageParams(c *gin.Context) (int, int, bool) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		s.respondInvalid(c, "limit must be an integer")
		return 0, 0, false
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		s.respondInvalid(c, "offset must be an integer")
		return 0, 0, false
	}
	return limit, offset, true
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
