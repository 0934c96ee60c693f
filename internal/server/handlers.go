package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"garland/internal/logging"
	"garland/internal/store"
)

func (s *Server) handleCeremonies(c *gin.Context) {
	ceremonies, err := s.store.Ceremonies(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ceremonies)
}

func (s *Server) handleCeremony(c *gin.Context) {
	iteration, err := strconv.Atoi(c.Param("iteration"))
	if err != nil || iteration < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "iteration must be a positive integer"})
		return
	}

	ctx := c.Request.Context()
	ceremony, err := s.store.Ceremony(ctx, iteration)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "ceremony not found"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	nominations, err := s.store.Nominations(ctx, store.NominationFilter{
		StartEdition: iteration,
		EndEdition:   iteration,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ceremony": ceremony, "nominations": nominations})
}

func (s *Server) handleCategories(c *gin.Context) {
	groups, err := s.store.CategoryHierarchy(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (s *Server) handleNominations(c *gin.Context) {
	filter := store.NominationFilter{
		StartEdition: 1,
		EndEdition:   s.cfg.Award.CurrentEdition,
	}

	if v := c.Query("start_edition"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_edition must be a positive integer"})
			return
		}
		filter.StartEdition = n
	}
	if v := c.Query("end_edition"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_edition must be a positive integer"})
			return
		}
		filter.EndEdition = n
	}
	if v := c.Query("winners_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "winners_only must be a boolean"})
			return
		}
		filter.WinnersOnly = b
	}
	if v := c.Query("pending"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pending must be a boolean"})
			return
		}
		filter.PendingOnly = b
	}
	if v := c.Query("categories"); v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				filter.Categories = append(filter.Categories, name)
			}
		}
	}

	nominations, err := s.store.Nominations(c.Request.Context(), filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"start_edition": filter.StartEdition,
		"end_edition":   filter.EndEdition,
		"nominations":   nominations,
	})
}

func (s *Server) handleTitle(c *gin.Context) {
	profile, err := s.store.TitleByExternalID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) handleEntity(c *gin.Context) {
	profile, err := s.store.EntityByExternalID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) handleSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	results, err := s.store.Search(c.Request.Context(), query, limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("request failed",
		logging.String("method", c.Request.Method),
		logging.String("path", c.Request.URL.Path),
		logging.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
