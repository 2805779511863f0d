package handler

import (
	"Agora/internal/api/dto"
	"Agora/internal/pkg/consts"
	"Agora/internal/pkg/response"
	"Agora/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchLogHandler struct {
	searchLogSvc service.SearchLogService
}

func NewSearchLogHandler(searchLogSvc service.SearchLogService) *SearchLogHandler {
	return &SearchLogHandler{
		searchLogSvc: searchLogSvc,
	}
}

func (s *SearchLogHandler) GetHotQueries(c *gin.Context) {
	var req dto.SizeDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.searchLogSvc.GetHotQueries(c.Request.Context(), req.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *SearchLogHandler) GetHistory(c *gin.Context) {
	userID := c.GetUint64(consts.UserIDKey)

	var req dto.SizeDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.searchLogSvc.GetUserHistory(c.Request.Context(), userID, req.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *SearchLogHandler) RemoveHotQuery(c *gin.Context) {
	if err := s.searchLogSvc.RemoveHotQuery(c.Request.Context(), c.Query("query")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
