package handler

import (
	"Agora/internal/api/dto"
	"Agora/internal/pkg/consts"
	"Agora/internal/pkg/response"
	"Agora/internal/pkg/search"
	"Agora/internal/pkg/util"
	"Agora/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchSvc service.SearchService
}

func NewSearchHandler(searchSvc service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchSvc: searchSvc,
	}
}

// SearchPosts 成功时直接返回结果数组，失败时返回统一错误结构
func (s *SearchHandler) SearchPosts(c *gin.Context) {
	var req dto.SearchPostsDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	results, err := s.searchSvc.SearchPosts(c.Request.Context(), &service.SearchQuery{
		Query:       req.Query,
		TagFilters:  tagFilters(&req),
		CommunityID: req.CommunityID,
		UserID:      c.GetUint64(consts.UserIDKey),
		Limit:       req.Limit,
		Offset:      req.Offset,
		SortBy:      search.SortBy(req.SortBy),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// tagFilters 按 OR、AND、NOT 的顺序组装，空参数不生成过滤组
func tagFilters(req *dto.SearchPostsDTO) []search.TagFilter {
	var filters []search.TagFilter
	add := func(raw string, op search.Operator) {
		if tags := util.SplitTags(raw); len(tags) > 0 {
			filters = append(filters, search.TagFilter{Tags: tags, Operator: op})
		}
	}
	add(req.OrTags, search.OperatorOr)
	add(req.AndTags, search.OperatorAnd)
	add(req.NotTags, search.OperatorNot)
	return filters
}
