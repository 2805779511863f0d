package es

import (
	"Agora/internal/pkg/search"
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

// MaxResultWindow ES 默认 index.max_result_window
const MaxResultWindow = 10000

type PostRepo interface {
	SearchCandidatePosts(ctx context.Context, filter search.CandidateFilter) ([]*search.Post, error)
	EnsureIndex(ctx context.Context) error
	IndexPost(ctx context.Context, post *PostES, version int64) error
	DeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
	index  string
}

func NewPostRepo(client *elasticsearch.TypedClient, index string) PostRepo {
	return &PostRepoImpl{client: client, index: index}
}

// SearchCandidatePosts 过滤条件下推到 ES，排序与数据库候选源保持一致
func (s *PostRepoImpl) SearchCandidatePosts(ctx context.Context, filter search.CandidateFilter) ([]*search.Post, error) {
	size := filter.Limit
	if size <= 0 || size > MaxResultWindow {
		size = MaxResultWindow
	}

	resp, err := s.client.Search().
		Index(s.index).
		Query(CandidateQuery(filter)).
		Sort(
			types.SortOptions{SortOptions: map[string]types.FieldSort{"created_at": {Order: &sortorder.Desc}}},
			types.SortOptions{SortOptions: map[string]types.FieldSort{"id": {Order: &sortorder.Asc}}},
		).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]*search.Post, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		post, err := decodeHit(hit.Source_)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// decodeHit 将命中文档的 _source 转为搜索视图
func decodeHit(source json.RawMessage) (*search.Post, error) {
	var doc PostES
	if err := json.Unmarshal(source, &doc); err != nil {
		return nil, err
	}
	return doc.toSearchPost()
}

// wildcardEscaper 转义 wildcard 查询的元字符
var wildcardEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`)

// TextQuery 标题或正文的子串匹配，走 wildcard 子字段并忽略大小写
func TextQuery(text string) types.Query {
	pattern := "*" + wildcardEscaper.Replace(text) + "*"
	caseInsensitive := true
	should := make([]types.Query, 0, 2)
	for _, field := range []string{"title.wc", "content.wc"} {
		should = append(should, types.Query{
			Wildcard: map[string]types.WildcardQuery{
				field: {Value: &pattern, CaseInsensitive: &caseInsensitive},
			},
		})
	}
	return types.Query{Bool: &types.BoolQuery{Should: should, MinimumShouldMatch: 1}}
}

// CandidateQuery 状态、社区与文本条件组成的 bool filter
func CandidateQuery(filter search.CandidateFilter) *types.Query {
	filters := []types.Query{{
		Term: map[string]types.TermQuery{
			"status": {Value: filter.Status},
		},
	}}
	if filter.CommunityID != nil {
		filters = append(filters, types.Query{
			Term: map[string]types.TermQuery{
				"community_id": {Value: *filter.CommunityID},
			},
		})
	}

	if filter.Text != "" {
		filters = append(filters, TextQuery(filter.Text))
	}

	boolQuery := &types.BoolQuery{Filter: filters}
	if len(filter.ExcludeCommunityIDs) > 0 {
		excluded := make([]types.FieldValue, 0, len(filter.ExcludeCommunityIDs))
		for _, id := range filter.ExcludeCommunityIDs {
			excluded = append(excluded, id)
		}
		boolQuery.MustNot = []types.Query{{
			Terms: &types.TermsQuery{
				TermsQuery: map[string]types.TermsQueryField{
					"community_id": excluded,
				},
			},
		}}
	}
	return &types.Query{Bool: boolQuery}
}

func (d *PostES) toSearchPost() (*search.Post, error) {
	var post search.Post
	if err := copier.Copy(&post, d); err != nil {
		return nil, err
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return &post, nil
}

// EnsureIndex 索引不存在时按 mapping 创建
func (s *PostRepoImpl) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.index).Do(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = s.client.Indices.Create(s.index).Mappings(postMapping()).Do(ctx)
	return err
}

// IndexPost 以外部版本号写入，旧版本覆盖新版本时的冲突视为成功
func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES, version int64) error {
	docID := strconv.FormatUint(post.ID, 10)

	_, err := s.client.Index(s.index).
		Id(docID).
		Document(post).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(s.index, docID).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}
