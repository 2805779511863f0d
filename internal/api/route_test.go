package api

import (
	"Agora/internal/api/config"
	"Agora/internal/api/handler"
	"Agora/internal/model"
	"Agora/internal/pkg/kafka"
	"Agora/internal/pkg/logger"
	"Agora/internal/pkg/mongo"
	"Agora/internal/pkg/redis"
	"Agora/internal/pkg/search"
	"Agora/internal/pkg/search/searchtest"
	"Agora/internal/pkg/security"
	"Agora/internal/service"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type communities struct{}

func (communities) GetCommunity(_ context.Context, id uint64) (*model.Community, error) {
	name, ok := searchtest.CommunityNames()[id]
	if !ok {
		return nil, nil
	}
	return &model.Community{ID: id, Name: name, IsPrivate: id == searchtest.CommunitySecret}, nil
}

func (communities) IsMember(_ context.Context, communityID, userID uint64) (bool, error) {
	return communityID == searchtest.CommunitySecret && userID == 101, nil
}

func (communities) GetHiddenCommunityIDs(_ context.Context, userID uint64) ([]uint64, error) {
	if userID == 101 {
		return nil, nil
	}
	return []uint64{searchtest.CommunitySecret}, nil
}

func (communities) ResolveCommunityNames(_ context.Context, ids []uint64) (map[uint64]string, error) {
	return searchtest.NewNameResolver().ResolveCommunityNames(context.Background(), ids)
}

type searchLogs struct{}

func (searchLogs) EnsureIndexes(context.Context) error { return nil }

func (searchLogs) CreateSearchLog(context.Context, *mongo.SearchLogModel) error { return nil }

func (searchLogs) GetRecentByUser(_ context.Context, userID uint64, _ int64) ([]*mongo.SearchLogModel, error) {
	return []*mongo.SearchLogModel{{UserID: userID, Query: "react", SortBy: "relevance", ResultCount: 6}}, nil
}

type testServer struct {
	engine *gin.Engine
	tokens    *security.TokenManager
	blacklist *redis.TokenBlacklist
	hot       *redis.HotQueryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.LogWriter = io.Discard

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := communities{}
	executor := search.NewExecutor(searchtest.NewSource(), search.WithFoldTagCase(true))
	searchSvc := service.NewSearchService(executor, search.NewEnricher(repo), repo, kafka.NopRecorder{}, 200)
	hot := redis.NewHotQueryStore(rdb)
	logSvc := service.NewSearchLogService(hot, searchLogs{})

	tokens := security.NewTokenManager("secret", "Agora")
	blacklist := redis.NewTokenBlacklist(rdb)
	engine := SetupRouter(&HandlersGroup{
		SearchHandler:    handler.NewSearchHandler(searchSvc),
		SearchLogHandler: handler.NewSearchLogHandler(logSvc),
	}, &AuthDeps{Tokens: tokens, Blacklist: blacklist}, config.LogstashConfig{})

	return &testServer{engine: engine, tokens: tokens, blacklist: blacklist, hot: hot}
}

func (s *testServer) do(t *testing.T, method, path string, query url.Values, userID uint64, roles ...string) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req := httptest.NewRequest(method, target, nil)
	if userID != 0 {
		token, err := s.tokens.GenerateToken(userID, roles)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeResults(t *testing.T, w *httptest.ResponseRecorder) []*search.Result {
	t.Helper()
	var results []*search.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results), w.Body.String())
	return results
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func resultIDs(results []*search.Result) []uint64 {
	out := make([]uint64, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID)
	}
	return out
}

func TestPing(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/ping", nil, 0)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestSearchPosts_TextQuery(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/search/posts", url.Values{"q": {"javascript"}}, 0)

	require.Equal(t, http.StatusOK, w.Code)
	results := decodeResults(t, w)
	assert.Equal(t, []uint64{15, 3, 2, 1, 14}, resultIDs(results))
	assert.Equal(t, 1.0, results[0].Similarity)
	assert.Equal(t, "General", results[0].CommunityName)
}

func TestSearchPosts_TagGroups(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/search/posts", url.Values{
		"orTags":  {"react,vue"},
		"andTags": {"testing"},
		"notTags": {"deprecated"},
	}, 0)

	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, []uint64{4, 5}, resultIDs(decodeResults(t, w)))
}

func TestSearchPosts_EmptyResultIsArray(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/search/posts", url.Values{"q": {"nothing matches this"}}, 0)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestSearchPosts_PrivateCommunity(t *testing.T) {
	s := newTestServer(t)
	q := url.Values{"communityId": {"4"}}

	w := s.do(t, http.MethodGet, "/api/search/posts", q, 0)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusForbidden, decodeEnvelope(t, w).Code)

	w = s.do(t, http.MethodGet, "/api/search/posts", q, 101)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint64{18}, resultIDs(decodeResults(t, w)))
}

func TestSearchPosts_RevokedTokenIsAnonymous(t *testing.T) {
	s := newTestServer(t)
	token, err := s.tokens.GenerateToken(101, nil)
	require.NoError(t, err)
	claims, err := s.tokens.ValidateToken(token)
	require.NoError(t, err)
	require.NoError(t, s.blacklist.Revoke(context.Background(), claims.ID, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/search/posts?communityId=4", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSearchPosts_InvalidParams(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		query url.Values
		field string
	}{
		{url.Values{"limit": {"0"}}, "limit"},
		{url.Values{"limit": {"101"}}, "limit"},
		{url.Values{"offset": {"-1"}}, "offset"},
		{url.Values{"sortBy": {"popular"}}, "sortBy"},
		{url.Values{"limit": {"ten"}}, "ten"},
		{url.Values{"communityId": {"abc"}}, "abc"},
	}

	for _, tc := range cases {
		w := s.do(t, http.MethodGet, "/api/search/posts", tc.query, 0)

		assert.Equal(t, http.StatusBadRequest, w.Code, tc.query.Encode())
		env := decodeEnvelope(t, w)
		assert.Equal(t, http.StatusBadRequest, env.Code)
		assert.Contains(t, env.Message, tc.field)
	}
}

func TestSearchPosts_Pagination(t *testing.T) {
	s := newTestServer(t)

	first := decodeResults(t, s.do(t, http.MethodGet, "/api/search/posts", url.Values{"sortBy": {"time"}, "limit": {"4"}}, 0))
	second := decodeResults(t, s.do(t, http.MethodGet, "/api/search/posts", url.Values{"sortBy": {"time"}, "limit": {"4"}, "offset": {"4"}}, 0))
	whole := decodeResults(t, s.do(t, http.MethodGet, "/api/search/posts", url.Values{"sortBy": {"time"}, "limit": {"8"}}, 0))

	assert.Equal(t, resultIDs(whole), append(resultIDs(first), resultIDs(second)...))
	assert.Equal(t, []uint64{16, 14, 13, 10}, resultIDs(first))
}

func TestHotQueries(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	for _, q := range []string{"go", "go", "rust"} {
		require.NoError(t, s.hot.Incr(ctx, q))
	}

	w := s.do(t, http.MethodGet, "/api/search/hot", url.Values{"size": {"1"}}, 0)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.JSONEq(t, `[{"query":"go","score":2}]`, string(env.Data))

	w = s.do(t, http.MethodGet, "/api/search/hot", url.Values{"size": {"51"}}, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveHotQuery(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.hot.Incr(context.Background(), "go"))
	q := url.Values{"query": {"Go"}}

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodDelete, "/api/search/hot", q, 0).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/api/search/hot", q, 7, "USER").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/search/hot", q, 1, "ADMIN").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/search/hot", q, 1, "ADMIN").Code)
}

func TestSearchHistory(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/search/history", nil, 0).Code)

	w := s.do(t, http.MethodGet, "/api/search/history", nil, 9)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Contains(t, string(env.Data), `"query":"react"`)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/api/search/posts", url.Values{"q": {"go"}}, 0)

	w := s.do(t, http.MethodGet, "/metrics", nil, 0)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "agora_search_requests_total")
	assert.Contains(t, w.Body.String(), "agora_http_requests_total")
}
