package response

import (
	"Agora/internal/pkg/search"
	"Agora/internal/service"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func run(t *testing.T, fn func(c *gin.Context)) (int, body) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	fn(c)

	var b body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return w.Code, b
}

func TestSuccess(t *testing.T) {
	status, b := run(t, func(c *gin.Context) { Success(c, []int{1, 2}) })

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, Ok, b.Code)
	assert.Equal(t, []interface{}{1.0, 2.0}, b.Data)
}

func TestError(t *testing.T) {
	_, parseErr := strconv.Atoi("abc")

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", &service.ValidationError{Field: "limit", Msg: "limit 必须在 1 到 100 之间"}, 400, "limit: limit 必须在 1 到 100 之间"},
		{"number", parseErr, 400, `参数错误: "abc" 不是合法的数字`},
		{"wrapped number", fmt.Errorf("bind limit: %w", parseErr), 400, `参数错误: "abc" 不是合法的数字`},
		{"forbidden", service.ErrCommunityForbidden, 403, service.ErrCommunityForbidden.Error()},
		{"wrapped forbidden", fmt.Errorf("community 4: %w", service.ErrCommunityForbidden), 403, service.ErrCommunityForbidden.Error()},
		{"login", service.ErrLoginRequired, 401, service.ErrLoginRequired.Error()},
		{"data access", &search.DataAccessError{Op: "fetch", Err: errors.New("timeout")}, 500, service.UnExpectedError.Error()},
		{"unknown", errors.New("boom"), 500, service.UnExpectedError.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, b := run(t, func(c *gin.Context) { Error(c, tc.err) })

			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.status, b.Code)
			assert.Equal(t, tc.message, b.Message)
			assert.Nil(t, b.Data)
		})
	}
}
