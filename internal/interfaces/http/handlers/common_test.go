package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/flarelab/combust/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code errors.ErrorCode
		want int
	}{
		{errors.CodeInvalidParam, http.StatusBadRequest},
		{errors.CodeMalformedDocument, http.StatusBadRequest},
		{errors.CodeSerialization, http.StatusBadRequest},
		{errors.CodeStructureInvalid, http.StatusUnprocessableEntity},
		{errors.CodeDraftIncomplete, http.StatusUnprocessableEntity},
		{errors.CodeDraftInconsistent, http.StatusUnprocessableEntity},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeRecordNotFound, http.StatusNotFound},
		{errors.CodeConflict, http.StatusConflict},
		{errors.CodeTimeout, http.StatusGatewayTimeout},
		{errors.CodeServiceUnavailable, http.StatusServiceUnavailable},
		{errors.CodeNotImplemented, http.StatusNotImplemented},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.CodeDatabase, http.StatusInternalServerError},
		{errors.CodeUnknown, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, httpStatus(tc.code), "code %s", tc.code)
	}
}

func TestRespondError_ClientErrorKeepsDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	err := errors.New(errors.CodeMalformedDocument, "document is not well-formed XML").
		WithDetail("unexpected EOF at line 3")
	respondError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "REC_001")
	assert.Contains(t, w.Body.String(), "not well-formed")
	assert.Contains(t, w.Body.String(), "line 3")
}

func TestRespondError_ServerErrorIsMasked(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	err := errors.New(errors.CodeDatabase, "connection refused to db.internal:5432")
	respondError(c, err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INFRA_001")
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "db.internal")
}

func TestParsePagination(t *testing.T) {
	newCtx := func(query string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/records?"+query, nil)
		return c
	}

	p := parsePagination(newCtx("page=3&page_size=50"))
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PageSize)

	p = parsePagination(newCtx(""))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)

	p = parsePagination(newCtx("page=-1&page_size=9999"))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)

	p = parsePagination(newCtx("page=abc&page_size=xyz"))
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
}
