package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarelab/combust/internal/application/experiment"
	"github.com/flarelab/combust/internal/domain/catalog"
	"github.com/flarelab/combust/pkg/errors"
	"github.com/flarelab/combust/pkg/types/common"
	"github.com/flarelab/combust/pkg/types/respecth"
)

// fakeService scripts the application layer so handler behavior can be
// asserted without real infrastructure.
type fakeService struct {
	validateResult *experiment.ValidationResult
	importResult   *experiment.ImportResult
	detail         *experiment.RecordDetail
	listResult     *experiment.ListResult
	exportResult   *experiment.ExportResult
	err            error

	gotDocument []byte
	gotID       string
	gotPage     common.Pagination
	gotDraft    *respecth.DraftRecord
}

func (f *fakeService) Validate(_ context.Context, document []byte) (*experiment.ValidationResult, error) {
	f.gotDocument = document
	return f.validateResult, f.err
}

func (f *fakeService) Import(_ context.Context, document []byte) (*experiment.ImportResult, error) {
	f.gotDocument = document
	return f.importResult, f.err
}

func (f *fakeService) Get(_ context.Context, id string) (*experiment.RecordDetail, error) {
	f.gotID = id
	return f.detail, f.err
}

func (f *fakeService) List(_ context.Context, page common.Pagination) (*experiment.ListResult, error) {
	f.gotPage = page
	return f.listResult, f.err
}

func (f *fakeService) Export(_ context.Context, draft *respecth.DraftRecord) (*experiment.ExportResult, error) {
	f.gotDraft = draft
	return f.exportResult, f.err
}

func (f *fakeService) Delete(_ context.Context, id string) error {
	f.gotID = id
	return f.err
}

// newTestRouter wires the handler under test into a minimal gin engine with
// the production route shapes.
func newTestRouter(svc experiment.Service) *gin.Engine {
	h := NewRecordHandler(svc, 0, nil)
	r := gin.New()
	r.POST("/api/v1/records", h.Import)
	r.POST("/api/v1/records/validate", h.Validate)
	r.GET("/api/v1/records", h.List)
	r.GET("/api/v1/records/:id", h.Get)
	r.DELETE("/api/v1/records/:id", h.Delete)
	r.POST("/api/v1/drafts/export", h.Export)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateEndpoint(t *testing.T) {
	svc := &fakeService{validateResult: &experiment.ValidationResult{
		Valid:  false,
		Errors: []string{"missing experimentType element"},
	}}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/records/validate", []byte("<experiment/>"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("<experiment/>"), svc.gotDocument)

	var result experiment.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"missing experimentType element"}, result.Errors)
}

func TestImportEndpoint_NewRecordAnswers201(t *testing.T) {
	svc := &fakeService{importResult: &experiment.ImportResult{
		Entry: &catalog.Entry{ID: "rec-1", ExperimentType: "species profile measurement"},
	}}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/records", []byte("<experiment>...</experiment>"))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "rec-1")
}

func TestImportEndpoint_DuplicateAnswers200(t *testing.T) {
	svc := &fakeService{importResult: &experiment.ImportResult{
		Entry:     &catalog.Entry{ID: "rec-1"},
		Duplicate: true,
	}}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/records", []byte("<experiment/>"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"duplicate":true`)
}

func TestImportEndpoint_StructurallyInvalidAnswers422(t *testing.T) {
	svc := &fakeService{err: errors.New(errors.CodeStructureInvalid, "document failed structural validation").
		WithDetail("missing apparatus element")}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/records", []byte("<experiment/>"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "REC_002")
	assert.Contains(t, w.Body.String(), "missing apparatus element")
}

func TestGetEndpoint(t *testing.T) {
	svc := &fakeService{detail: &experiment.RecordDetail{
		Entry: &catalog.Entry{ID: "rec-9", FileAuthor: "J. Smith"},
	}}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodGet, "/api/v1/records/rec-9", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rec-9", svc.gotID)
	assert.Contains(t, w.Body.String(), "J. Smith")
}

func TestGetEndpoint_UnknownIDAnswers404(t *testing.T) {
	svc := &fakeService{err: errors.New(errors.CodeRecordNotFound, "record not found")}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodGet, "/api/v1/records/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "REC_005")
}

func TestListEndpoint_PassesPagination(t *testing.T) {
	svc := &fakeService{listResult: &experiment.ListResult{
		Entries:  []catalog.Entry{{ID: "rec-1"}, {ID: "rec-2"}},
		Total:    42,
		Page:     2,
		PageSize: 10,
	}}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodGet, "/api/v1/records?page=2&page_size=10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, svc.gotPage.Page)
	assert.Equal(t, 10, svc.gotPage.PageSize)
	assert.Contains(t, w.Body.String(), `"total":42`)
}

func TestDeleteEndpoint(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodDelete, "/api/v1/records/rec-3", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "rec-3", svc.gotID)
	assert.Empty(t, w.Body.String())
}

func TestExportEndpoint_JSONEnvelope(t *testing.T) {
	svc := &fakeService{exportResult: &experiment.ExportResult{
		Document:  []byte("<experiment>\n</experiment>\n"),
		ObjectKey: "exports/abc.xml",
		Warnings:  []string{"mole fraction sum is 0.8000, expected 1.0"},
	}}
	r := newTestRouter(svc)

	draft := respecth.DraftRecord{
		BasicInfo: &respecth.BasicInfo{Author: "J. Smith", ExperimentType: "species profile measurement", Reactor: "jet stirred reactor"},
	}
	body, err := json.Marshal(draft)
	require.NoError(t, err)

	w := doRequest(t, r, http.MethodPost, "/api/v1/drafts/export", body)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.gotDraft)
	assert.Equal(t, "J. Smith", svc.gotDraft.BasicInfo.Author)

	var resp struct {
		Document  string   `json:"document"`
		ObjectKey string   `json:"object_key"`
		Warnings  []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Document, "<experiment>"))
	assert.Equal(t, "exports/abc.xml", resp.ObjectKey)
	assert.Len(t, resp.Warnings, 1)
}

func TestExportEndpoint_XMLFormat(t *testing.T) {
	svc := &fakeService{exportResult: &experiment.ExportResult{
		Document: []byte("<experiment>\n</experiment>\n"),
	}}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/drafts/export?format=xml", []byte("{}"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
	assert.Equal(t, "<experiment>\n</experiment>\n", w.Body.String())
}

func TestExportEndpoint_MalformedBodyAnswers400(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/drafts/export", []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "COMMON_002")
	assert.Nil(t, svc.gotDraft)
}

func TestExportEndpoint_IncompleteDraftAnswers422(t *testing.T) {
	svc := &fakeService{err: errors.New(errors.CodeDraftIncomplete, "draft is incomplete").
		WithDetail("basic info is not filled in; experimental conditions are not filled in")}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/drafts/export", []byte("{}"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "REC_003")
	assert.Contains(t, w.Body.String(), "basic info is not filled in")
}
