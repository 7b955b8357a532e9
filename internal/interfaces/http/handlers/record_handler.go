package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flarelab/combust/internal/application/experiment"
	"github.com/flarelab/combust/internal/infrastructure/monitoring/logging"
	"github.com/flarelab/combust/pkg/errors"
	"github.com/flarelab/combust/pkg/types/respecth"
)

// defaultMaxBodySize caps uploaded documents when no limit is configured.
const defaultMaxBodySize = 16 << 20

// RecordHandler serves the experiment record API.
type RecordHandler struct {
	svc     experiment.Service
	maxBody int64
	log     logging.Logger
}

// NewRecordHandler constructs a RecordHandler. maxBody bounds uploaded
// document size in bytes; zero selects the default. Logger may be nil.
func NewRecordHandler(svc experiment.Service, maxBody int64, log logging.Logger) *RecordHandler {
	if maxBody <= 0 {
		maxBody = defaultMaxBodySize
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &RecordHandler{svc: svc, maxBody: maxBody, log: log.Named("records")}
}

// readDocument drains the request body under the configured size cap.
func (h *RecordHandler) readDocument(c *gin.Context) ([]byte, error) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "failed to read request body")
	}
	return data, nil
}

// Validate handles POST /api/v1/records/validate. The body is the raw XML
// document; the response reports structural errors without decoding.
func (h *RecordHandler) Validate(c *gin.Context) {
	data, err := h.readDocument(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.svc.Validate(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Import handles POST /api/v1/records. The body is the raw XML document;
// a new record answers 201, a byte-identical duplicate answers 200 with the
// existing catalog entry.
func (h *RecordHandler) Import(c *gin.Context) {
	data, err := h.readDocument(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.svc.Import(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// Get handles GET /api/v1/records/:id.
func (h *RecordHandler) Get(c *gin.Context) {
	id := c.Param("id")
	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// List handles GET /api/v1/records with page / page_size query parameters.
func (h *RecordHandler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete handles DELETE /api/v1/records/:id.
func (h *RecordHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// exportResponse carries the encoded document as a string so the JSON body
// stays human-readable instead of base64.
type exportResponse struct {
	Document  string   `json:"document"`
	ObjectKey string   `json:"object_key"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Export handles POST /api/v1/drafts/export. The body is a JSON draft; an
// incomplete draft answers 422 listing the missing pieces. With format=xml
// the raw document is returned instead of the JSON envelope.
func (h *RecordHandler) Export(c *gin.Context) {
	var draft respecth.DraftRecord
	if err := c.ShouldBindJSON(&draft); err != nil {
		respondError(c, errors.Wrap(err, errors.CodeInvalidParam, "request body is not a valid draft"))
		return
	}
	result, err := h.svc.Export(c.Request.Context(), &draft)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("format") == "xml" {
		c.Data(http.StatusOK, "application/xml", result.Document)
		return
	}
	c.JSON(http.StatusOK, exportResponse{
		Document:  string(result.Document),
		ObjectKey: result.ObjectKey,
		Warnings:  result.Warnings,
	})
}
