// Package handlers contains the gin HTTP handlers for the FlareLab record
// API: document validation and import, catalog browsing, and draft export.
package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flarelab/combust/pkg/errors"
	"github.com/flarelab/combust/pkg/types/common"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// httpStatus maps an error code to the HTTP status it should produce.
func httpStatus(code errors.ErrorCode) int {
	switch code {
	case errors.CodeInvalidParam, errors.CodeMalformedDocument, errors.CodeSerialization:
		return http.StatusBadRequest
	case errors.CodeStructureInvalid, errors.CodeDraftIncomplete, errors.CodeDraftInconsistent:
		return http.StatusUnprocessableEntity
	case errors.CodeNotFound, errors.CodeRecordNotFound:
		return http.StatusNotFound
	case errors.CodeConflict:
		return http.StatusConflict
	case errors.CodeTimeout:
		return http.StatusGatewayTimeout
	case errors.CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case errors.CodeNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body. Server-side failures are
// masked so infrastructure details never reach the caller; client errors
// keep their message and detail.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	code := errors.GetCode(err)
	status := httpStatus(code)
	if status >= http.StatusInternalServerError {
		c.JSON(status, errorResponse{
			Code:    code.String(),
			Message: "internal server error",
		})
		return
	}

	resp := errorResponse{Code: code.String()}
	var ae *errors.AppError
	if stderrors.As(err, &ae) {
		resp.Message = ae.Message
		resp.Detail = ae.Detail
	} else {
		resp.Message = err.Error()
	}
	c.JSON(status, resp)
}

// parsePagination reads page and page_size query parameters, falling back to
// the platform defaults on absent or unparseable values.
func parsePagination(c *gin.Context) common.Pagination {
	p := common.Pagination{}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil {
		p.PageSize = v
	}
	p.Normalize()
	return p
}
