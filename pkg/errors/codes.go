package errors

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every layer.
const (
	CodeOK      ErrorCode = "OK"
	CodeUnknown ErrorCode = "UNKNOWN"

	CodeInternal           ErrorCode = "COMMON_001"
	CodeInvalidParam       ErrorCode = "COMMON_002"
	CodeNotFound           ErrorCode = "COMMON_003"
	CodeConflict           ErrorCode = "COMMON_004"
	CodeServiceUnavailable ErrorCode = "COMMON_005"
	CodeTimeout            ErrorCode = "COMMON_006"
	CodeSerialization      ErrorCode = "COMMON_007"
	CodeNotImplemented     ErrorCode = "COMMON_008"
)

// Record codec error codes.
const (
	// CodeMalformedDocument marks input that is not well-formed XML. It is the
	// only hard failure the decoder produces; everything else degrades to
	// defaults or soft warnings.
	CodeMalformedDocument ErrorCode = "REC_001"

	// CodeStructureInvalid marks a well-formed document missing required
	// top-level elements or data groups. The validator reports these as an
	// enumerable message list; this code is used when a caller insists on
	// decoding anyway and the service layer refuses.
	CodeStructureInvalid ErrorCode = "REC_002"

	// CodeDraftIncomplete marks an interactively built draft that fails the
	// completeness gate (missing basic info, conditions, or data groups).
	CodeDraftIncomplete ErrorCode = "REC_003"

	// CodeDraftInconsistent marks a draft whose internal structure cannot be
	// encoded, such as a data group that declares no columns at all.
	CodeDraftInconsistent ErrorCode = "REC_004"

	CodeRecordNotFound ErrorCode = "REC_005"
)

// Infrastructure error codes.
const (
	CodeDatabase  ErrorCode = "INFRA_001"
	CodeCache     ErrorCode = "INFRA_002"
	CodeStorage   ErrorCode = "INFRA_003"
	CodeMigration ErrorCode = "INFRA_004"
)
