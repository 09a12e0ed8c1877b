package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidVersion       ErrorCode = 110

	// Protocol errors (200-299)
	ErrCodeMalformedLine       ErrorCode = 200
	ErrCodeUnknownCommand      ErrorCode = 201
	ErrCodeInvalidNumber       ErrorCode = 202
	ErrCodeCandleFormatMissing ErrorCode = 203
	ErrCodeUnknownCandleField  ErrorCode = 204
	ErrCodeShortCandleRecord   ErrorCode = 205
	ErrCodeOutOfOrderCandle    ErrorCode = 206
	ErrCodeNegativeBalance     ErrorCode = 207
	ErrCodeMalformedStack      ErrorCode = 208
	ErrCodeEmitFailed          ErrorCode = 209
	ErrCodeInputFailed         ErrorCode = 210

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError ErrorCode = 401
	ErrCodeUnsupportedStrategy ErrorCode = 403
	ErrCodeVersionMismatch     ErrorCode = 404
	ErrCodeChartNotFound       ErrorCode = 405

	// Journal errors (500-599)
	ErrCodeJournalInitFailed   ErrorCode = 500
	ErrCodeJournalWriteFailed  ErrorCode = 501
	ErrCodeJournalExportFailed ErrorCode = 502

	// Replay errors (600-699)
	ErrCodeReplayDataPathError ErrorCode = 600
	ErrCodeReplayQueryFailed   ErrorCode = 601
	ErrCodeReplayNoData        ErrorCode = 602
	ErrCodeFillRejected        ErrorCode = 603
)
