package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrNoActiveSession    ErrCode = "NO_ACTIVE_SESSION"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly   ErrCode = "ADMIN_ACCESS_ONLY"
	ErrTeacherAccessOnly ErrCode = "TEACHER_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrDuplicateUsername ErrCode = "DUPLICATE_USERNAME"
	ErrAccountNotFound   ErrCode = "ACCOUNT_NOT_FOUND"
	ErrNotEntryOwner     ErrCode = "NOT_ENTRY_OWNER"
	ErrNotTeacherAccount ErrCode = "NOT_TEACHER_ACCOUNT"

	// ─── Export ────────────────────────────────────────────────────────
	ErrExportEmpty  ErrCode = "EXPORT_EMPTY"
	ErrExportFailed ErrCode = "EXPORT_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Tên đăng nhập hoặc mật khẩu không đúng."
	case ErrSessionInvalidated:
		return "Phiên đăng nhập đã kết thúc do có người đăng nhập khác. Vui lòng đăng nhập lại."
	case ErrNoActiveSession:
		return "Chưa đăng nhập."
	case ErrTokenRequired:
		return "Cần có mã xác thực."
	case ErrTokenInvalid:
		return "Mã xác thực không hợp lệ."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Bạn không có quyền truy cập tài nguyên này."
	case ErrAdminAccessOnly:
		return "Chức năng này chỉ dành cho quản trị viên."
	case ErrTeacherAccessOnly:
		return "Chức năng này chỉ dành cho giáo viên."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Dữ liệu không hợp lệ. Vui lòng kiểm tra lại."
	case ErrInvalidPayload:
		return "Nội dung yêu cầu không hợp lệ."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Không tìm thấy dữ liệu."
	case ErrDuplicateUsername:
		return "Tên đăng nhập đã tồn tại."
	case ErrAccountNotFound:
		return "Không tìm thấy tài khoản."
	case ErrNotEntryOwner:
		return "Bạn chỉ được sửa hoặc xóa sổ đầu bài của chính mình."
	case ErrNotTeacherAccount:
		return "Tài khoản này không phải là giáo viên."

	// ─── Export ────────────────────────────────────────────────────────
	case ErrExportEmpty:
		return "Không có dữ liệu để xuất."
	case ErrExportFailed:
		return "Đã có lỗi xảy ra khi xuất file. Vui lòng thử lại."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Quá nhiều yêu cầu. Vui lòng thử lại sau."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Lỗi máy chủ nội bộ."
	default:
		return "Đã xảy ra lỗi không mong muốn."
	}
}
