package api

import (
	"errors"
	"net/http"

	"github.com/livefit/livefit-api/internal/api/shared"
	"github.com/livefit/livefit-api/internal/domain"
	"github.com/livefit/livefit-api/internal/service"
	"github.com/livefit/livefit-api/internal/service/auth"
	"github.com/livefit/livefit-api/internal/service/booking"
	"github.com/livefit/livefit-api/internal/store"
)

// User-facing messages.
const (
	MsgInvalidFields        = "欄位未填寫正確"
	MsgInvalidPassword      = "密碼不符合規則，需要包含英文數字大小寫，最短8個字，最長16個字"
	MsgInvalidID            = "ID錯誤"
	MsgEmailTaken           = "Email已被使用"
	MsgDuplicate            = "資料重複"
	MsgInUse                = "資料使用中"
	MsgBadCredentials       = "使用者不存在或密碼輸入錯誤"
	MsgUserNotFound         = "使用者不存在"
	MsgNameUnchanged        = "使用者名稱未變更"
	MsgUserUpdateFailed     = "更新使用者失敗"
	MsgPasswordUnchanged    = "新密碼不能與舊密碼相同"
	MsgPasswordMismatch     = "新密碼與驗證新密碼不一致"
	MsgWrongPassword        = "密碼輸入錯誤"
	MsgPasswordUpdateFailed = "更新密碼失敗"
	MsgNoRecords            = "找不到購買紀錄"
	MsgAlreadyCoach         = "使用者已經是教練"
	MsgNotCoach             = "使用者尚未成為教練"
	MsgCoachNotFound        = "找不到該教練"
	MsgCourseNotFound       = "課程不存在"
	MsgAlreadyBooked        = "已經報名過此課程"
	MsgNoCredit             = "已無可使用堂數"
	MsgCourseFull           = "已達最大參加人數，無法參加"
	MsgCancelFailed         = "取消失敗"
	MsgInvalidToken         = "無效的token"
	MsgNotLoggedIn          = "尚未登入！"
	MsgRouteNotFound        = "無此路由"
)

// errorMapping pairs a sentinel with its status and message. Order matters:
// the first match wins, so more specific errors come before the sentinels
// they wrap.
type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	// Booking ledger. ErrStoreUnavailable wraps the underlying store error,
	// so it is checked before any store sentinel.
	{booking.ErrStoreUnavailable, http.StatusInternalServerError, ""},
	{booking.ErrCourseNotFound, http.StatusBadRequest, MsgInvalidID},
	{booking.ErrAlreadyBooked, http.StatusBadRequest, MsgAlreadyBooked},
	{booking.ErrInsufficientCredit, http.StatusBadRequest, MsgNoCredit},
	{booking.ErrCourseFull, http.StatusBadRequest, MsgCourseFull},
	{booking.ErrBookingNotFound, http.StatusBadRequest, MsgInvalidID},
	{booking.ErrCancelFailed, http.StatusBadRequest, MsgCancelFailed},
	{booking.ErrUserNotFound, http.StatusUnauthorized, MsgInvalidToken},

	// Authentication
	{auth.ErrInvalidToken, http.StatusUnauthorized, MsgInvalidToken},
	{auth.ErrExpiredToken, http.StatusUnauthorized, MsgInvalidToken},
	{domain.ErrUnauthorized, http.StatusUnauthorized, MsgNotLoggedIn},

	// Accounts
	{service.ErrInvalidCredentials, http.StatusBadRequest, MsgBadCredentials},
	{service.ErrNameUnchanged, http.StatusBadRequest, MsgNameUnchanged},
	{service.ErrUserUpdateFailed, http.StatusBadRequest, MsgUserUpdateFailed},
	{service.ErrPasswordUnchanged, http.StatusBadRequest, MsgPasswordUnchanged},
	{service.ErrPasswordConfirmMismatch, http.StatusBadRequest, MsgPasswordMismatch},
	{service.ErrWrongPassword, http.StatusBadRequest, MsgWrongPassword},
	{service.ErrPasswordUpdateFailed, http.StatusBadRequest, MsgPasswordUpdateFailed},
	{service.ErrNoPurchases, http.StatusNotFound, MsgNoRecords},
	{service.ErrNoBookings, http.StatusNotFound, MsgNoRecords},

	// Coaches and courses
	{service.ErrAlreadyCoach, http.StatusConflict, MsgAlreadyCoach},
	{service.ErrNotCoach, http.StatusBadRequest, MsgNotCoach},
	{service.ErrNoCourses, http.StatusBadRequest, MsgCoachNotFound},
	{service.ErrCapacityBelowBookings, http.StatusBadRequest, MsgInvalidFields},

	// Uploads
	{service.ErrUnsupportedImage, http.StatusBadRequest, MsgInvalidFields},
	{service.ErrImageTooLarge, http.StatusBadRequest, MsgInvalidFields},
	{service.ErrUploadDisabled, http.StatusServiceUnavailable, ""},

	// Validation. The password rule has its own message.
	{domain.ErrInvalidPassword, http.StatusBadRequest, MsgInvalidPassword},
	{domain.ErrInvalidID, http.StatusBadRequest, MsgInvalidID},
	{domain.ErrValidation, http.StatusBadRequest, MsgInvalidFields},

	// Store
	{store.ErrEmailExists, http.StatusConflict, MsgEmailTaken},
	{store.ErrDuplicate, http.StatusConflict, MsgDuplicate},
	{store.ErrReferenced, http.StatusConflict, MsgInUse},
	{store.ErrUserNotFound, http.StatusBadRequest, MsgUserNotFound},
	{store.ErrCoachNotFound, http.StatusBadRequest, MsgCoachNotFound},
	{store.ErrCourseNotFound, http.StatusBadRequest, MsgCourseNotFound},
	{store.ErrNotFound, http.StatusBadRequest, MsgInvalidID},
	{store.ErrInvalidEntity, http.StatusBadRequest, MsgInvalidFields},
}

func lookupError(err error) (errorMapping, bool) {
	if err == nil {
		return errorMapping{}, false
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m, true
		}
	}
	return errorMapping{}, false
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	if m, ok := lookupError(err); ok {
		return m.status
	}
	return http.StatusInternalServerError
}

// GetSafeErrorMessage returns the user-facing message for err. Server errors
// always yield the generic server message.
func GetSafeErrorMessage(err error) string {
	m, ok := lookupError(err)
	if !ok || m.status >= http.StatusInternalServerError {
		return shared.ServerErrorMessage
	}
	return m.message
}

// HandleAPIError writes the error envelope for err. A non-empty message
// overrides the mapped one for 4xx responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" || status >= http.StatusInternalServerError {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
