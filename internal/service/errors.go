package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("invalid request parameters")
	ErrIdentityRequired     = errors.New("missing X-User-ID header")
	ErrUserNotFound         = errors.New("user not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrLayerNotFound        = errors.New("canvas layer not found")
	ErrBubbleNotFound       = errors.New("chaos bubble not found")
	ErrLayerTypeInvalid     = errors.New("unknown layer type")
	ErrContentInvalid       = errors.New("content does not match its declared type")
	ErrInsufficientCoins    = errors.New("insufficient ChaosCoins")
	ErrDailyLimitReached    = errors.New("daily contribution limit reached")
	ErrRateLimited          = errors.New("too many contributions, slow down")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrPackageInvalid       = errors.New("unknown coin package")
	ErrMergeInvalid         = errors.New("profiles cannot be merged")
	ErrCheckoutFailed       = errors.New("checkout session could not be created")
	UnExpectedError         = errors.New("internal error, try again later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrIdentityRequired:     Unauthorized,
	ErrUserNotFound:         NotFound,
	ErrContributionNotFound: NotFound,
	ErrLayerNotFound:        NotFound,
	ErrBubbleNotFound:       NotFound,
	ErrLayerTypeInvalid:     BadRequest,
	ErrContentInvalid:       BadRequest,
	ErrInsufficientCoins:    BadRequest,
	ErrDailyLimitReached:    TooManyRequests,
	ErrRateLimited:          TooManyRequests,
	ErrUsernameTaken:        BadRequest,
	ErrPackageInvalid:       BadRequest,
	ErrMergeInvalid:         BadRequest,
	ErrCheckoutFailed:       InternalServerError,
	UnExpectedError:         InternalServerError,
}
