package service

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrRoleInvalid        = errors.New("role invalid")

	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")

	ErrStoneNotFound      = errors.New("stone not found")
	ErrStoneSKURequired   = errors.New("stone sku required")
	ErrStoneFieldInvalid  = errors.New("stone field invalid")
	ErrStoneStatusInvalid = errors.New("stone status invalid")
	ErrStorageDisabled    = errors.New("object storage disabled")

	ErrImportBusy             = errors.New("import already in progress")
	ErrImportProposalNotFound = errors.New("import proposal not found")
	ErrImportFileTooLarge     = errors.New("import file too large")
	ErrImportExtension        = errors.New("import file extension not allowed")

	ErrQuoteInvalid          = errors.New("quote request invalid")
	ErrQuoteItemsEmpty       = errors.New("quote request has no stones")
	ErrQuoteItemsTooMany     = errors.New("quote request has too many stones")
	ErrQuoteStoneUnavailable = errors.New("quote stone unavailable")
	ErrQuoteNotFound         = errors.New("quote request not found")
	ErrQuoteStatusInvalid    = errors.New("quote status invalid")
)

// LocalizedError 携带 i18n 文案键与参数的错误
type LocalizedError interface {
	error
	Key() string
	Args() []interface{}
}

type localizedError struct {
	target error
	key    string
	args   []interface{}
}

func (e localizedError) Error() string {
	return e.key
}

func (e localizedError) Is(target error) bool {
	return target == e.target
}

func (e localizedError) Key() string {
	return e.key
}

func (e localizedError) Args() []interface{} {
	return e.args
}

func stoneFieldError(field string) error {
	return localizedError{target: ErrStoneFieldInvalid, key: "error.stone_field_invalid", args: []interface{}{field}}
}

func quoteTooManyError(limit int) error {
	return localizedError{target: ErrQuoteItemsTooMany, key: "error.quote_items_too_many", args: []interface{}{limit}}
}

func quoteUnavailableError(skus []string) error {
	return localizedError{
		target: ErrQuoteStoneUnavailable,
		key:    "error.quote_stone_unavailable",
		args:   []interface{}{strings.Join(skus, ", ")},
	}
}

func fileTooLargeError(limitMB int64) error {
	return localizedError{target: ErrImportFileTooLarge, key: "error.import_file_too_large", args: []interface{}{limitMB}}
}
