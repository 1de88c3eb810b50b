package setting

import "errors"

var (
	ErrSettingNotFound   = errors.New("setting not found")
	ErrInvalidSettingKey = errors.New("invalid setting key")
	ErrInvalidValueType  = errors.New("invalid value type")
)
