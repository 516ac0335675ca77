package model

import "errors"

// Sentinel kinds for model parsing errors.
var (
	ErrUnknownSkillType = errors.New("unknown skill type")
	ErrUnknownVariant   = errors.New("unknown variant")
)
