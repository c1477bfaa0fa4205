package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagInvalidTagFormat marks a tag name that is not vMAJOR.MINOR.PATCH.
	ErrTagInvalidTagFormat = goerr.NewTag("invalid_tag_format")

	// ErrTagHistoryAccess marks a failure to resolve a ref or read commits.
	ErrTagHistoryAccess = goerr.NewTag("history_access")

	// ErrTagMissingField marks a build descriptor without exactly one
	// version field or build number field.
	ErrTagMissingField = goerr.NewTag("missing_field")

	// ErrTagInvalidConfig marks a configuration problem (flags or config file).
	ErrTagInvalidConfig = goerr.NewTag("invalid_config")
)
