package featureflag

type Flag string

const (
	FlagDisableDebugInfo  Flag = "DISABLE_DEBUG_INFO"
	FlagDisablePointLimit Flag = "DISABLE_POINT_LIMIT"
)
