package config

const (
	// AppID is the fixed identifier used for config file paths.
	// Keep it stable even if the display name changes so existing
	// export directories are still found.
	AppID = "shaper"
)
