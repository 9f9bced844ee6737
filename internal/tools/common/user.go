package common

// GetUserFromArgs extracts the impersonated user from request arguments.
// An explicit "user" argument selects who the service account acts as via
// domain-wide delegation. An empty string means the server's default
// subject.
func GetUserFromArgs(args map[string]interface{}) string {
	if userVal, ok := args["user"].(string); ok {
		return userVal
	}
	return ""
}

// GetCalendarFromArgs extracts the target calendar ID from request
// arguments, defaulting to "primary".
func GetCalendarFromArgs(args map[string]interface{}) string {
	if calVal, ok := args["calendar_id"].(string); ok && calVal != "" {
		return calVal
	}
	return "primary"
}
