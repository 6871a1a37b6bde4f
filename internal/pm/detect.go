package pm

import "strings"

// UserAgentEnv is the variable package managers set to identify themselves to
// the scripts they launch, e.g. "pnpm/8.0.0 npm/? node/v18.17.0 linux x64".
const UserAgentEnv = "npm_config_user_agent"

// DetectFromUserAgent extracts the invoking package manager from a user agent
// string. The result is only a hint for the selection prompt.
func DetectFromUserAgent(userAgent string) (Name, bool) {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return "", false
	}

	name, _, _ := strings.Cut(userAgent, "/")
	n := Name(name)
	if !n.Valid() {
		return "", false
	}
	return n, true
}

// Detect reads UserAgentEnv through getenv and returns the hinted manager.
func Detect(getenv func(string) string) (Name, bool) {
	if getenv == nil {
		return "", false
	}
	return DetectFromUserAgent(getenv(UserAgentEnv))
}
