package fetch

import (
	"net/url"
	"strings"
)

// Platform is a site that hosts resumes or public profiles.
type Platform string

const (
	// PlatformLinkedIn is a LinkedIn public profile
	PlatformLinkedIn Platform = "linkedin"
	// PlatformGitHub is a GitHub profile page
	PlatformGitHub Platform = "github"
	// PlatformUnknown is any other site, such as a personal homepage
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the hosting platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com"):
		return PlatformLinkedIn
	case host == "github.com" || host == "www.github.com":
		return PlatformGitHub
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a platform, most
// specific first.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformLinkedIn:
		return []string{
			"main.main",
			".core-rail",
			"section.profile",
			"main",
		}
	case PlatformGitHub:
		return []string{
			".js-profile-editable-area",
			"[itemtype='http://schema.org/Person']",
			"main",
		}
	default:
		return DefaultTextSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		".cookie-consent",
		".gdpr-notice",
		".social-share",
		".share-buttons",
	}

	switch platform {
	case PlatformLinkedIn:
		return append(common,
			".contextual-sign-in-modal",
			".join-form",
			".sign-in-modal",
			".aside-section-container",
			".right-rail",
			"#artdeco-global-alert-container",
		)
	case PlatformGitHub:
		return append(common,
			".js-pinned-items-reorder-container",
			".js-yearly-contributions",
			".UnderlineNav",
		)
	default:
		return common
	}
}
