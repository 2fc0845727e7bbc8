// Package fetch - platform.go detects the CMS behind a government site and its content selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a CMS commonly used by consular and immigration sites.
type Platform string

const (
	// PlatformSharePoint is Microsoft SharePoint (Spanish ministries, many consulates)
	PlatformSharePoint Platform = "sharepoint"
	// PlatformJoomla is the Joomla CMS (Mexican consulates)
	PlatformJoomla Platform = "joomla"
	// PlatformLiferay is the Liferay portal (Portuguese and Croatian portals)
	PlatformLiferay Platform = "liferay"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the CMS from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	path := strings.ToLower(parsed.Path)

	if strings.HasSuffix(path, ".aspx") || strings.Contains(path, "/paginas/") {
		return PlatformSharePoint
	}

	if strings.Contains(path, "/index.php") {
		return PlatformJoomla
	}

	if strings.HasSuffix(host, "gov.pt") || strings.HasSuffix(host, "mup.gov.hr") {
		return PlatformLiferay
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a specific platform,
// ending with the generic government page selectors.
func PlatformContentSelectors(platform Platform) []string {
	var specific []string
	switch platform {
	case PlatformSharePoint:
		specific = []string{
			"#DeltaPlaceHolderMain",
			".ms-rtestate-field",
			"#contentBox",
		}
	case PlatformJoomla:
		specific = []string{
			".item-page",
			"[itemprop='articleBody']",
			"#content",
		}
	case PlatformLiferay:
		specific = []string{
			".journal-content-article",
			"#main-content",
			".portlet-body",
		}
	}
	return append(specific, GovernmentPageSelectors()...)
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
		"#cookie-notice",

		// Social and share buttons
		".social-share",
		".share-buttons",

		// Navigation aids
		".breadcrumb",
		".breadcrumbs",
		".skip-link",
	}

	switch platform {
	case PlatformSharePoint:
		return append(common, "#s4-ribbonrow", "#suiteBarTop", ".ms-hidden")
	case PlatformJoomla:
		return append(common, ".pagenav", ".article-info", ".moduletable")
	case PlatformLiferay:
		return append(common, ".portlet-topper", ".lfr-meta-actions", "#banner")
	default:
		return common
	}
}
