package utils

import (
	"errors"
	"regexp"
	"strings"
)

// Compiled regular expressions for validation
var (
	// Detect potentially dangerous characters - focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)

	// Detect HTML/script tags
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

const (
	// MinRadiusKM and MaxRadiusKM bound the search radius accepted by the
	// API. The core tolerates any positive radius; this range is an API
	// policy.
	MinRadiusKM = 0.1
	MaxRadiusKM = 5.0

	// DefaultRadiusKM is used when a request omits the radius parameter.
	DefaultRadiusKM = 1.0
)

// ValidateLatitude validates latitude values. The lower bound is 0, not -90:
// this API serves a single northern-hemisphere city and deliberately narrows
// the range.
func ValidateLatitude(lat float64) error {
	if lat < 0.0 || lat > 90.0 {
		return errors.New("latitude must be between 0 and 90")
	}
	return nil
}

// ValidateLongitude validates longitude values
func ValidateLongitude(lon float64) error {
	if lon < -180.0 || lon > 180.0 {
		return errors.New("longitude must be between -180 and 180")
	}
	return nil
}

// ValidateRadiusKM validates the search radius in kilometers
func ValidateRadiusKM(radius float64) error {
	if radius < MinRadiusKM || radius > MaxRadiusKM {
		return errors.New("radius must be between 0.1 and 5.0 km")
	}
	return nil
}

// ValidateQuery validates free-text query strings
func ValidateQuery(query string) error {
	// Empty queries are allowed
	if query == "" {
		return nil
	}

	if len(query) > 200 {
		return errors.New("query too long (max 200 characters)")
	}

	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// SanitizeInput removes HTML tags and other potentially dangerous content
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidateAndSanitizeQuery validates and sanitizes a free-text query
func ValidateAndSanitizeQuery(query string) (string, error) {
	if err := ValidateQuery(query); err != nil {
		return "", err
	}

	return SanitizeInput(query), nil
}

// ValidateLocationParams validates a complete set of location parameters.
// Callers resolve an absent radius to their default before calling; an
// explicit zero is rejected like any other out-of-range radius.
func ValidateLocationParams(lat, lon, radius float64) map[string][]string {
	fieldErrors := make(map[string][]string)

	if err := ValidateLatitude(lat); err != nil {
		fieldErrors["lat"] = append(fieldErrors["lat"], err.Error())
	}

	if err := ValidateLongitude(lon); err != nil {
		fieldErrors["lon"] = append(fieldErrors["lon"], err.Error())
	}

	if err := ValidateRadiusKM(radius); err != nil {
		fieldErrors["radius"] = append(fieldErrors["radius"], err.Error())
	}

	return fieldErrors
}
