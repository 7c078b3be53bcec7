package utils

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	ua "github.com/mileusna/useragent"
)

type GeoIPResponse struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

var geoClient = &http.Client{Timeout: 3 * time.Second}

// ParseUserAgent extracts browser, OS and device class from a User-Agent
// header for the session list.
func ParseUserAgent(userAgent string) (browser, os, device string) {
	if userAgent == "" {
		return "Unknown Browser", "Unknown OS", "Desktop"
	}

	parsed := ua.Parse(userAgent)

	browser = parsed.Name
	if browser == "" {
		browser = "Unknown Browser"
	}
	os = parsed.OS
	if os == "" {
		os = "Unknown OS"
	}

	device = "Desktop"
	switch {
	case parsed.Mobile && strings.Contains(userAgent, "iPhone"):
		device = "iPhone"
	case parsed.Mobile:
		device = "Mobile"
	case parsed.Tablet:
		device = "Tablet"
	}

	return strings.TrimSpace(browser), strings.TrimSpace(os), device
}

// GetLocationFromIP resolves a rough "City, Country" label for an IP via
// ipapi.co. Lookup failures degrade to "Unknown Location" rather than
// failing the login.
func GetLocationFromIP(ip string) (string, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "Unknown Location", nil
	}
	if parsed.IsLoopback() || parsed.IsPrivate() {
		return "Local Network", nil
	}

	resp, err := geoClient.Get(fmt.Sprintf("https://ipapi.co/%s/json/", ip))
	if err != nil {
		return "Unknown Location", nil
	}
	defer resp.Body.Close()

	var geoIP GeoIPResponse
	if err := json.NewDecoder(resp.Body).Decode(&geoIP); err != nil {
		return "Unknown Location", nil
	}

	switch {
	case geoIP.City != "" && geoIP.Country != "":
		return fmt.Sprintf("%s, %s", geoIP.City, geoIP.Country), nil
	case geoIP.Country != "":
		return geoIP.Country, nil
	}
	return "Unknown Location", nil
}

// GenerateSessionName builds the label shown in the active-sessions list,
// e.g. "Chrome on Windows (Berlin, Germany)".
func GenerateSessionName(userAgent string, location string) string {
	browser, os, _ := ParseUserAgent(userAgent)
	if location == "" {
		location = "Unknown Location"
	}
	return fmt.Sprintf("%s on %s (%s)", browser, os, location)
}
