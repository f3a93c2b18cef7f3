package useragent

import "github.com/mileusna/useragent"

type UserAgent struct {
	Bot       bool
	OS        string
	OSVersion string
	Device    string
	Name      string
}

// ParseUserAgent names the device a session was started from. The name ends
// up in the session payload so an admin can tell sessions apart.
func ParseUserAgent(userAgent string) *UserAgent {
	parsed := useragent.Parse(userAgent)
	return &UserAgent{
		Bot:       parsed.Bot,
		OS:        parsed.OS,
		OSVersion: parsed.VersionNoFull(),
		Device:    parsed.Device,
		Name:      parsed.Name,
	}
}
