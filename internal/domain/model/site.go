// Package model contains the payloads returned by the suwen backend API.
// JSON names follow the backend's camelCase encoding unless noted.
package model

import "encoding/json"

// Site is the blog-wide profile returned by /api/site.
type Site struct {
	SiteName     string        `json:"siteName"`
	Intro        string        `json:"intro"`
	DisplayName  string        `json:"displayName"`
	AvatarURL    string        `json:"avatarUrl"`
	Keywords     []string      `json:"keywords,omitempty"`
	RelatedLinks []RelatedLink `json:"relatedLinks"`
	Tabs         []Tab         `json:"tabs"`
}

// RelatedLink is an external profile link shown in the header.
type RelatedLink struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	URL  string `json:"url"`
}

// Tab is a navigation entry. The backend names the target "url"; older
// site records use "path". Both decode into URL.
type Tab struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// UnmarshalJSON accepts either "url" or "path" as the tab target.
func (t *Tab) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name string `json:"name"`
		URL  string `json:"url"`
		Path string `json:"path"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.Name = raw.Name
	t.URL = raw.URL
	if t.URL == "" {
		t.URL = raw.Path
	}
	return nil
}

// Identity describes the current visitor, as returned by /api/me.
// Unlike the content payloads it is snake_case on the wire.
type Identity struct {
	AvatarURL   *string `json:"avatar_url,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	IsAnonymous bool    `json:"is_anonymous"`
	IsAdmin     bool    `json:"is_admin"`
}

// Name returns the display name or fallback when none is set.
func (i Identity) Name(fallback string) string {
	if i.DisplayName != nil && *i.DisplayName != "" {
		return *i.DisplayName
	}
	return fallback
}
