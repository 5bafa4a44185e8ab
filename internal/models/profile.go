// Package models contains data structures for the engine's domain records.
package models

import (
	"strings"
	"time"
)

// Profile is the engine's read-only view of a member profile. Profiles are
// owned by the profile-management subsystem; the engine stores foreign
// references and never mutates or deletes these rows outside of dev/test
// seeding.
type Profile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DisplayName string    `gorm:"not null" json:"display_name"`
	Headline    string    `json:"headline"`
	PhotoURL    string    `json:"photo_url"`
	RoleTags    string    `json:"role_tags"`
	DomainTags  string    `json:"domain_tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// DomainTagList splits the comma-separated domain tags into a slice.
func (p *Profile) DomainTagList() []string {
	return splitTags(p.DomainTags)
}

// RoleTagList splits the comma-separated role tags into a slice.
func (p *Profile) RoleTagList() []string {
	return splitTags(p.RoleTags)
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ProfileSummary is the compact representation embedded in connection and
// suggestion responses.
type ProfileSummary struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
	Headline    string `json:"headline"`
	PhotoURL    string `json:"photo_url"`
}

// Summary converts a profile into its compact representation.
func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Headline:    p.Headline,
		PhotoURL:    p.PhotoURL,
	}
}
