package contacts

import (
	"fmt"

	"synchub/feature/contacts/models"
)

// Integration is the provider config key this feature serves.
const Integration = "slack"

// PlaceholderAvatarURL substitutes for members without a profile image.
const PlaceholderAvatarURL = "https://www.gravatar.com/avatar?d=mp"

// SlackMember is the raw member object returned by the Slack users.list API.
type SlackMember struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
	IsBot   bool   `json:"is_bot"`
	Profile struct {
		RealName      string `json:"real_name"`
		DisplayName   string `json:"display_name"`
		Email         string `json:"email"`
		ImageOriginal string `json:"image_original"`
	} `json:"profile"`
}

// MapScope identifies the provenance stamped on every mapped record.
type MapScope struct {
	ConnectionID  string
	IntegrationID string
}

// MapMember transforms a raw Slack member into a Contact. The member id and
// some display name are required; the name falls back through real_name,
// display_name and the account name. A missing avatar degrades to the
// placeholder image.
func MapMember(member SlackMember, scope MapScope) (models.Contact, error) {
	if member.ID == "" {
		return models.Contact{}, fmt.Errorf("slack member without id")
	}

	fullName := member.Profile.RealName
	if fullName == "" {
		fullName = member.Profile.DisplayName
	}
	if fullName == "" {
		fullName = member.Name
	}
	if fullName == "" {
		return models.Contact{}, fmt.Errorf("slack member %s has no usable name", member.ID)
	}

	avatar := member.Profile.ImageOriginal
	if avatar == "" {
		avatar = PlaceholderAvatarURL
	}

	return models.Contact{
		ID:            member.ID,
		FullName:      fullName,
		Email:         member.Profile.Email,
		AvatarURL:     avatar,
		IntegrationID: scope.IntegrationID,
		ConnectionID:  scope.ConnectionID,
	}, nil
}
