package models

import "strings"

// Payload helpers. DocuSign distinguishes an omitted key from an explicit
// null: optional fields are left out entirely when unset, while required
// fields serialize as null. These helpers keep that rule in one place.

// nullable returns the string itself, or nil when empty, for required
// fields that must serialize even when unset.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// putString sets an optional string field, omitting it when empty.
func putString(p map[string]any, key, value string) {
	if value != "" {
		p[key] = value
	}
}

// putBool sets an optional boolean field, omitting it when unset.
func putBool(p map[string]any, key string, value *bool) {
	if value != nil {
		p[key] = *value
	}
}

// putInt sets an optional integer field, omitting it when unset.
func putInt(p map[string]any, key string, value *int) {
	if value != nil {
		p[key] = *value
	}
}

func equalFold(a, b string) bool { return strings.EqualFold(a, b) }

// emailNotificationPayload groups the per-recipient email override fields
// into the nested emailNotification object. All three keys are present as
// soon as any one of them is set; otherwise the object is an explicit null.
func emailNotificationPayload(body, subject, language string) any {
	if body == "" && subject == "" && language == "" {
		return nil
	}
	return map[string]any{
		"emailBody":         nullable(body),
		"emailSubject":      nullable(subject),
		"supportedLanguage": nullable(language),
	}
}
