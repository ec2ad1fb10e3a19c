package models

import "time"

// Setting is a singleton-per-key configuration value, currently only the
// outbound WhatsApp message template.
type Setting struct {
	Key         string    `json:"key" gorm:"primaryKey"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SettingKeyMessageTemplate stores the admin-editable outreach message
// template with {name} and {link} placeholders.
const SettingKeyMessageTemplate = "whatsapp_message_template"
