package invite

import (
	"net/url"
	"strings"
)

// DefaultMessageTemplate is the built-in outreach message used when no custom
// template has been saved in settings.
const DefaultMessageTemplate = `The Wedding of Sam & Eli

Dear {name},

You are invited! Dengan penuh sukacita, kami mengundang kamu untuk hadir di hari bahagia kami.

Akses undangan digital kami di sini untuk info lengkapnya:

{link}

Terima kasih atas doa dan dukungannya. We look forward to celebrating with you!

Best regards, Sam & Eli`

// RenderMessage substitutes every {name} and {link} placeholder in the
// template. Unrecognized placeholders are left verbatim and no escaping is
// applied; callers embedding the result in a URL must percent-encode the whole
// rendered message afterward.
func RenderMessage(template, name, link string) string {
	if template == "" {
		template = DefaultMessageTemplate
	}
	out := strings.ReplaceAll(template, "{name}", name)
	return strings.ReplaceAll(out, "{link}", link)
}

// InvitationLink builds the public invitation URL for a guest slug.
func InvitationLink(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/?guest=" + slug
}

// WhatsAppURL builds a wa.me link with the message pre-filled. The phone
// number is expected in international format without a leading plus
// (e.g. 628xxx).
func WhatsAppURL(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}
