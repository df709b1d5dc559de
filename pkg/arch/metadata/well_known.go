package metadata

// Attribute keys with a conventional meaning across wallets and explorers.
const (
	AttributeKeyTwitter    = "twitter"
	AttributeKeyTelegram   = "telegram"
	AttributeKeyWebsite    = "website"
	AttributeKeyDiscord    = "discord"
	AttributeKeyCoingecko  = "coingecko"
	AttributeKeyWhitepaper = "whitepaper"
	AttributeKeyAudit      = "audit"
	AttributeKeyCategory   = "category"
	AttributeKeyTags       = "tags"
)

// WellKnownAttributeKeys returns a fresh copy of the conventional keys.
func WellKnownAttributeKeys() []string {
	return []string{
		AttributeKeyTwitter,
		AttributeKeyTelegram,
		AttributeKeyWebsite,
		AttributeKeyDiscord,
		AttributeKeyCoingecko,
		AttributeKeyWhitepaper,
		AttributeKeyAudit,
		AttributeKeyCategory,
		AttributeKeyTags,
	}
}

func IsWellKnownAttributeKey(key string) bool {
	switch key {
	case AttributeKeyTwitter,
		AttributeKeyTelegram,
		AttributeKeyWebsite,
		AttributeKeyDiscord,
		AttributeKeyCoingecko,
		AttributeKeyWhitepaper,
		AttributeKeyAudit,
		AttributeKeyCategory,
		AttributeKeyTags:
		return true
	default:
		return false
	}
}
