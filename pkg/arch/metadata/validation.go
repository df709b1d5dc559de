package metadata

import (
	"fmt"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
)

// Limits enforced by the on-chain program. Lengths are in bytes.
const (
	MaxNameLength           = 256
	MaxSymbolLength         = 16
	MaxImageLength          = 512
	MaxDescriptionLength    = 512
	MaxAttributes           = 32
	MaxAttributeKeyLength   = 64
	MaxAttributeValueLength = 240
)

type ValidationError = arch.ValidationError

// ValidateMetadataFields checks every field against its cap.
func ValidateMetadataFields(name, symbol, image, description string) error {
	return ValidateOptionalMetadataFields(&name, &symbol, &image, &description)
}

// ValidateOptionalMetadataFields checks only the fields that are present.
func ValidateOptionalMetadataFields(name, symbol, image, description *string) error {
	for _, field := range []struct {
		name  string
		value *string
		limit int
	}{
		{"name", name, MaxNameLength},
		{"symbol", symbol, MaxSymbolLength},
		{"image", image, MaxImageLength},
		{"description", description, MaxDescriptionLength},
	} {
		if field.value == nil {
			continue
		}
		if err := checkLength(field.name, *field.value, field.limit); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAttributes checks the entry count and every key and value.
func ValidateAttributes(attributes []Attribute) error {
	if len(attributes) > MaxAttributes {
		return &ValidationError{
			Field:  "attributes",
			Limit:  MaxAttributes,
			Actual: len(attributes),
			Reason: fmt.Sprintf("%d entries exceeds max of %d", len(attributes), MaxAttributes),
		}
	}

	for i, attribute := range attributes {
		if len(attribute.Key) == 0 {
			return &ValidationError{Field: "attribute_key", Limit: MaxAttributeKeyLength, Reason: fmt.Sprintf("entry %d must be non-empty", i)}
		}
		if len(attribute.Value) == 0 {
			return &ValidationError{Field: "attribute_value", Limit: MaxAttributeValueLength, Reason: fmt.Sprintf("entry %d must be non-empty", i)}
		}
		if err := checkLength("attribute_key", attribute.Key, MaxAttributeKeyLength); err != nil {
			return err
		}
		if err := checkLength("attribute_value", attribute.Value, MaxAttributeValueLength); err != nil {
			return err
		}
	}
	return nil
}

func checkLength(field, value string, limit int) error {
	if len(value) > limit {
		return &ValidationError{
			Field:  field,
			Limit:  limit,
			Actual: len(value),
		}
	}
	return nil
}
