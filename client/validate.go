package client

import (
	"fmt"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks the minimal shape of an email address; the server
// applies the authoritative rules.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

// requireID rejects empty server-issued identifiers before they reach the
// wire. The server owns the ID format, so nothing stricter is checked here.
func requireID(id, fieldName string) error {
	if id == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateCategory checks a legacy memory category against the fixed set.
func ValidateCategory(cat MemoryCategory) error {
	switch cat {
	case CategoryConversation, CategoryFact, CategoryPreference, CategorySkill:
		return nil
	}
	return fmt.Errorf("memoryType must be one of CONVERSATION, FACT, PREFERENCE, SKILL")
}

// ValidateTier checks a v2 memory tier name.
func ValidateTier(tier MemoryTier) error {
	switch tier {
	case TierSTM, TierLTM, TierCache:
		return nil
	}
	return fmt.Errorf("tier must be one of stm, ltm, cache")
}
