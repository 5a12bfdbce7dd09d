package client

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.com", "user.name@example.co.uk", "x+tag@d.io"}
	for _, e := range valid {
		if err := ValidateEmail(e); err != nil {
			t.Fatalf("%q rejected: %v", e, err)
		}
	}
	invalid := []string{"", "no-at.example.com", "two@@b.com", "spaces in@b.com", "a@nodot"}
	for _, e := range invalid {
		if err := ValidateEmail(e); err == nil {
			t.Fatalf("%q accepted", e)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	for _, cat := range []MemoryCategory{CategoryConversation, CategoryFact, CategoryPreference, CategorySkill} {
		if err := ValidateCategory(cat); err != nil {
			t.Fatalf("%q rejected: %v", cat, err)
		}
	}
	if err := ValidateCategory("GOSSIP"); err == nil {
		t.Fatalf("bad category accepted")
	}
	if err := ValidateCategory(""); err == nil {
		t.Fatalf("empty category accepted")
	}
}

func TestValidateTier(t *testing.T) {
	for _, tier := range []MemoryTier{TierSTM, TierLTM, TierCache} {
		if err := ValidateTier(tier); err != nil {
			t.Fatalf("%q rejected: %v", tier, err)
		}
	}
	if err := ValidateTier("mtm"); err == nil {
		t.Fatalf("bad tier accepted")
	}
}
