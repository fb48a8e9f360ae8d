package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected EventKind
	}{
		{"install", KindInstall},
		{"uninstall", KindUninstall},
		{"app_subscription_created", KindSubscriptionCreated},
		{"subscription_created", KindSubscriptionCreated},
		{"app_subscription_cancelled", KindSubscriptionCancelled},
		{"app_subscription_renewed", KindSubscriptionRenewed},
		{"app_trial_subscription_started", KindUnknown},
		{"", KindUnknown},
		{"INSTALL", KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseKind(tt.input), "input %q", tt.input)
	}
}

func TestValidAccountTier(t *testing.T) {
	for _, tier := range []string{"pro", "standard", "enterprise", "free", "basic", "Pro", "ENTERPRISE"} {
		assert.True(t, ValidAccountTier(tier), "tier %q should be accepted", tier)
	}

	for _, tier := range []string{"", "premium", "gold", "free ", "trial"} {
		assert.False(t, ValidAccountTier(tier), "tier %q should be rejected", tier)
	}
}

func TestDefaultBoardTargets(t *testing.T) {
	target, ok := DefaultBoardTargets["10142077"]
	assert.True(t, ok)
	assert.Equal(t, "7517528529", target.BoardID)
}
