package domain

// EventKind identifies a marketplace lifecycle notification type.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindInstall
	KindUninstall
	KindSubscriptionCreated
	KindSubscriptionCancelled
	KindSubscriptionRenewed
)

// ParseKind maps an inbound notification type string to an EventKind.
// Both the marketplace wire form (app_subscription_created) and the short
// form (subscription_created) are accepted; anything else is KindUnknown.
func ParseKind(s string) EventKind {
	switch s {
	case "install":
		return KindInstall
	case "uninstall":
		return KindUninstall
	case "app_subscription_created", "subscription_created":
		return KindSubscriptionCreated
	case "app_subscription_cancelled", "subscription_cancelled":
		return KindSubscriptionCancelled
	case "app_subscription_renewed", "subscription_renewed":
		return KindSubscriptionRenewed
	default:
		return KindUnknown
	}
}

// String returns the canonical wire form of the kind.
func (k EventKind) String() string {
	switch k {
	case KindInstall:
		return "install"
	case KindUninstall:
		return "uninstall"
	case KindSubscriptionCreated:
		return "app_subscription_created"
	case KindSubscriptionCancelled:
		return "app_subscription_cancelled"
	case KindSubscriptionRenewed:
		return "app_subscription_renewed"
	default:
		return "unknown"
	}
}

// LifecycleEvent is one inbound marketplace notification. Instances are built
// per request from the webhook payload and are never mutated after that.
type LifecycleEvent struct {
	Kind          EventKind
	ApplicationID string
	AccountID     string
	AccountName   string
	AccountSlug   string
	UserName      string
	UserEmail     string
	UserCountry   string
	UserCluster   string
	AccountTier   string
	PlanID        string
	MaxUsers      string
	Timestamp     string
}

// BoardTarget is the destination resolved for an application ID. GroupID is
// optional; when set, created items are placed in that group on the board.
type BoardTarget struct {
	BoardID string
	GroupID string
}

// DefaultBoardTargets is the static application → board table. Applications
// without an entry are rejected, never defaulted.
var DefaultBoardTargets = map[string]BoardTarget{
	"10142077": {BoardID: "7517528529"},
}
