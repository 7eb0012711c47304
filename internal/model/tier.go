package model

// Tier is the account class. It determines the task quota and whether the
// account may delete tasks.
type Tier string

const (
	TierPremium    Tier = "Premium"
	TierRegular    Tier = "Regular"
	TierRestricted Tier = "Restricted"
)

// taskQuotas holds the per-tier task limit. Zero means unlimited.
var taskQuotas = map[Tier]int{
	TierPremium:    0,
	TierRegular:    10,
	TierRestricted: 5,
}

// IsValidTier reports whether t is one of the supported account classes.
func IsValidTier(t Tier) bool {
	switch t {
	case TierPremium, TierRegular, TierRestricted:
		return true
	default:
		return false
	}
}

// TaskQuota returns the maximum number of tasks the tier may hold.
// Zero means unlimited.
func (t Tier) TaskQuota() int {
	return taskQuotas[t]
}

// CanDeleteTasks reports whether the tier is allowed to delete its tasks.
func (t Tier) CanDeleteTasks() bool {
	return t != TierRestricted
}
