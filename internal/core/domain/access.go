package domain

// Action enumerates the guest-record operations gated by the access policy.
type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Identity is the decoded token identity attached to every request.
type Identity struct {
	UserID      string
	Username    string
	Role        string
	HotelBranch string
}

// SeesAllBranches reports whether the caller's reads are unscoped. Admins and
// accounts assigned the All sentinel see every branch; everyone else is
// confined to their own.
func (id Identity) SeesAllBranches() bool {
	return id.Role == RoleAdmin || id.HotelBranch == BranchAll
}

// VisibleBranch returns the branch filter to apply at query time: empty means
// no filter.
func (id Identity) VisibleBranch() string {
	if id.SeesAllBranches() {
		return ""
	}
	return id.HotelBranch
}

// Allowed decides whether the caller may perform action. Branch scoping of
// reads is handled separately via VisibleBranch; this covers the role gate.
func (id Identity) Allowed(action Action) bool {
	switch action {
	case ActionList, ActionRead:
		return true
	case ActionCreate, ActionUpdate:
		return id.Role == RoleAdmin || id.Role == RoleFrontOffice
	case ActionDelete:
		return id.Role == RoleAdmin
	}
	return false
}

// CanSee reports whether a record at branch is visible to the caller. Used on
// direct-by-id lookups so a branch-scoped account cannot read a foreign
// branch's record by guessing its id.
func (id Identity) CanSee(branch string) bool {
	return id.SeesAllBranches() || id.HotelBranch == branch
}
