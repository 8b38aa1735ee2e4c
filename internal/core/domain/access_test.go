package domain

import "testing"

func TestIdentity_VisibleBranch(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		want string
	}{
		{"admin sees everything", Identity{Role: RoleAdmin, HotelBranch: BranchHiruVilla}, ""},
		{"all-branches account sees everything", Identity{Role: RoleAccounts, HotelBranch: BranchAll}, ""},
		{"front office scoped to own branch", Identity{Role: RoleFrontOffice, HotelBranch: BranchHiruOm}, BranchHiruOm},
		{"manager scoped to own branch", Identity{Role: RoleManager, HotelBranch: BranchHiruMudhra}, BranchHiruMudhra},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.VisibleBranch(); got != tt.want {
				t.Fatalf("VisibleBranch() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentity_Allowed(t *testing.T) {
	roles := []string{RoleAdmin, RoleManager, RoleAccounts, RoleFrontOffice}

	for _, role := range roles {
		id := Identity{Role: role, HotelBranch: BranchHiruVilla}

		if !id.Allowed(ActionList) || !id.Allowed(ActionRead) {
			t.Fatalf("%s should be allowed to list and read", role)
		}

		canWrite := role == RoleAdmin || role == RoleFrontOffice
		if id.Allowed(ActionCreate) != canWrite {
			t.Fatalf("%s create permission = %v, want %v", role, id.Allowed(ActionCreate), canWrite)
		}
		if id.Allowed(ActionUpdate) != canWrite {
			t.Fatalf("%s update permission = %v, want %v", role, id.Allowed(ActionUpdate), canWrite)
		}

		canDelete := role == RoleAdmin
		if id.Allowed(ActionDelete) != canDelete {
			t.Fatalf("%s delete permission = %v, want %v", role, id.Allowed(ActionDelete), canDelete)
		}
	}
}

func TestIdentity_CanSee(t *testing.T) {
	scoped := Identity{Role: RoleFrontOffice, HotelBranch: BranchHiruVilla}
	if !scoped.CanSee(BranchHiruVilla) {
		t.Fatalf("scoped account should see its own branch")
	}
	if scoped.CanSee(BranchHiruOm) {
		t.Fatalf("scoped account should not see a foreign branch")
	}

	admin := Identity{Role: RoleAdmin, HotelBranch: BranchHiruAadya}
	if !admin.CanSee(BranchHiruOm) {
		t.Fatalf("admin should see every branch")
	}

	allBranches := Identity{Role: RoleAccounts, HotelBranch: BranchAll}
	if !allBranches.CanSee(BranchHiruMudhra) {
		t.Fatalf("all-branches account should see every branch")
	}
}
