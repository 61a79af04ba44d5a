package contract

import "coopvest_dao/sdk"

// Role identifies one grantable capability. Checks are dynamic: the role
// registry is mutable state queried per call, not compiled-in dispatch.
type Role uint8

const (
	RoleUnspecified        Role = 0
	RoleProposeInvestment  Role = 1
	RoleActivateInvestment Role = 2
	RoleManageFinance      Role = 3
	RoleAdministerMembers  Role = 4
)

// String returns the capability name used in payloads and events.
// Example payload: RoleManageFinance.String()
func (r Role) String() string {
	switch r {
	case RoleProposeInvestment:
		return "propose-investment"
	case RoleActivateInvestment:
		return "activate-investment"
	case RoleManageFinance:
		return "manage-finance"
	case RoleAdministerMembers:
		return "administer-members"
	default:
		return "unspecified"
	}
}

// ParseRole maps a capability name from a payload back onto the enum.
func ParseRole(s string) Role {
	switch s {
	case "propose-investment":
		return RoleProposeInvestment
	case "activate-investment":
		return RoleActivateInvestment
	case "manage-finance":
		return RoleManageFinance
	case "administer-members":
		return RoleAdministerMembers
	default:
		return RoleUnspecified
	}
}

// -----------------------------------------------------------------------------
// Member registry (keyed records, active-flag tombstone)
// -----------------------------------------------------------------------------

func saveMember(m *Member) {
	sdk.StateSetObject(memberKey(m.Address), string(EncodeMember(m)))
}

func loadMember(addr sdk.Address) (*Member, bool) {
	ptr := sdk.StateGetObject(memberKey(addr))
	if ptr == nil || *ptr == "" {
		return nil, false
	}
	m, err := DecodeMember([]byte(*ptr))
	if err != nil {
		sdk.Abort("failed to decode member")
	}
	return m, true
}

// addMember activates (or re-activates) a registry entry. Requires the
// administer-members capability.
func addMember(caller, addr sdk.Address, now int64) error {
	if !authority.HasCapability(caller, RoleAdministerMembers) {
		return errUnauthorized("administer-members capability required to add members")
	}
	if !addr.IsValid() {
		return errBadPayload("member address is not valid")
	}
	if m, ok := loadMember(addr); ok {
		if m.Active {
			return errInvalidState("member already active")
		}
		m.Active = true
		m.DeactivatedAt = 0
		saveMember(m)
	} else {
		saveMember(&Member{Address: addr, Active: true, JoinedAt: now})
	}
	emitMemberChanged(AddressToString(caller), AddressToString(addr), true)
	return nil
}

// removeMember tombstones the entry instead of deleting it, so stake records
// referencing the address keep a resolvable history. Claim rights are not
// touched - custody attaches to the stake, not to membership.
func removeMember(caller, addr sdk.Address, now int64) error {
	if !authority.HasCapability(caller, RoleAdministerMembers) {
		return errUnauthorized("administer-members capability required to remove members")
	}
	m, ok := loadMember(addr)
	if !ok || !m.Active {
		return errNotFound("no active member record for address")
	}
	m.Active = false
	m.DeactivatedAt = now
	saveMember(m)
	emitMemberChanged(AddressToString(caller), AddressToString(addr), false)
	return nil
}

// -----------------------------------------------------------------------------
// Role registry
// -----------------------------------------------------------------------------

func hasRoleGrant(role Role, addr sdk.Address) bool {
	ptr := sdk.StateGetObject(roleKey(role, addr))
	return ptr != nil && *ptr == "1"
}

func grantRole(caller, addr sdk.Address, role Role) error {
	if !authority.HasCapability(caller, RoleAdministerMembers) {
		return errUnauthorized("administer-members capability required to grant roles")
	}
	if role == RoleUnspecified {
		return errBadPayload("unknown capability name")
	}
	sdk.StateSetObject(roleKey(role, addr), "1")
	emitRoleChanged(AddressToString(caller), AddressToString(addr), role.String(), true)
	return nil
}

func revokeRole(caller, addr sdk.Address, role Role) error {
	if !authority.HasCapability(caller, RoleAdministerMembers) {
		return errUnauthorized("administer-members capability required to revoke roles")
	}
	if role == RoleUnspecified {
		return errBadPayload("unknown capability name")
	}
	sdk.StateDeleteObject(roleKey(role, addr))
	emitRoleChanged(AddressToString(caller), AddressToString(addr), role.String(), false)
	return nil
}
