package domain

// AccountRole is a logical, well-known account used by automated postings.
type AccountRole string

const (
	RoleAccountsReceivable AccountRole = "AR"
	RoleBank               AccountRole = "BANK"
	RoleRevenue            AccountRole = "REVENUE"
	RolePayrollExpense     AccountRole = "PAYROLL_EXPENSE"
	RoleStaffPayable       AccountRole = "STAFF_PAYABLE"
	RoleFxGain             AccountRole = "FX_GAIN"
	RoleFxLoss             AccountRole = "FX_LOSS"
)

// AllAccountRoles lists every role in resolution order.
var AllAccountRoles = []AccountRole{
	RoleAccountsReceivable,
	RoleBank,
	RoleRevenue,
	RolePayrollExpense,
	RoleStaffPayable,
	RoleFxGain,
	RoleFxLoss,
}

// DefaultRoleCodes is the conventional account code for each role, used
// when a tenant has no explicit mapping row for it.
var DefaultRoleCodes = map[AccountRole]string{
	RoleAccountsReceivable: "1200",
	RoleBank:               "1010",
	RoleRevenue:            "4000",
	RolePayrollExpense:     "5000",
	RoleStaffPayable:       "2100",
	RoleFxGain:             "7300",
	RoleFxLoss:             "7500",
}

// IsValid reports whether r is a known role.
func (r AccountRole) IsValid() bool {
	_, ok := DefaultRoleCodes[r]
	return ok
}

// AccountRoleMapping is an explicit per-tenant binding of a role to an account.
type AccountRoleMapping struct {
	TenantID  string      `json:"tenantID"`
	Role      AccountRole `json:"role"`
	AccountID string      `json:"accountID"`
	AuditFields
}

// RoleMap is the resolved set of role accounts for one tenant and one operation.
type RoleMap map[AccountRole]Account

// Lookup returns the account bound to role, if any.
func (m RoleMap) Lookup(role AccountRole) (Account, bool) {
	acc, ok := m[role]
	return acc, ok
}

// Missing returns the subset of roles that have no account.
func (m RoleMap) Missing(roles ...AccountRole) []AccountRole {
	var missing []AccountRole
	for _, r := range roles {
		if _, ok := m[r]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}
