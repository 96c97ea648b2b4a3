package model

// Role groups the privileges granted to a member of staff.
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // OWNER, CASHIER, KITCHEN
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes
const (
	RoleOwner   = "OWNER"
	RoleCashier = "CASHIER"
	RoleKitchen = "KITCHEN"
)

var DefaultRoles = []Role{
	{
		Code:        RoleOwner,
		Name:        "Owner",
		Description: "Full access to the shop, staff and reports",
	},
	{
		Code:        RoleCashier,
		Name:        "Cashier",
		Description: "Point of sale, tables and table orders",
	},
	{
		Code:        RoleKitchen,
		Name:        "Kitchen",
		Description: "Production runs and incoming table orders",
	},
}

// rolePrivileges lists what each non-owner role receives when seeded. OWNER gets everything.
var rolePrivileges = map[string][]string{
	RoleCashier: {
		PrivProductView, PrivSaleCreate, PrivSaleView,
		PrivTableView, PrivTableManage, PrivOrderView, PrivOrderUpdate,
		PrivDashboardView,
	},
	RoleKitchen: {
		PrivIngredientView, PrivRecipeView, PrivProductionCreate, PrivProductionView,
		PrivProductView, PrivOrderView, PrivOrderUpdate,
	},
}

// SeedPrivilegesFor returns the subset of all that a role is granted by default.
func SeedPrivilegesFor(roleCode string, all []Privilege) []Privilege {
	if roleCode == RoleOwner {
		return all
	}
	allowed := make(map[string]bool, len(rolePrivileges[roleCode]))
	for _, code := range rolePrivileges[roleCode] {
		allowed[code] = true
	}
	granted := []Privilege{}
	for _, p := range all {
		if allowed[p.Code] {
			granted = append(granted, p)
		}
	}
	return granted
}
