package model

// Privilege is a permission code of the form "<area>:<action>".
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name string `gorm:"type:varchar(100)" json:"name"`
}

const (
	PrivUserView            = "user:view"
	PrivUserCreate          = "user:create"
	PrivUserUpdate          = "user:update"
	PrivUserDelete          = "user:delete"
	PrivUserUpdatePrivilege = "user:update_privilege"

	PrivIngredientView   = "ingredient:view"
	PrivIngredientManage = "ingredient:manage"
	PrivPurchaseCreate   = "purchase:create"
	PrivPurchaseView     = "purchase:view"

	PrivRecipeView   = "recipe:view"
	PrivRecipeManage = "recipe:manage"

	PrivProductionCreate = "production:create"
	PrivProductionView   = "production:view"

	PrivProductView   = "product:view"
	PrivProductManage = "product:manage"

	PrivSaleCreate = "sale:create"
	PrivSaleView   = "sale:view"

	PrivTableView   = "table:view"
	PrivTableManage = "table:manage"
	PrivOrderView   = "order:view"
	PrivOrderUpdate = "order:update"

	PrivDashboardView = "dashboard:view"
)

var DefaultPrivileges = []Privilege{
	// Staff
	{Code: PrivUserView, Name: "View User"},
	{Code: PrivUserCreate, Name: "Create User"},
	{Code: PrivUserUpdate, Name: "Update User"},
	{Code: PrivUserDelete, Name: "Delete User"},
	{Code: PrivUserUpdatePrivilege, Name: "Update User Privileges"},
	// Inventory
	{Code: PrivIngredientView, Name: "View Ingredient"},
	{Code: PrivIngredientManage, Name: "Manage Ingredient"},
	{Code: PrivPurchaseCreate, Name: "Record Purchase"},
	{Code: PrivPurchaseView, Name: "View Purchase"},
	// Kitchen
	{Code: PrivRecipeView, Name: "View Recipe"},
	{Code: PrivRecipeManage, Name: "Manage Recipe"},
	{Code: PrivProductionCreate, Name: "Run Production"},
	{Code: PrivProductionView, Name: "View Production"},
	// Front of house
	{Code: PrivProductView, Name: "View Product"},
	{Code: PrivProductManage, Name: "Manage Product"},
	{Code: PrivSaleCreate, Name: "Checkout Sale"},
	{Code: PrivSaleView, Name: "View Sale"},
	{Code: PrivTableView, Name: "View Table"},
	{Code: PrivTableManage, Name: "Manage Table"},
	{Code: PrivOrderView, Name: "View Table Order"},
	{Code: PrivOrderUpdate, Name: "Update Table Order"},
	// Reports
	{Code: PrivDashboardView, Name: "View Dashboard"},
}
