// Package authz decides which tenant-scoped actions a caller may
// perform. It is a pure function over the caller's role and tenant and
// the target resource's tenant, with no transport dependencies.
package authz

import "github.com/modaflow/backend/internal/domain/user"

// Action describes a tenant-scoped operation to be authorized.
type Action string

const (
	TenantCreate Action = "tenant.create"
	TenantUpdate Action = "tenant.update"
	TenantDelete Action = "tenant.delete"

	ProductCreate Action = "product.create"
	ProductUpdate Action = "product.update"
	ProductDelete Action = "product.delete"

	OrderCreate       Action = "order.create"
	OrderListAll      Action = "order.list_all"
	OrderListTenant   Action = "order.list_tenant"
	OrderUpdateStatus Action = "order.update_status"
	OrderDelete       Action = "order.delete"

	GenerateCopy Action = "ai.generate"
	UserManage   Action = "user.manage"
)

// tenantScoped actions are the ones a LOJISTA may perform on its own
// tenant. Everything else is ADMIN-only (or public, handled below).
var tenantScoped = map[Action]bool{
	TenantUpdate:      true,
	ProductCreate:     true,
	ProductUpdate:     true,
	ProductDelete:     true,
	OrderListTenant:   true,
	OrderUpdateStatus: true,
	GenerateCopy:      true,
}

// Authorize reports whether a caller with the given role and tenant may
// perform action on a resource owned by resourceTenantID. Unspecified
// role/action combinations are denied; nothing is allowed by default.
func Authorize(role user.Role, callerTenantID, resourceTenantID string, action Action) bool {
	// Checkout is publicly reachable, even unauthenticated.
	if action == OrderCreate {
		return true
	}

	switch role {
	case user.RoleAdmin:
		return true
	case user.RoleLojista:
		return tenantScoped[action] && callerTenantID != "" && callerTenantID == resourceTenantID
	default:
		return false
	}
}

// CanReadOrder reports whether a caller may read a single order.
// ADMIN reads everything, LOJISTA reads its own tenant's orders, and a
// CUSTOMER reads only orders it placed (matched by customer email).
func CanReadOrder(role user.Role, callerTenantID, callerEmail, orderTenantID, orderCustomerEmail string) bool {
	switch role {
	case user.RoleAdmin:
		return true
	case user.RoleLojista:
		return callerTenantID != "" && callerTenantID == orderTenantID
	case user.RoleCustomer:
		return callerEmail != "" && callerEmail == orderCustomerEmail
	default:
		return false
	}
}
