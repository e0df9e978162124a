// Package endpoint lists the backend paths consumed by the app, relative
// to the mobile API base unless noted.
package endpoint

import (
	"net/url"
	"strconv"
)

const (
	AuthLogin   = "/auth/login"
	AuthLogout  = "/auth/logout"
	AuthRefresh = "/auth/refresh"
	AuthVerify  = "/auth/verify"

	UsersProfile       = "/users/profile"
	UsersUpdateProfile = "/users/profile/update"
	UsersTechnicians   = "/users/technicians"

	OrdersList       = "/orders"
	OrdersCreate     = "/orders"
	OrdersOpen       = "/orders/open"
	OrdersClosed     = "/orders/closed"
	OrdersStatistics = "/orders/statistics"

	ClientsList   = "/clients"
	ClientsSearch = "/clients/search"

	CustomersSearch = "/customers"

	WarehouseStock       = "/warehouse/stock"
	WarehouseOrders      = "/warehouse/orders"
	WarehouseCreateOrder = "/warehouse/orders/create"
	WarehouseUpdateStock = "/warehouse/stock/update"

	DashboardStats        = "/dashboard/stats"
	DashboardRecentOrders = "/dashboard/recent-orders"
)

func OrderDetail(id string) string { return "/orders/" + url.PathEscape(id) }
func OrderUpdate(id string) string { return "/orders/" + url.PathEscape(id) }
func OrderClose(id string) string  { return "/orders/" + url.PathEscape(id) + "/close" }

func ClientDetail(id string) string { return "/clients/" + url.PathEscape(id) }

// CompanyBranch lives on the root API, not under /mobile.
func CompanyBranch(organizationID, branchID string) string {
	return "/organizations/" + url.PathEscape(organizationID) + "/branches/" + url.PathEscape(branchID)
}

// Query accumulates optional query parameters. Empty values are skipped.
type Query struct {
	v url.Values
}

func NewQuery() *Query { return &Query{v: url.Values{}} }

// Set adds key=value when value is not empty.
func (q *Query) Set(key, value string) *Query {
	if value != "" {
		q.v.Set(key, value)
	}
	return q
}

// SetInt adds key=value when value is positive.
func (q *Query) SetInt(key string, value int) *Query {
	if value > 0 {
		q.v.Set(key, strconv.Itoa(value))
	}
	return q
}

// With appends the encoded query to path, or returns path unchanged when
// there are no parameters.
func (q *Query) With(path string) string {
	if len(q.v) == 0 {
		return path
	}
	return path + "?" + q.v.Encode()
}
