// Package routepath holds the URL paths the router binds and the handlers
// redirect to.
package routepath

import "net/url"

const (
	Root      = "/"
	Login     = "/login"
	Signup    = "/signup"
	Logout    = "/logout"
	Session   = "/session"
	Dashboard = "/dashboard"

	DashboardCars = "/dashboard/cars"
	NewCar        = "/dashboard/cars/new"
	CarPattern    = "/dashboard/cars/:id"
	EditCar       = "/dashboard/cars/:id/edit"
	DeleteCar     = "/dashboard/cars/:id/delete"
	RentCar       = "/cars/:id/rent"

	Health  = "/health"
	Ready   = "/health/ready"
	Metrics = "/metrics"
	Static  = "/static"
)

// Car returns the update path for car id.
func Car(id string) string {
	return DashboardCars + "/" + url.PathEscape(id)
}

// CarEdit returns the edit form path for car id.
func CarEdit(id string) string {
	return Car(id) + "/edit"
}

// CarDelete returns the delete path for car id.
func CarDelete(id string) string {
	return Car(id) + "/delete"
}

// Rent returns the booking form path for car id.
func Rent(id string) string {
	return "/cars/" + url.PathEscape(id) + "/rent"
}
