package domain

// Rental is a booking as reported to the lister.
type Rental struct {
	ID            string `json:"_id"`
	CarID         string `json:"carId"`
	RenterName    string `json:"renterName"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	PaymentStatus string `json:"paymentStatus"`
}

// ContactInfo is how the lister can reach the renter.
type ContactInfo struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// RentalRequest is a renter's booking submission. Dates are YYYY-MM-DD.
type RentalRequest struct {
	CarID       string      `json:"carId"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	ContactInfo ContactInfo `json:"contactInfo"`
}
