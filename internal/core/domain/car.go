package domain

// Car is a listing as returned by the rental API.
type Car struct {
	ID            string   `json:"_id"`
	Make          string   `json:"make"`
	Model         string   `json:"model"`
	Year          int      `json:"year"`
	Price         float64  `json:"price"`
	Availability  bool     `json:"availability"`
	Images        []string `json:"images"`
	ListedBy      string   `json:"listedBy,omitempty"`
	PaymentStatus string   `json:"paymentStatus,omitempty"`
}

// CarInput carries the fields a lister submits when adding or editing a car.
type CarInput struct {
	Make         string
	Model        string
	Year         int
	Price        float64
	Availability bool
	ListedBy     string
	Images       []ImageUpload
}

// ImageUpload is one image file attached to a CarInput.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Listing is a lister's car together with its current rental, if any.
type Listing struct {
	Car    Car
	Rental *Rental
}
