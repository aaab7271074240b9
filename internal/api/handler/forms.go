package handler

import (
	"strings"

	"github.com/rentwheels/rental-web/internal/core/domain"
)

type signupForm struct {
	Name     string `form:"name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Role     string `form:"role" validate:"required,oneof=Lister Renter"`
}

func (f *signupForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type carForm struct {
	Make         string  `form:"make" validate:"required,max=50"`
	Model        string  `form:"model" validate:"required,max=50"`
	Year         int     `form:"year" validate:"required,gte=1900,lte=2100"`
	Price        float64 `form:"price" validate:"required,gt=0"`
	Availability bool    `form:"availability"`
}

func carFormFrom(car domain.Car) carForm {
	return carForm{
		Make:         car.Make,
		Model:        car.Model,
		Year:         car.Year,
		Price:        car.Price,
		Availability: car.Availability,
	}
}

func (f carForm) input(listedBy string, images []domain.ImageUpload) domain.CarInput {
	return domain.CarInput{
		Make:         strings.TrimSpace(f.Make),
		Model:        strings.TrimSpace(f.Model),
		Year:         f.Year,
		Price:        f.Price,
		Availability: f.Availability,
		ListedBy:     listedBy,
		Images:       images,
	}
}

type rentalForm struct {
	StartDate string `form:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `form:"endDate" validate:"required,datetime=2006-01-02"`
	Phone     string `form:"phone" validate:"required,max=30"`
	Email     string `form:"email" validate:"required,email"`
}

func (f rentalForm) request(carID string) domain.RentalRequest {
	return domain.RentalRequest{
		CarID:     carID,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		ContactInfo: domain.ContactInfo{
			Phone: strings.TrimSpace(f.Phone),
			Email: strings.TrimSpace(f.Email),
		},
	}
}
