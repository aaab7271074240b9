package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-web/internal/api/flash"
	"github.com/rentwheels/rental-web/internal/api/routepath"
	"github.com/rentwheels/rental-web/internal/api/web"
	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
	"github.com/rentwheels/rental-web/internal/core/service"
)

type RenterHandler struct {
	renterService ports.RenterService
	log           zerolog.Logger
}

func NewRenterHandler(renterService ports.RenterService, log zerolog.Logger) *RenterHandler {
	return &RenterHandler{renterService: renterService, log: log}
}

type catalogPage struct {
	Cars []domain.Car
}

type rentPage struct {
	Car  domain.Car
	Form rentalForm
}

// Dashboard renders the public catalog.
func (h *RenterHandler) Dashboard(c echo.Context) error {
	cars, err := h.renterService.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, web.PageRenterDashboard, web.Page{
		Title: "Browse cars",
		Data:  catalogPage{Cars: cars},
	})
}

// RentForm renders the booking form for one car.
func (h *RenterHandler) RentForm(c echo.Context) error {
	car, err := h.renterService.Car(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, web.PageRent, web.Page{
		Title: "Rent " + car.Make + " " + car.Model,
		Data:  rentPage{Car: *car},
	})
}

// Rent submits a booking for the current renter.
func (h *RenterHandler) Rent(c echo.Context) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	car, err := h.renterService.Car(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	var form rentalForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	fail := func(status int, msg string) error {
		return render(c, status, web.PageRent, web.Page{
			Title: "Rent " + car.Make + " " + car.Model,
			Error: msg,
			Data:  rentPage{Car: *car, Form: form},
		})
	}
	if err := c.Validate(&form); err != nil {
		return fail(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.renterService.Book(ctx, s.Token, s.Claims.Subject, form.request(car.ID)); err != nil {
		if service.IsBookingRejection(err) {
			return fail(formStatus(err), userMessage(err, "Failed to rent car"))
		}
		h.log.Warn().Err(err).Str("car_id", car.ID).Msg("booking failed")
		return upstreamFailure(c, s, err)
	}

	flash.Write(c, flash.Success("Car rented successfully"))
	return redirectAfterPost(c, routepath.Root)
}
