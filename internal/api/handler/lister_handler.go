package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rentwheels/rental-web/internal/api/flash"
	"github.com/rentwheels/rental-web/internal/api/middleware"
	"github.com/rentwheels/rental-web/internal/api/routepath"
	"github.com/rentwheels/rental-web/internal/api/web"
	"github.com/rentwheels/rental-web/internal/core/domain"
	"github.com/rentwheels/rental-web/internal/core/ports"
)

const (
	maxImages    = 10
	maxImageSize = 5 << 20
)

type ListerHandler struct {
	listerService ports.ListerService
	log           zerolog.Logger
}

func NewListerHandler(listerService ports.ListerService, log zerolog.Logger) *ListerHandler {
	return &ListerHandler{listerService: listerService, log: log}
}

type listerDashboardPage struct {
	Listings []domain.Listing
}

type carFormPage struct {
	Action  string
	Editing bool
	Form    carForm
}

// Dashboard lists the lister's cars, each with its current rental.
func (h *ListerHandler) Dashboard(c echo.Context) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}
	listings, err := h.listerService.Dashboard(c.Request().Context(), s.Token)
	if err != nil {
		return upstreamFailure(c, s, err)
	}
	return render(c, http.StatusOK, web.PageListerDashboard, web.Page{
		Title: "My cars",
		Data:  listerDashboardPage{Listings: listings},
	})
}

// NewCar renders an empty car form.
func (h *ListerHandler) NewCar(c echo.Context) error {
	return h.renderForm(c, http.StatusOK, "", carFormPage{
		Action: routepath.DashboardCars,
		Form:   carForm{Availability: true},
	})
}

// CreateCar lists a new car.
func (h *ListerHandler) CreateCar(c echo.Context) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}
	page := carFormPage{Action: routepath.DashboardCars}
	in, status, msg := h.readCar(c, s, &page.Form)
	if status != 0 {
		return h.renderForm(c, status, msg, page)
	}

	if err := h.listerService.AddCar(c.Request().Context(), s.Token, in); err != nil {
		return h.mutationFailure(c, s, err, page)
	}
	flash.Write(c, flash.Success("Car added."))
	return redirectAfterPost(c, routepath.Dashboard)
}

// EditCar renders the form pre-filled with the car's current values.
func (h *ListerHandler) EditCar(c echo.Context) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	car, err := h.listerService.Listing(c.Request().Context(), s.Token, id)
	if err != nil {
		return upstreamFailure(c, s, err)
	}
	return h.renderForm(c, http.StatusOK, "", carFormPage{
		Action:  routepath.Car(id),
		Editing: true,
		Form:    carFormFrom(*car),
	})
}

// UpdateCar saves changes to an existing car. New images are added only when
// files were chosen.
func (h *ListerHandler) UpdateCar(c echo.Context) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	page := carFormPage{Action: routepath.Car(id), Editing: true}
	in, status, msg := h.readCar(c, s, &page.Form)
	if status != 0 {
		return h.renderForm(c, status, msg, page)
	}

	if err := h.listerService.UpdateCar(c.Request().Context(), s.Token, id, in); err != nil {
		return h.mutationFailure(c, s, err, page)
	}
	flash.Write(c, flash.Success("Car updated."))
	return redirectAfterPost(c, routepath.Dashboard)
}

// DeleteCar removes a listing.
func (h *ListerHandler) DeleteCar(c echo.Context) error {
	s, err := sessionOf(c)
	if err != nil {
		return err
	}
	if err := h.listerService.DeleteCar(c.Request().Context(), s.Token, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return upstreamFailure(c, s, err)
		}
		if errors.Is(err, domain.ErrUpstream) {
			return err
		}
		flash.Write(c, flash.Error(userMessage(err, "Could not delete the car.")))
		return redirectAfterPost(c, routepath.Dashboard)
	}
	flash.Write(c, flash.Success("Car deleted."))
	return redirectAfterPost(c, routepath.Dashboard)
}

// readCar binds and validates the car form. A non-zero status means the form
// must be shown again with msg.
func (h *ListerHandler) readCar(c echo.Context, s middleware.Session, form *carForm) (domain.CarInput, int, string) {
	if err := c.Bind(form); err != nil {
		return domain.CarInput{}, http.StatusBadRequest, "The form could not be read."
	}
	if err := c.Validate(form); err != nil {
		return domain.CarInput{}, http.StatusUnprocessableEntity, err.Error()
	}
	images, err := readImages(c)
	if err != nil {
		return domain.CarInput{}, http.StatusUnprocessableEntity, userMessage(err, "The images could not be read.")
	}
	return form.input(s.Claims.Subject, images), 0, ""
}

func (h *ListerHandler) mutationFailure(c echo.Context, s middleware.Session, err error, page carFormPage) error {
	switch {
	case errors.Is(err, domain.ErrRejected), errors.Is(err, domain.ErrConflict):
		return h.renderForm(c, formStatus(err), userMessage(err, "The car could not be saved."), page)
	}
	h.log.Warn().Err(err).Msg("car mutation failed")
	return upstreamFailure(c, s, err)
}

func (h *ListerHandler) renderForm(c echo.Context, status int, msg string, page carFormPage) error {
	title := "Add car"
	if page.Editing {
		title = "Edit car"
	}
	return render(c, status, web.PageCarForm, web.Page{Title: title, Error: msg, Data: page})
}

// readImages collects the uploaded "images" files. A request that is not
// multipart carries no images.
func readImages(c echo.Context) ([]domain.ImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("read multipart form: %w", err)
	}

	var files []*multipart.FileHeader
	for _, fh := range form.File["images"] {
		// An untouched file input still submits one empty part.
		if fh.Filename == "" || fh.Size == 0 {
			continue
		}
		files = append(files, fh)
	}
	if len(files) > maxImages {
		return nil, domain.Reject("At most %d images can be uploaded", maxImages)
	}

	images := make([]domain.ImageUpload, 0, len(files))
	for _, fh := range files {
		img, err := readImage(fh)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func readImage(fh *multipart.FileHeader) (domain.ImageUpload, error) {
	if fh.Size > maxImageSize {
		return domain.ImageUpload{}, domain.Reject("%s is larger than %d MB", fh.Filename, maxImageSize>>20)
	}
	f, err := fh.Open()
	if err != nil {
		return domain.ImageUpload{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return domain.ImageUpload{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	if len(data) > maxImageSize {
		return domain.ImageUpload{}, domain.Reject("%s is larger than %d MB", fh.Filename, maxImageSize>>20)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return domain.ImageUpload{}, domain.Reject("%s is not an image", fh.Filename)
	}
	return domain.ImageUpload{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}
