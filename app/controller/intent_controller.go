package controller

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"adrija-tours/models"
	"adrija-tours/service"
)

// IntentController handles the site's form submissions
type IntentController struct {
	intents *service.IntentService
}

// NewIntentController creates a new IntentController
func NewIntentController(intents *service.IntentService) *IntentController {
	return &IntentController{intents: intents}
}

// Enquiry handles POST /api/intents/enquiry
func (ic *IntentController) Enquiry(c echo.Context) error {
	return submit(c, "Enquiry", ic.intents.SubmitEnquiry)
}

// HotelEnquiry handles POST /api/intents/hotel-enquiry
func (ic *IntentController) HotelEnquiry(c echo.Context) error {
	return submit(c, "HotelEnquiry", ic.intents.SubmitHotelEnquiry)
}

// AddToCart handles POST /api/intents/cart
func (ic *IntentController) AddToCart(c echo.Context) error {
	return submit(c, "AddToCart", ic.intents.AddToCart)
}

// CustomTrip handles POST /api/intents/custom-trip
func (ic *IntentController) CustomTrip(c echo.Context) error {
	return submit(c, "CustomTrip", ic.intents.SubmitCustomTrip)
}

func submit[R any](c echo.Context, op string, handle func(context.Context, R) (*models.IntentResponse, error)) error {
	var req R
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "", "Invalid request body: %v", err)
	}

	resp, err := handle(c.Request().Context(), req)
	if err != nil {
		return respondError(c, op, err)
	}
	return c.JSON(http.StatusAccepted, resp)
}
