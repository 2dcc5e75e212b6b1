package estimator

import (
	"fmt"

	estsvc "automind-backend/internal/application/estimator"
	"automind-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *estsvc.Service
}

// GET /api/v1/estimator/options — dropdown vocabularies for the estimate form
func (h *Handlers) Options(c *fiber.Ctx) error {
	return response.Success(c, "Estimator options fetched", fiber.Map{
		"companies":  h.Service.Companies(),
		"fuel_types": h.Service.FuelTypes(),
		"years":      h.Service.Years(),
		"ready":      h.Service.Ready(),
	}, nil)
}

// GET /api/v1/estimator/models/:company
func (h *Handlers) Models(c *fiber.Ctx) error {
	company := c.Params("company")
	if company == "" {
		return response.ErrorKind(c, "company is required", fiber.StatusBadRequest, response.KindValidationError)
	}
	return response.Success(c, "Models fetched", fiber.Map{
		"models": h.Service.ModelsFor(company),
	}, nil)
}

// POST /api/v1/estimator/predict
func (h *Handlers) Predict(c *fiber.Ctx) error {
	var body struct {
		Company   string  `json:"company"`
		CarModel  string  `json:"car_model"`
		Year      int     `json:"year"`
		KmsDriven int     `json:"kms_driven"`
		FuelType  string  `json:"fuel_type"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.ErrorKind(c, "Invalid request body", fiber.StatusBadRequest, response.KindValidationError)
	}
	if body.Company == "" || body.CarModel == "" || body.FuelType == "" || body.Year == 0 {
		return response.ErrorKind(c, "company, car_model, year and fuel_type are required", fiber.StatusBadRequest, response.KindValidationError)
	}

	price, err := h.Service.Predict(estsvc.PredictInput{
		Company:   body.Company,
		CarModel:  body.CarModel,
		Year:      body.Year,
		KmsDriven: body.KmsDriven,
		FuelType:  body.FuelType,
	})
	if err != nil {
		if err == estsvc.ErrModelNotLoaded {
			return response.Error(c, err.Error(), fiber.StatusServiceUnavailable, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	if price < 0 {
		return response.Success(c, "Prediction complete", fiber.Map{
			"price":   0,
			"message": "This car has little to no resale value",
		}, nil)
	}
	return response.Success(c, "Prediction complete", fiber.Map{
		"price":     price,
		"formatted": fmt.Sprintf("₹ %.2f", price),
	}, nil)
}
