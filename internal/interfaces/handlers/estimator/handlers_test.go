package estimator

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	estsvc "automind-backend/internal/application/estimator"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEstimatorApp(t *testing.T, withModel bool) *fiber.App {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "price_model.json")
	datasetPath := filepath.Join(dir, "cleaned_car.csv")

	if withModel {
		model := `{"intercept": -1000000, "year_weight": 500, "kms_weight": -2,
			"name_weights": {"Civic": 250000}, "company_weights": {"Honda": 50000},
			"fuel_weights": {"Petrol": 10000}}`
		require.NoError(t, os.WriteFile(modelPath, []byte(model), 0o644))
		dataset := "name,company,year,Price,kms_driven,fuel_type\nCivic,Honda,2019,800000,30000,Petrol\n"
		require.NoError(t, os.WriteFile(datasetPath, []byte(dataset), 0o644))
	}

	h := &Handlers{Service: estsvc.Load(modelPath, datasetPath)}
	app := fiber.New()
	app.Get("/options", h.Options)
	app.Get("/models/:company", h.Models)
	app.Post("/predict", h.Predict)
	return app
}

func TestOptions(t *testing.T) {
	app := setupEstimatorApp(t, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/options", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, true, data["ready"])
	assert.Equal(t, []interface{}{"Honda"}, data["companies"])
}

func TestPredict_Value(t *testing.T) {
	app := setupEstimatorApp(t, true)

	body, _ := json.Marshal(map[string]interface{}{
		"company": "Honda", "car_model": "Civic", "year": 2019,
		"kms_driven": 30000, "fuel_type": "Petrol",
	})
	req := httptest.NewRequest("POST", "/predict", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data := result["data"].(map[string]interface{})
	assert.Greater(t, data["price"].(float64), 0.0)
	assert.Contains(t, data["formatted"], "₹")
}

func TestPredict_NoResaleValue(t *testing.T) {
	app := setupEstimatorApp(t, true)

	body, _ := json.Marshal(map[string]interface{}{
		"company": "Honda", "car_model": "Civic", "year": 2019,
		"kms_driven": 900000, "fuel_type": "Petrol",
	})
	req := httptest.NewRequest("POST", "/predict", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["price"])
	assert.NotEmpty(t, data["message"])
}

func TestPredict_ModelNotLoaded(t *testing.T) {
	app := setupEstimatorApp(t, false)

	body, _ := json.Marshal(map[string]interface{}{
		"company": "Honda", "car_model": "Civic", "year": 2019,
		"kms_driven": 30000, "fuel_type": "Petrol",
	})
	req := httptest.NewRequest("POST", "/predict", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestPredict_MissingFields(t *testing.T) {
	app := setupEstimatorApp(t, true)

	body, _ := json.Marshal(map[string]interface{}{"company": "Honda"})
	req := httptest.NewRequest("POST", "/predict", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
