package estimator

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"
)

var ErrModelNotLoaded = errors.New("Model not loaded")

// Model is the exported linear-regression artifact: an intercept, weights
// for the numeric features, and one-hot weights per categorical level. A
// trained linear model reduces to exactly this once serialized.
type Model struct {
	Intercept      float64            `json:"intercept"`
	YearWeight     float64            `json:"year_weight"`
	KmsWeight      float64            `json:"kms_weight"`
	NameWeights    map[string]float64 `json:"name_weights"`
	CompanyWeights map[string]float64 `json:"company_weights"`
	FuelWeights    map[string]float64 `json:"fuel_weights"`
}

// Service scores price estimates and serves the dropdown vocabularies
// derived from the cleaned dataset. A missing artifact or dataset leaves
// the service disabled rather than failing startup.
type Service struct {
	model         *Model
	companies     []string
	companyModels map[string][]string
	fuelTypes     []string
	years         []int
}

// Load reads the model artifact and dataset. Either may be absent; the
// corresponding capability is disabled and a warning logged.
func Load(modelPath, datasetPath string) *Service {
	s := &Service{companyModels: map[string][]string{}}

	if b, err := os.ReadFile(modelPath); err == nil {
		var m Model
		if err := json.Unmarshal(b, &m); err == nil {
			s.model = &m
		} else {
			log.Warn().Str("path", modelPath).Err(err).Msg("price model artifact unreadable")
		}
	} else {
		log.Warn().Str("path", modelPath).Msg("price model artifact missing; predictions disabled")
	}

	if err := s.loadDataset(datasetPath); err != nil {
		log.Warn().Str("path", datasetPath).Err(err).Msg("car dataset missing; dropdown options empty")
	}
	return s
}

func (s *Service) loadDataset(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return err
	}
	col := map[string]int{}
	for i, h := range header {
		col[h] = i
	}
	nameIdx, ok1 := col["name"]
	companyIdx, ok2 := col["company"]
	yearIdx, ok3 := col["year"]
	fuelIdx, ok4 := col["fuel_type"]
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return errors.New("dataset missing expected columns")
	}

	companySet := map[string]bool{}
	modelSet := map[string]map[string]bool{}
	fuelSet := map[string]bool{}
	yearSet := map[int]bool{}
	for {
		rec, err := r.Read()
		if err != nil {
			break
		}
		company := rec[companyIdx]
		companySet[company] = true
		if modelSet[company] == nil {
			modelSet[company] = map[string]bool{}
		}
		modelSet[company][rec[nameIdx]] = true
		fuelSet[rec[fuelIdx]] = true
		if y, err := strconv.Atoi(rec[yearIdx]); err == nil {
			yearSet[y] = true
		}
	}

	s.companies = sortedKeys(companySet)
	for company, names := range modelSet {
		s.companyModels[company] = sortedKeys(names)
	}
	s.fuelTypes = sortedKeys(fuelSet)
	for y := range yearSet {
		s.years = append(s.years, y)
	}
	sort.Ints(s.years)
	return nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Ready reports whether a model artifact was loaded.
func (s *Service) Ready() bool {
	return s.model != nil
}

func (s *Service) Companies() []string { return s.companies }
func (s *Service) FuelTypes() []string { return s.fuelTypes }
func (s *Service) Years() []int        { return s.years }

// ModelsFor returns the known model names for a company (empty if unknown).
func (s *Service) ModelsFor(company string) []string {
	return s.companyModels[company]
}

// PredictInput mirrors the estimator form fields.
type PredictInput struct {
	Company   string `json:"company"`
	CarModel  string `json:"car_model"`
	Year      int    `json:"year"`
	KmsDriven int    `json:"kms_driven"`
	FuelType  string `json:"fuel_type"`
}

// Predict scores one input. Unknown categorical levels contribute zero,
// matching the one-hot encoding of unseen values. A negative estimate means
// the car has no resale value; callers surface that as a message, not an
// error.
func (s *Service) Predict(in PredictInput) (float64, error) {
	if s.model == nil {
		return 0, ErrModelNotLoaded
	}
	if in.Company == "" || in.CarModel == "" || in.FuelType == "" || in.Year == 0 {
		return 0, errors.New("All fields are required")
	}
	m := s.model
	price := m.Intercept +
		m.YearWeight*float64(in.Year) +
		m.KmsWeight*float64(in.KmsDriven) +
		m.NameWeights[in.CarModel] +
		m.CompanyWeights[in.Company] +
		m.FuelWeights[in.FuelType]
	return price, nil
}
