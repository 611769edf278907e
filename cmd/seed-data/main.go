// Command seed-data generates synthetic rainfall and groundwater CSV tables
// plus a matching linear model artifact, for local development and demos.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Default generation constants.
const (
	defaultMonths    = 36
	defaultStartYear = 2021
	defaultSeed      = 42

	baseRainfallMM = 80.0
	rainfallAmp    = 60.0
	rainfallNoise  = 15.0
	baseDepthM     = 6.0
	depthRainCoeff = -0.01
	depthLagCoeff  = 0.9
	depthNoise     = 0.2
	monthsPerYear  = 12
)

var states = map[string][]string{
	"Maharashtra": {"Mumbai", "Pune", "Nagpur"},
	"Karnataka":   {"Bengaluru", "Mysuru", "Hubballi"},
	"Tamil Nadu":  {"Chennai", "Coimbatore", "Madurai"},
	"Rajasthan":   {"Jaipur", "Jodhpur", "Udaipur"},
}

func main() {
	var (
		outDir    = flag.String("out", "data", "Output directory for CSV tables")
		modelPath = flag.String("model", "models/groundwater_predictor.json", "Output path for the model artifact")
		months    = flag.Int("months", defaultMonths, "Number of months to generate")
		startYear = flag.Int("start", defaultStartYear, "First year of the series")
		seed      = flag.Int64("seed", defaultSeed, "Random seed")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fatal("create output directory: " + err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(*modelPath), 0o755); err != nil {
		fatal("create model directory: " + err.Error())
	}

	if err := writeTables(*outDir, *startYear, *months, rng); err != nil {
		fatal(err.Error())
	}
	if err := writeModel(*modelPath); err != nil {
		fatal(err.Error())
	}

	fmt.Printf("wrote %s/rainfall.csv, %s/groundwater.csv, %s\n", *outDir, *outDir, *modelPath)
}

func writeTables(dir string, startYear, months int, rng *rand.Rand) error {
	rainFile, err := os.Create(filepath.Join(dir, "rainfall.csv"))
	if err != nil {
		return fmt.Errorf("create rainfall table: %w", err)
	}
	defer rainFile.Close()

	gwFile, err := os.Create(filepath.Join(dir, "groundwater.csv"))
	if err != nil {
		return fmt.Errorf("create groundwater table: %w", err)
	}
	defer gwFile.Close()

	rain := csv.NewWriter(rainFile)
	gw := csv.NewWriter(gwFile)
	defer rain.Flush()
	defer gw.Flush()

	if err := rain.Write([]string{"state_name", "year_month", "rainfall_actual_mm"}); err != nil {
		return fmt.Errorf("write rainfall header: %w", err)
	}
	if err := gw.Write([]string{"state_name", "district_name", "year_month", "gw_level_m_bgl"}); err != nil {
		return fmt.Errorf("write groundwater header: %w", err)
	}

	for state, districts := range states {
		depth := make(map[string]float64, len(districts))
		for _, d := range districts {
			depth[d] = baseDepthM + rng.Float64()*2
		}

		for i := 0; i < months; i++ {
			year := startYear + i/monthsPerYear
			month := i%monthsPerYear + 1
			period := fmt.Sprintf("%04d-%02d", year, month)

			// Monsoon-shaped rainfall with noise.
			seasonal := rainfallAmp * math.Sin(2*math.Pi*float64(month)/monthsPerYear)
			mm := baseRainfallMM + seasonal + rng.NormFloat64()*rainfallNoise
			if mm < 0 {
				mm = 0
			}
			if err := rain.Write([]string{state, period, format(mm)}); err != nil {
				return fmt.Errorf("write rainfall row: %w", err)
			}

			// Depth responds to rainfall and its own lag.
			for _, d := range districts {
				next := baseDepthM*(1-depthLagCoeff) + depthLagCoeff*depth[d] + depthRainCoeff*(mm-baseRainfallMM)
				next += rng.NormFloat64() * depthNoise
				if next < 0.5 {
					next = 0.5
				}
				depth[d] = next
				if err := gw.Write([]string{state, d, period, format(next)}); err != nil {
					return fmt.Errorf("write groundwater row: %w", err)
				}
			}
		}
	}

	rain.Flush()
	gw.Flush()
	if err := rain.Error(); err != nil {
		return fmt.Errorf("flush rainfall table: %w", err)
	}
	if err := gw.Error(); err != nil {
		return fmt.Errorf("flush groundwater table: %w", err)
	}
	return nil
}

// writeModel emits coefficients consistent with the generator dynamics, so
// predictions over seeded data look plausible.
func writeModel(path string) error {
	artifact := struct {
		Intercept    float64   `json:"intercept"`
		Coefficients []float64 `json:"coefficients"`
	}{
		Intercept:    baseDepthM * (1 - depthLagCoeff),
		Coefficients: []float64{depthRainCoeff, depthLagCoeff},
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model artifact: %w", err)
	}
	return nil
}

func format(v float64) string {
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v, 'f', 2, 64), "0"), ".")
}

func fatal(msg string) {
	os.Stderr.WriteString(msg + "\n")
	os.Exit(1)
}
