package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	service "github.com/hydrosense/hydrosense/internal/app"
	"github.com/hydrosense/hydrosense/internal/domain/dataset"
	"github.com/hydrosense/hydrosense/internal/domain/predictor"
	"github.com/hydrosense/hydrosense/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const (
	rainfallCSV = `state_name,year_month,rainfall_actual_mm
Maharashtra,2023-01,45.0
Maharashtra,2023-02,55.0
Karnataka,2023-01,80.0
`
	groundwaterCSV = `state_name,district_name,year_month,gw_level_m_bgl
Maharashtra,Pune,2023-01,5.2
Maharashtra,Pune,2023-02,5.4
Karnataka,Bengaluru,2023-01,7.1
`
	modelJSON = `{"intercept": 2.0, "coefficients": [-0.01, 0.9]}`
)

func loadedStore(t *testing.T) *dataset.Store {
	t.Helper()
	store, err := dataset.Load(strings.NewReader(rainfallCSV), strings.NewReader(groundwaterCSV))
	if err != nil {
		t.Fatalf("load fixture dataset: %v", err)
	}
	return store
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a service over an injected store", t, func() {
		svc := service.New(
			service.WithStore(loadedStore(t)),
			service.WithModelPath(""),
		)
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And the stats should reflect the dataset", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["rainfallRows"], ShouldEqual, 3)
				So(stats["groundwaterRows"], ShouldEqual, 3)
				So(stats["states"], ShouldEqual, 2)
				So(stats["modelLoaded"], ShouldBeFalse)
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})
	})

	Convey("Given CSV tables and a model artifact on disk", t, func() {
		dir := t.TempDir()
		rainPath := filepath.Join(dir, "rainfall.csv")
		gwPath := filepath.Join(dir, "groundwater.csv")
		modelPath := filepath.Join(dir, "model.json")
		So(os.WriteFile(rainPath, []byte(rainfallCSV), 0o600), ShouldBeNil)
		So(os.WriteFile(gwPath, []byte(groundwaterCSV), 0o600), ShouldBeNil)
		So(os.WriteFile(modelPath, []byte(modelJSON), 0o600), ShouldBeNil)

		svc := service.New(
			service.WithRainfallPath(rainPath),
			service.WithGroundwaterPath(gwPath),
			service.WithModelPath(modelPath),
		)
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then the dataset and model should load", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["modelLoaded"], ShouldBeTrue)
			})
		})
	})

	Convey("Given a missing rainfall table", t, func() {
		svc := service.New(
			service.WithRainfallPath(filepath.Join(t.TempDir(), "absent.csv")),
		)

		Convey("Then Start should fail", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
		})
	})

	Convey("Given a broken model artifact", t, func() {
		dir := t.TempDir()
		rainPath := filepath.Join(dir, "rainfall.csv")
		gwPath := filepath.Join(dir, "groundwater.csv")
		modelPath := filepath.Join(dir, "model.json")
		So(os.WriteFile(rainPath, []byte(rainfallCSV), 0o600), ShouldBeNil)
		So(os.WriteFile(gwPath, []byte(groundwaterCSV), 0o600), ShouldBeNil)
		So(os.WriteFile(modelPath, []byte(`{"intercept": "nope"}`), 0o600), ShouldBeNil)

		svc := service.New(
			service.WithRainfallPath(rainPath),
			service.WithGroundwaterPath(gwPath),
			service.WithModelPath(modelPath),
		)
		defer svc.Stop()

		Convey("Then Start should degrade instead of failing", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.GetStats()["modelLoaded"], ShouldBeFalse)
		})
	})
}

func TestService_Answer(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(
			service.WithStore(loadedStore(t)),
			service.WithModelPath(""),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("When asking for rainfall", func() {
			reply, err := svc.Answer(context.Background(), "s1", "rainfall in maharashtra for 01-2023")

			Convey("Then the reply should carry the value", func() {
				So(err, ShouldBeNil)
				So(reply, ShouldContainSubstring, "45.00 mm")
			})
		})

		Convey("When a session asks about a different state on a later turn", func() {
			_, err := svc.Answer(context.Background(), "s2", "rainfall in karnataka for 01-2023")
			So(err, ShouldBeNil)

			reply, err := svc.Answer(context.Background(), "s2", "rainfall in maharashtra for 01-2023")

			Convey("Then the reply should reflect that turn, not the earlier one", func() {
				So(err, ShouldBeNil)
				So(reply, ShouldContainSubstring, "Maharashtra")
				So(reply, ShouldContainSubstring, "45.00 mm")
			})
		})

		Convey("When the service is stopped", func() {
			svc.Stop()
			_, err := svc.Answer(context.Background(), "s3", "hello")

			Convey("Then Answer should refuse", func() {
				So(err, ShouldEqual, service.ErrNotStarted)
			})
		})
	})
}

func TestService_PredictPoint(t *testing.T) {
	Convey("Given a service without a model", t, func() {
		svc := service.New(
			service.WithStore(loadedStore(t)),
			service.WithModelPath(""),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then PredictPoint should report the model as unavailable", func() {
			_, err := svc.PredictPoint(context.Background(), 100, 5)
			So(err, ShouldEqual, predictor.ErrUnavailable)
		})
	})

	Convey("Given a service with a linear model", t, func() {
		model, err := predictor.ReadModel(strings.NewReader(modelJSON))
		So(err, ShouldBeNil)

		svc := service.New(
			service.WithStore(loadedStore(t)),
			service.WithPredictor(model),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then PredictPoint should apply the coefficients", func() {
			got, err := svc.PredictPoint(context.Background(), 100, 5)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, 5.5)
		})
	})
}

func TestService_Listings(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(
			service.WithStore(loadedStore(t)),
			service.WithModelPath(""),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then the vocabulary listings should be populated", func() {
			states, err := svc.ListStates(context.Background())
			So(err, ShouldBeNil)
			So(states, ShouldResemble, []string{"karnataka", "maharashtra"})

			districts, err := svc.ListDistricts(context.Background(), "Maharashtra")
			So(err, ShouldBeNil)
			So(districts, ShouldResemble, []string{"pune"})

			periods, err := svc.ListPeriods(context.Background())
			So(err, ShouldBeNil)
			So(periods, ShouldResemble, []string{"2023-01", "2023-02"})
		})

		Convey("Then the timeseries should merge both tables", func() {
			rows, err := svc.Timeseries(context.Background(), "maharashtra")
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 2)
			So(rows[0].Period, ShouldEqual, "2023-01")
		})
	})
}
