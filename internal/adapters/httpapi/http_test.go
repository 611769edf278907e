package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hydrosense/hydrosense/internal/adapters/httpapi"
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

// Mock implementation of the handler dependencies.
type mockDeps struct {
	answers    map[string]string
	answerErr  error
	prediction float64
	predictErr error
	states     []string
	districts  map[string][]string
	months     []string
	rows       []dataset.TimeseriesRow

	lastSessionID string
}

func (m *mockDeps) Answer(_ context.Context, sessionID, text string) (string, error) {
	m.lastSessionID = sessionID
	if m.answerErr != nil {
		return "", m.answerErr
	}
	return m.answers[text], nil
}

func (m *mockDeps) PredictPoint(_ context.Context, rainfallMM, lagLevel float64) (float64, error) {
	if m.predictErr != nil {
		return 0, m.predictErr
	}
	return m.prediction, nil
}

func (m *mockDeps) ListStates(context.Context) ([]string, error) {
	return m.states, nil
}

func (m *mockDeps) ListDistricts(_ context.Context, state string) ([]string, error) {
	return m.districts[state], nil
}

func (m *mockDeps) ListPeriods(context.Context) ([]string, error) {
	return m.months, nil
}

func (m *mockDeps) Timeseries(_ context.Context, state string) ([]dataset.TimeseriesRow, error) {
	return m.rows, nil
}

type mockStats struct {
	stats map[string]interface{}
}

func (m *mockStats) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps *mockDeps, stats *mockStats) *http.ServeMux {
	mux := http.NewServeMux()
	httpapi.NewServer(deps, stats).Register(context.Background(), mux)
	return mux
}

func TestChatEndpoint(t *testing.T) {
	Convey("Given the chat endpoint", t, func() {
		deps := &mockDeps{answers: map[string]string{"hello": "Hello! I can help with water data."}}
		mux := newMux(deps, &mockStats{})

		Convey("When posting a message with a session id", func() {
			body := `{"session_id": "abc", "message": "hello"}`
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body)))

			Convey("Then the reply should come back on the same session", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					SessionID string `json:"session_id"`
					Reply     string `json:"reply"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.SessionID, ShouldEqual, "abc")
				So(resp.Reply, ShouldContainSubstring, "water data")
				So(deps.lastSessionID, ShouldEqual, "abc")
			})
		})

		Convey("When posting without a session id", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message": "hello"}`)))

			Convey("Then a fresh session id should be minted", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					SessionID string `json:"session_id"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.SessionID, ShouldNotBeEmpty)
				So(deps.lastSessionID, ShouldEqual, resp.SessionID)
			})
		})

		Convey("When posting an empty message", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message": "  "}`)))

			Convey("Then the request should be rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting malformed JSON", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{`)))

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using the wrong method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat", nil))

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the service is not ready", func() {
			deps.answerErr = errors.New("service not started")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message": "hello"}`)))

			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestCatalogEndpoints(t *testing.T) {
	Convey("Given the catalog endpoints", t, func() {
		deps := &mockDeps{
			states:    []string{"karnataka", "maharashtra"},
			districts: map[string][]string{"maharashtra": {"mumbai", "pune"}},
			months:    []string{"2023-01", "2023-02"},
		}
		mux := newMux(deps, &mockStats{})

		Convey("When listing states", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/states", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			var resp map[string][]string
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["states"], ShouldResemble, []string{"karnataka", "maharashtra"})
		})

		Convey("When listing districts for a state", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/districts?state=maharashtra", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			var resp map[string][]string
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["districts"], ShouldResemble, []string{"mumbai", "pune"})
		})

		Convey("When listing districts without a state", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/districts", nil))

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When listing months", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/months", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			var resp map[string][]string
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["months"], ShouldResemble, []string{"2023-01", "2023-02"})
		})
	})
}

func TestPredictEndpoint(t *testing.T) {
	Convey("Given the predict endpoint", t, func() {
		deps := &mockDeps{prediction: 5.5}
		mux := newMux(deps, &mockStats{})

		Convey("When both parameters are valid", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/predict?rainfall=100&lag_gw=5", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			var resp struct {
				PredictedLevel float64 `json:"predicted_gw_level_m_bgl"`
				RainfallMM     float64 `json:"rainfall_mm"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.PredictedLevel, ShouldEqual, 5.5)
			So(resp.RainfallMM, ShouldEqual, 100)
		})

		Convey("When a parameter is not a number", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/predict?rainfall=wet&lag_gw=5", nil))

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a parameter is missing", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/predict?rainfall=100", nil))

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the model is unavailable", func() {
			deps.predictErr = predictor.ErrUnavailable
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/predict?rainfall=100&lag_gw=5", nil))

			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
			var resp struct {
				Code string `json:"code"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Code, ShouldEqual, "model_unavailable")
		})
	})
}

func TestTimeseriesEndpoint(t *testing.T) {
	Convey("Given the timeseries endpoint", t, func() {
		deps := &mockDeps{rows: []dataset.TimeseriesRow{
			{Period: "2023-01", RainfallMM: 45, GroundwaterM: 5.2},
			{Period: "2023-02", RainfallMM: 55, GroundwaterM: 5.4},
		}}
		mux := newMux(deps, &mockStats{})

		Convey("When a state is given", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/timeseries?state=maharashtra", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			var resp struct {
				State string `json:"state"`
				Rows  []struct {
					Period     string  `json:"year_month"`
					RainfallMM float64 `json:"rainfall_actual_mm"`
					Depth      float64 `json:"gw_level_m_bgl"`
				} `json:"rows"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.State, ShouldEqual, "maharashtra")
			So(len(resp.Rows), ShouldEqual, 2)
			So(resp.Rows[0].Period, ShouldEqual, "2023-01")
			So(resp.Rows[1].Depth, ShouldEqual, 5.4)
		})

		Convey("When the state is missing", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/timeseries", nil))

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given the operational endpoints", t, func() {
		mux := newMux(&mockDeps{}, &mockStats{stats: map[string]interface{}{"started": true}})

		Convey("When checking health", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"ok"`)
		})

		Convey("When fetching stats", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			var resp map[string]interface{}
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp["started"], ShouldEqual, true)
		})

		Convey("When scraping metrics", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}
