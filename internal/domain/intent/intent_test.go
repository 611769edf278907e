package intent_test

import (
	"testing"

	"github.com/hydrosense/hydrosense/internal/domain/intent"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRoute(t *testing.T) {
	Convey("Given the intent router", t, func() {
		Convey("When routing single-intent texts", func() {
			cases := []struct {
				text string
				want intent.Intent
			}{
				{"Hello there", intent.Greeting},
				{"good morning", intent.Greeting},
				{"what can you do?", intent.Help},
				{"future rainfall forecast for maharashtra", intent.FuturePrediction},
				{"estimate rainfall for delhi for 2025", intent.FuturePrediction},
				{"predict groundwater level for karnataka with 120mm rainfall", intent.MLPrediction},
				{"what will be the water level?", intent.MLPrediction},
				{"rainfall in maharashtra", intent.RainfallQuery},
				{"show precipitation data", intent.RainfallQuery},
				{"groundwater levels in delhi", intent.GroundwaterQuery},
				{"gw level in pune", intent.GroundwaterQuery},
				{"maharashtra vs karnataka", intent.Comparison},
				{"how has it changed over time", intent.Trend},
				{"show me districts in maharashtra", intent.DistrictListing},
				{"tell me a joke", intent.Default},
				{"", intent.Default},
			}

			for _, tc := range cases {
				Convey("Then "+tc.text+" routes to "+tc.want.String(), func() {
					So(intent.Route(tc.text), ShouldEqual, tc.want)
				})
			}
		})

		Convey("When a text carries both forecast and rainfall keywords", func() {
			got := intent.Route("rainfall forecast for maharashtra")

			Convey("Then forecasting wins over the plain rainfall query", func() {
				So(got, ShouldEqual, intent.FuturePrediction)
			})
		})

		Convey("When a text carries both forecast and predict keywords", func() {
			got := intent.Route("predict the future rainfall")

			Convey("Then trend forecasting outranks point prediction", func() {
				So(got, ShouldEqual, intent.FuturePrediction)
			})
		})

		Convey("When a greeting text also mentions data", func() {
			got := intent.Route("hi, rainfall in delhi please")

			Convey("Then greeting wins by precedence", func() {
				So(got, ShouldEqual, intent.Greeting)
			})
		})

		Convey("When a location name embeds a greeting keyword", func() {
			got := intent.Route("Predict groundwater level for Delhi with 100mm rainfall")

			Convey("Then the embedded 'hi' in 'delhi' does not trigger a greeting", func() {
				So(got, ShouldEqual, intent.MLPrediction)
			})
		})

		Convey("When routing the same text twice", func() {
			first := intent.Route("groundwater trends in karnataka")
			second := intent.Route("groundwater trends in karnataka")

			Convey("Then the result is deterministic", func() {
				So(first, ShouldEqual, second)
			})
		})
	})
}
