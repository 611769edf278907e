package model_test

import (
	"testing"

	"github.com/hydrosense/hydrosense/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParsePeriod(t *testing.T) {
	Convey("Given canonical period keys", t, func() {
		Convey("When parsing a valid key", func() {
			year, month, err := model.ParsePeriod("2023-06")

			Convey("Then year and month are extracted", func() {
				So(err, ShouldBeNil)
				So(year, ShouldEqual, 2023)
				So(month, ShouldEqual, 6)
			})
		})

		Convey("When parsing keys with surrounding whitespace", func() {
			year, month, err := model.ParsePeriod(" 2024-12 ")

			Convey("Then parsing still succeeds", func() {
				So(err, ShouldBeNil)
				So(year, ShouldEqual, 2024)
				So(month, ShouldEqual, 12)
			})
		})

		Convey("When parsing malformed keys", func() {
			for _, bad := range []string{"", "2023", "2023-13", "2023-00", "06-2023", "2023-6"} {
				_, _, err := model.ParsePeriod(bad)

				Convey("Then "+bad+" is rejected", func() {
					So(err, ShouldNotBeNil)
					So(err.Error(), ShouldContainSubstring, "malformed period")
				})
			}
		})
	})
}

func TestNextPeriod(t *testing.T) {
	Convey("Given a period key", t, func() {
		Convey("When advancing a mid-year month", func() {
			next, err := model.NextPeriod("2023-06")

			Convey("Then it moves to the following month", func() {
				So(err, ShouldBeNil)
				So(next, ShouldEqual, "2023-07")
			})
		})

		Convey("When advancing December", func() {
			next, err := model.NextPeriod("2024-12")

			Convey("Then it rolls over to January of the next year", func() {
				So(err, ShouldBeNil)
				So(next, ShouldEqual, "2025-01")
			})
		})

		Convey("When advancing a malformed key", func() {
			_, err := model.NextPeriod("garbage")

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestMonthOf(t *testing.T) {
	Convey("Given period keys", t, func() {
		Convey("Then MonthOf extracts the calendar month", func() {
			So(model.MonthOf("2023-01"), ShouldEqual, 1)
			So(model.MonthOf("2023-12"), ShouldEqual, 12)
		})

		Convey("Then MonthOf returns 0 for malformed keys", func() {
			So(model.MonthOf("not-a-period"), ShouldEqual, 0)
		})
	})
}
