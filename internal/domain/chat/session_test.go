package chat_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/hydrosense/hydrosense/internal/domain/chat"
	"github.com/hydrosense/hydrosense/internal/domain/entity"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSessionUpdate(t *testing.T) {
	Convey("Given a session", t, func() {
		sess := &chat.Session{State: "maharashtra", Year: "2023"}

		Convey("When updating with a partial entity set", func() {
			sess.Update(entity.Entities{District: "pune"})

			Convey("Then only the provided fields change", func() {
				So(sess.State, ShouldEqual, "maharashtra")
				So(sess.District, ShouldEqual, "pune")
				So(sess.Year, ShouldEqual, "2023")
			})
		})

		Convey("When updating a field twice", func() {
			sess.Update(entity.Entities{State: "karnataka"})
			sess.Update(entity.Entities{State: "delhi"})

			Convey("Then the last write wins", func() {
				So(sess.State, ShouldEqual, "delhi")
			})
		})
	})
}

func TestSessionManager(t *testing.T) {
	Convey("Given a session manager on a fake clock", t, func() {
		clock := clockwork.NewFakeClock()
		mgr := chat.NewSessionManager(
			chat.WithClock(clock),
			chat.WithTTL(10*time.Minute),
		)

		Convey("When fetching the same id twice", func() {
			first := mgr.Get("session-a")
			second := mgr.Get("session-a")

			Convey("Then the same session comes back", func() {
				So(second, ShouldEqual, first)
				So(mgr.Len(), ShouldEqual, 1)
			})
		})

		Convey("When a session sits idle past the TTL", func() {
			s := mgr.Get("session-b")
			s.State = "maharashtra"
			clock.Advance(11 * time.Minute)

			Convey("Then Get hands out a fresh session", func() {
				fresh := mgr.Get("session-b")
				So(fresh, ShouldNotEqual, s)
				So(fresh.State, ShouldBeEmpty)
			})

			Convey("Then Prune drops it", func() {
				So(mgr.Prune(), ShouldEqual, 0)
			})
		})

		Convey("When a session stays active", func() {
			mgr.Get("session-c")
			clock.Advance(5 * time.Minute)
			mgr.Get("session-c")
			clock.Advance(6 * time.Minute)

			Convey("Then it survives pruning because activity reset the clock", func() {
				So(mgr.Prune(), ShouldEqual, 1)
			})
		})
	})
}
