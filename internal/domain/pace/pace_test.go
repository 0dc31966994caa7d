package pace_test

import (
	"testing"

	"github.com/akirun/vdotcoach/internal/domain/pace"
	"github.com/akirun/vdotcoach/internal/domain/vdot"
	. "github.com/smartystreets/goconvey/convey"
)

func TestForScore(t *testing.T) {
	Convey("Given a score of 50 and its projected marathon time", t, func() {
		engine := vdot.New()
		marathon := engine.MarathonTime(50)
		set := pace.ForScore(50, marathon)

		Convey("Then the paces should match the published tables", func() {
			// Published values for a score of 50: T 4:15, I 3:50, R 3:41,
			// M 4:31, easy band roughly 4:54 to 5:52 per kilometre.
			So(set.Threshold.Seconds(), ShouldBeBetween, 252, 258)
			So(set.Interval.Seconds(), ShouldBeBetween, 227, 233)
			So(set.Repetition.Seconds(), ShouldBeBetween, 218, 224)
			So(set.Marathon.Seconds(), ShouldBeBetween, 268, 274)
			So(set.EasyFast.Seconds(), ShouldBeBetween, 291, 297)
			So(set.EasySlow.Seconds(), ShouldBeBetween, 349, 355)
		})

		Convey("And the intensities should be ordered", func() {
			So(set.Repetition.Seconds(), ShouldBeLessThan, set.Interval.Seconds())
			So(set.Interval.Seconds(), ShouldBeLessThan, set.Threshold.Seconds())
			So(set.Threshold.Seconds(), ShouldBeLessThan, set.Marathon.Seconds())
			So(set.Marathon.Seconds(), ShouldBeLessThan, set.EasySlow.Seconds())
			So(set.EasyFast.Seconds(), ShouldBeLessThan, set.EasySlow.Seconds())
		})
	})

	Convey("Given two scores with the higher one faster", t, func() {
		engine := vdot.New()
		slower := pace.ForScore(38, engine.MarathonTime(38))
		faster := pace.ForScore(50, engine.MarathonTime(50))

		Convey("Then every pace should shrink as the score grows", func() {
			So(faster.EasyFast, ShouldBeLessThan, slower.EasyFast)
			So(faster.EasySlow, ShouldBeLessThan, slower.EasySlow)
			So(faster.Marathon, ShouldBeLessThan, slower.Marathon)
			So(faster.Threshold, ShouldBeLessThan, slower.Threshold)
			So(faster.Interval, ShouldBeLessThan, slower.Interval)
			So(faster.Repetition, ShouldBeLessThan, slower.Repetition)
		})
	})
}

func TestPaceString(t *testing.T) {
	Convey("Given per-kilometre paces", t, func() {
		cases := []struct {
			in   pace.Pace
			want string
		}{
			{255, "4:15"},
			{271, "4:31"},
			{300, "5:00"},
			{359, "5:59"},
			{61, "1:01"},
		}

		Convey("When rendering them", func() {
			for _, c := range cases {
				So(c.in.String(), ShouldEqual, c.want)
			}
		})
	})
}
