package vdot_test

import (
	"errors"
	"testing"

	"github.com/akirun/vdotcoach/internal/domain/racetime"
	"github.com/akirun/vdotcoach/internal/domain/vdot"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScore(t *testing.T) {
	Convey("Given an engine with the published score band", t, func() {
		engine := vdot.New()

		Convey("When scoring well-known benchmark performances", func() {
			cases := []struct {
				distance vdot.Distance
				finish   string
				lo, hi   float64
			}{
				{vdot.DistanceMarathon, "3:00:00", 53.0, 54.0},
				{vdot.DistanceMarathon, "3:30:00", 44.0, 45.0},
				{vdot.DistanceMarathon, "4:00:00", 37.5, 38.5},
				{vdot.Distance5K, "25:00", 38.0, 38.7},
				{vdot.Distance5K, "20:00", 49.3, 50.3},
				{vdot.Distance10K, "52:00", 37.7, 38.7},
				{vdot.DistanceHalf, "1:45:00", 42.1, 43.1},
			}

			Convey("Then each score should land in the published range", func() {
				for _, c := range cases {
					finish := mustParse(c.finish)
					score := engine.Score(c.distance, finish)

					So(score, ShouldBeGreaterThanOrEqualTo, c.lo)
					So(score, ShouldBeLessThanOrEqualTo, c.hi)
				}
			})
		})

		Convey("When scoring a superhuman performance", func() {
			score := engine.Score(vdot.Distance5K, mustParse("10:00"))

			Convey("Then it should clamp to the top of the band", func() {
				So(score, ShouldEqual, 85.0)
			})
		})

		Convey("When scoring a very slow performance", func() {
			score := engine.Score(vdot.Distance5K, mustParse("1:30:00"))

			Convey("Then it should clamp to the bottom of the band", func() {
				So(score, ShouldEqual, 30.0)
			})
		})

		Convey("When scoring a zero duration", func() {
			score := engine.Score(vdot.Distance5K, racetime.RaceTime{})

			Convey("Then it should score at the bottom of the band", func() {
				So(score, ShouldEqual, 30.0)
			})
		})
	})

	Convey("Given an engine with a custom score band", t, func() {
		engine := vdot.New(vdot.WithScoreRange(40, 60))

		Convey("Then scores outside the band should clamp to it", func() {
			So(engine.Score(vdot.DistanceMarathon, mustParse("4:30:00")), ShouldEqual, 40.0)
			So(engine.Score(vdot.Distance5K, mustParse("14:00")), ShouldEqual, 60.0)
		})
	})

	Convey("Given an invalid score range option", t, func() {
		engine := vdot.New(vdot.WithScoreRange(60, 40))

		Convey("Then the defaults should stay in effect", func() {
			So(engine.Score(vdot.Distance5K, mustParse("10:00")), ShouldEqual, 85.0)
		})
	})
}

func TestScoreMonotonicity(t *testing.T) {
	Convey("Given a series of 10k times from fast to slow", t, func() {
		engine := vdot.New()

		Convey("When scoring each of them", func() {
			previous := engine.Score(vdot.Distance10K, racetime.FromSeconds(30*60))

			Convey("Then a slower time should never score higher", func() {
				for seconds := 30*60 + 30; seconds <= 75*60; seconds += 30 {
					score := engine.Score(vdot.Distance10K, racetime.FromSeconds(seconds))

					So(score, ShouldBeLessThanOrEqualTo, previous)
					previous = score
				}
			})
		})
	})
}

func TestMarathonTime(t *testing.T) {
	Convey("Given an engine", t, func() {
		engine := vdot.New()

		Convey("When inverting well-known scores", func() {
			cases := []struct {
				score  float64
				lo, hi int // total seconds
			}{
				{50, 11400, 11480},  // published 3:10:40 for a score of 50
				{38, 14300, 14420},  // around four hours
				{30, 17350, 17430},  // bottom of the band
				{85, 7240, 7310},    // top of the band
				{100, 7240, 7310},   // clamps to the top
				{10, 17350, 17430},  // clamps to the bottom
			}

			Convey("Then each time should land where the tables put it", func() {
				for _, c := range cases {
					got := engine.MarathonTime(c.score).TotalSeconds()

					So(got, ShouldBeGreaterThanOrEqualTo, c.lo)
					So(got, ShouldBeLessThanOrEqualTo, c.hi)
				}
			})
		})

		Convey("When scoring the inverted time again", func() {
			Convey("Then the round trip should agree within rounding error", func() {
				for _, score := range []float64{32, 41.5, 47.3, 55, 68, 80} {
					back := engine.Score(vdot.DistanceMarathon, engine.MarathonTime(score))

					So(back, ShouldBeBetween, score-0.05, score+0.05)
				}
			})
		})
	})
}

func TestMarathonEquivalent(t *testing.T) {
	Convey("Given an engine", t, func() {
		engine := vdot.New()

		Convey("When projecting a marathon result", func() {
			finish := mustParse("3:47:21")
			got := engine.MarathonEquivalent(vdot.DistanceMarathon, finish)

			Convey("Then the input should come back untouched", func() {
				So(got, ShouldResemble, finish)
			})
		})

		Convey("When projecting a 25:00 5k", func() {
			got := engine.MarathonEquivalent(vdot.Distance5K, mustParse("25:00"))

			Convey("Then the projection should be just under four hours", func() {
				So(got.TotalSeconds(), ShouldBeGreaterThan, 13800) // 3:50:00
				So(got.TotalSeconds(), ShouldBeLessThan, 14400)   // 4:00:00
			})
		})

		Convey("When projecting two half-marathon results", func() {
			faster := engine.MarathonEquivalent(vdot.DistanceHalf, mustParse("1:40:00"))
			slower := engine.MarathonEquivalent(vdot.DistanceHalf, mustParse("1:50:00"))

			Convey("Then the faster input should never project slower", func() {
				So(faster.TotalSeconds(), ShouldBeLessThanOrEqualTo, slower.TotalSeconds())
			})
		})
	})
}

func TestParseDistance(t *testing.T) {
	Convey("Given distance labels in common spellings", t, func() {
		cases := []struct {
			in   string
			want vdot.Distance
		}{
			{"5k", vdot.Distance5K},
			{"5KM", vdot.Distance5K},
			{"5000", vdot.Distance5K},
			{"10k", vdot.Distance10K},
			{"10km", vdot.Distance10K},
			{"half", vdot.DistanceHalf},
			{"Half Marathon", vdot.DistanceHalf},
			{"half-marathon", vdot.DistanceHalf},
			{"marathon", vdot.DistanceMarathon},
			{"FULL", vdot.DistanceMarathon},
			{" marathon ", vdot.DistanceMarathon},
		}

		Convey("When parsing each of them", func() {
			for _, c := range cases {
				got, err := vdot.ParseDistance(c.in)

				So(err, ShouldBeNil)
				So(got, ShouldEqual, c.want)
			}
		})
	})

	Convey("Given unknown labels", t, func() {
		for _, in := range []string{"", "3k", "mile", "ultra", "26.2miles"} {
			_, err := vdot.ParseDistance(in)

			So(errors.Is(err, vdot.ErrUnknownDistance), ShouldBeTrue)
		}
	})
}

func TestDistance(t *testing.T) {
	Convey("Given the supported distances", t, func() {
		Convey("Then course lengths should match the official ones", func() {
			So(vdot.Distance5K.Meters(), ShouldEqual, 5000.0)
			So(vdot.Distance10K.Meters(), ShouldEqual, 10000.0)
			So(vdot.DistanceHalf.Meters(), ShouldEqual, 21097.5)
			So(vdot.DistanceMarathon.Meters(), ShouldEqual, 42195.0)
		})

		Convey("And labels should round-trip through the parser", func() {
			for _, d := range vdot.Distances() {
				got, err := vdot.ParseDistance(d.String())

				So(err, ShouldBeNil)
				So(got, ShouldEqual, d)
			}
		})
	})
}

// mustParse converts a duration literal for test setup.
func mustParse(s string) racetime.RaceTime {
	rt, err := racetime.Parse(s)
	if err != nil {
		panic(err)
	}
	return rt
}
