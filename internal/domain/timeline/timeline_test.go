package timeline_test

import (
	"errors"
	"testing"

	"github.com/okian/xgflow/internal/domain/model"
	"github.com/okian/xgflow/internal/domain/timeline"
	. "github.com/smartystreets/goconvey/convey"
)

const epsilon = 1e-9

func shot(minute, team string, xg float64, player string) model.ShotRecord {
	return model.ShotRecord{MinuteText: minute, Team: team, XG: xg, Player: player, Outcome: "Saved"}
}

func assertMonotonic(points []model.TimelinePoint) {
	for i := 1; i < len(points); i++ {
		So(points[i].Minute, ShouldBeGreaterThanOrEqualTo, points[i-1].Minute)
		So(points[i].Cumulative, ShouldBeGreaterThanOrEqualTo, points[i-1].Cumulative)
	}
}

func TestBuild(t *testing.T) {
	Convey("Given shots for two teams", t, func() {
		shots := []model.ShotRecord{
			shot("67", "Gent", 0.5, "Gandelman"),
			shot("23", "Gent", 0.4, "Fadiga"),
			shot("10", "Genk", 0.2, "Arokodare"),
			shot("45+2", "Gent", 0.1, "Dorgeles"),
		}

		series, diags := timeline.Build(shots, "Gent")
		points := series.Points()

		Convey("Then only that team's shots are used, in minute order", func() {
			So(diags, ShouldBeEmpty)
			So(points, ShouldHaveLength, 5)
			So(points[1].Minute, ShouldEqual, 23)
			So(points[1].Player, ShouldEqual, "Fadiga")
			So(points[2].Minute, ShouldEqual, 45)
			So(points[3].Minute, ShouldEqual, 67)
		})

		Convey("Then the series starts at the kick-off sentinel", func() {
			So(points[0].Minute, ShouldEqual, 0)
			So(points[0].Cumulative, ShouldEqual, 0)
			So(points[0].Sentinel, ShouldBeTrue)
		})

		Convey("Then the series ends at the full-time sentinel carrying the total", func() {
			last := points[len(points)-1]
			So(last.Minute, ShouldEqual, 90)
			So(last.Sentinel, ShouldBeTrue)
			So(last.Cumulative, ShouldAlmostEqual, 1.0, epsilon)
			So(series.Total(), ShouldAlmostEqual, 1.0, epsilon)
		})

		Convey("Then cumulative values never decrease", func() {
			assertMonotonic(points)
			So(points[1].Cumulative, ShouldAlmostEqual, 0.4, epsilon)
			So(points[2].Cumulative, ShouldAlmostEqual, 0.5, epsilon)
			So(points[3].Cumulative, ShouldAlmostEqual, 1.0, epsilon)
		})
	})

	Convey("Given a team with no shots", t, func() {
		series, diags := timeline.Build([]model.ShotRecord{shot("5", "Genk", 0.3, "x")}, "Gent")
		points := series.Points()

		Convey("Then the series is exactly the two zero sentinels", func() {
			So(diags, ShouldBeEmpty)
			So(points, ShouldResemble, []model.TimelinePoint{
				{Minute: 0, Cumulative: 0, Sentinel: true},
				{Minute: 90, Cumulative: 0, Sentinel: true},
			})
		})
	})

	Convey("Given nil shots", t, func() {
		series, _ := timeline.Build(nil, "Gent")

		Convey("Then the zero-shot series is still produced", func() {
			So(series.Len(), ShouldEqual, 2)
			So(series.Total(), ShouldEqual, 0)
		})
	})

	Convey("Given several shots in the same minute", t, func() {
		shots := []model.ShotRecord{
			shot("30", "Gent", 0.1, "first"),
			shot("30", "Gent", 0.2, "second"),
			shot("30", "Gent", 0.3, "third"),
		}
		series, _ := timeline.Build(shots, "Gent")
		got := series.Points()

		Convey("Then they keep input order and are counted once each", func() {
			So(got[1].Player, ShouldEqual, "first")
			So(got[2].Player, ShouldEqual, "second")
			So(got[3].Player, ShouldEqual, "third")
			So(got[3].Cumulative, ShouldAlmostEqual, 0.6, epsilon)
			So(got[4].Cumulative, ShouldAlmostEqual, 0.6, epsilon)
		})
	})

	Convey("Given stoppage-time shots at the end of the match", t, func() {
		shots := []model.ShotRecord{
			shot("90+4", "Gent", 0.3, "late"),
			shot("88", "Gent", 0.2, "early"),
		}
		series, _ := timeline.Build(shots, "Gent")
		points := series.Points()

		Convey("Then they sit at minute 90 before the full-time sentinel", func() {
			So(points, ShouldHaveLength, 4)
			So(points[2].Minute, ShouldEqual, 90)
			So(points[2].Sentinel, ShouldBeFalse)
			So(points[3].Sentinel, ShouldBeTrue)
			So(points[3].Cumulative, ShouldAlmostEqual, 0.5, epsilon)
		})
	})

	Convey("Given a shot in extra time beyond minute 90", t, func() {
		shots := []model.ShotRecord{
			shot("105", "Gent", 0.4, "extra"),
			shot("50", "Gent", 0.3, "regular"),
		}
		series, _ := timeline.Build(shots, "Gent")
		points := series.Points()

		Convey("Then the full-time sentinel precedes it with the total so far", func() {
			So(points, ShouldHaveLength, 4)
			So(points[2].Minute, ShouldEqual, 90)
			So(points[2].Sentinel, ShouldBeTrue)
			So(points[2].Cumulative, ShouldAlmostEqual, 0.3, epsilon)
			So(points[3].Minute, ShouldEqual, 105)
			So(points[3].Cumulative, ShouldAlmostEqual, 0.7, epsilon)
		})

		Convey("Then the last chronological point carries the total", func() {
			assertMonotonic(points)
			So(points[len(points)-1].Cumulative, ShouldAlmostEqual, series.Total(), epsilon)
		})
	})

	Convey("Given a shot at minute zero", t, func() {
		series, _ := timeline.Build([]model.ShotRecord{shot("0", "Gent", 0.05, "kickoff")}, "Gent")
		points := series.Points()

		Convey("Then the kick-off sentinel still comes first with value zero", func() {
			So(points[0].Sentinel, ShouldBeTrue)
			So(points[0].Cumulative, ShouldEqual, 0)
			So(points[1].Player, ShouldEqual, "kickoff")
		})
	})

	Convey("Given a shot with a malformed minute", t, func() {
		shots := []model.ShotRecord{
			shot("12", "Gent", 0.2, "ok"),
			shot("4x", "Gent", 0.9, "bad"),
		}
		series, diags := timeline.Build(shots, "Gent")

		Convey("Then it is dropped and reported", func() {
			So(series.Total(), ShouldAlmostEqual, 0.2, epsilon)
			So(diags, ShouldHaveLength, 1)
			So(diags[0].Kind, ShouldEqual, model.DiagMalformedMinute)
			So(diags[0].Source, ShouldEqual, model.SourceShot)
			So(diags[0].Index, ShouldEqual, 1)
			So(diags[0].MinuteText, ShouldEqual, "4x")
		})
	})
}

func TestSeriesAt(t *testing.T) {
	Convey("Given a series with points at 0, 23, 67 and 90", t, func() {
		series, err := timeline.FromPoints([]model.TimelinePoint{
			{Minute: 0, Cumulative: 0, Sentinel: true},
			{Minute: 23, Cumulative: 0.4},
			{Minute: 67, Cumulative: 0.9},
			{Minute: 90, Cumulative: 0.9, Sentinel: true},
		})
		So(err, ShouldBeNil)

		Convey("Then lookups return the last value at or before the minute", func() {
			cases := map[int]float64{0: 0, 22: 0, 23: 0.4, 50: 0.4, 67: 0.9, 90: 0.9, 120: 0.9}
			for m, want := range cases {
				got, ok := series.At(m)
				So(ok, ShouldBeTrue)
				So(got, ShouldAlmostEqual, want, epsilon)
			}
		})

		Convey("Then a minute before the first point misses", func() {
			_, ok := series.At(-1)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given the zero series", t, func() {
		var series timeline.Series

		Convey("Then every lookup misses", func() {
			_, ok := series.At(45)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestFromPoints(t *testing.T) {
	Convey("Given points out of minute order", t, func() {
		_, err := timeline.FromPoints([]model.TimelinePoint{{Minute: 10}, {Minute: 5}})

		Convey("Then ErrUnordered is returned", func() {
			So(errors.Is(err, timeline.ErrUnordered), ShouldBeTrue)
		})
	})

	Convey("Given decreasing cumulative values", t, func() {
		_, err := timeline.FromPoints([]model.TimelinePoint{{Minute: 5, Cumulative: 0.5}, {Minute: 10, Cumulative: 0.2}})

		Convey("Then ErrNotMonotonic is returned", func() {
			So(errors.Is(err, timeline.ErrNotMonotonic), ShouldBeTrue)
		})
	})

	Convey("Given valid points", t, func() {
		in := []model.TimelinePoint{{Minute: 0}, {Minute: 12, Cumulative: 0.3}}
		series, err := timeline.FromPoints(in)
		in[1].Cumulative = 5

		Convey("Then the series owns a copy", func() {
			So(err, ShouldBeNil)
			So(series.Total(), ShouldAlmostEqual, 0.3, epsilon)
			So(series.Points()[1].Cumulative, ShouldAlmostEqual, 0.3, epsilon)
		})
	})
}
