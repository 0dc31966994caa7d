package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/akirun/vdotcoach/internal/adapters/http/api"
	"github.com/akirun/vdotcoach/internal/adapters/http/site"
	"github.com/akirun/vdotcoach/internal/adapters/http/swagger"
	app "github.com/akirun/vdotcoach/internal/app"
	"github.com/akirun/vdotcoach/internal/config"
	"github.com/akirun/vdotcoach/pkg/logger"
	"github.com/akirun/vdotcoach/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			// Test with environment variables
			_ = os.Setenv("COACH_ADDR", ":8080")
			_ = os.Setenv("COACH_PLANNER_BASE_URL", "https://coach.example/planner")
			_ = os.Setenv("COACH_NUM_PHASES", "5")
			defer func() {
				_ = os.Unsetenv("COACH_ADDR")
				_ = os.Unsetenv("COACH_PLANNER_BASE_URL")
				_ = os.Unsetenv("COACH_NUM_PHASES")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PlannerBaseURL, convey.ShouldEqual, "https://coach.example/planner")
				convey.So(cfg.NumPhases, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithPlannerBaseURL("/planner"),
					app.WithNumPhases(4),
					app.WithMaxScoreGain(3.0),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing the system metrics updater", func() {
			convey.Convey("Then it should stop with its context", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing the system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}

func TestFullRouting(t *testing.T) {
	convey.Convey("Given the full route table of the binary", t, func() {
		ctx := context.Background()

		svc := app.New(app.WithPlannerBaseURL("/planner"))
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		swagger.Register(ctx, mux)
		api.NewServer(svc, svc).Register(ctx, mux)
		site.Register(ctx, mux)

		get := func(path string) int {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			return rec.Code
		}

		convey.Convey("Then every surface should answer", func() {
			convey.So(get("/"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/calculator"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/planner?best_h=4"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/projection?distance=10k&time=45:00"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/handoff-link?distance=10k&time=45:00&target=3:30:00"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/plan?best_h=99"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/schedule?race_date=2030-01-01"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/healthz"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/stats"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/dashboard"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml"), convey.ShouldEqual, http.StatusOK)
		})
	})
}
