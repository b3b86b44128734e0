package tracing

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.opentelemetry.io/otel"
)

func TestSetup(t *testing.T) {
	Convey("Given tracing setup", t, func() {
		ctx := context.Background()

		Convey("When no endpoint is configured", func() {
			shutdown, err := Setup(ctx, "suwen-web", "  ")

			Convey("Then it should return a no-op shutdown", func() {
				So(err, ShouldBeNil)
				So(shutdown, ShouldNotBeNil)
				So(shutdown(ctx), ShouldBeNil)
			})

			Convey("And the trace-context propagator should be installed", func() {
				So(otel.GetTextMapPropagator().Fields(), ShouldContain, "traceparent")
			})
		})

		Convey("When an endpoint is configured", func() {
			shutdown, err := Setup(ctx, "suwen-web", "http://127.0.0.1:4318/v1/traces")

			Convey("Then a provider should be installed without dialing", func() {
				So(err, ShouldBeNil)
				So(shutdown, ShouldNotBeNil)
			})
		})
	})
}
