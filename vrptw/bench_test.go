// SPDX-License-Identifier: MIT

package vrptw_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/lvroute/espprc"
	"github.com/katalvlaran/lvroute/vrptw"
)

func BenchmarkSolve_WorkedExample(b *testing.B) {
	for _, method := range []espprc.Method{espprc.MethodLabelSetting, espprc.MethodPulse} {
		b.Run(method.String(), func(b *testing.B) {
			opts := vrptw.DefaultOptions()
			opts.PricingMethod = method
			s := workedExample()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := vrptw.Solve(context.Background(), s, opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
