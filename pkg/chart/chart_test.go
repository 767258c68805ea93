package chart_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/serialscope/pkg/chart"
	"github.com/papercomputeco/serialscope/pkg/window"
)

var _ = Describe("Axis", func() {
	var axis chart.Axis

	BeforeEach(func() {
		axis = chart.NewAxis(chart.DefaultMin, chart.DefaultMax)
	})

	It("keeps its range for values inside it", func() {
		Expect(axis.Observe(25)).To(BeFalse())
		Expect(axis.Observe(50)).To(BeFalse())
		Expect(axis.Min).To(BeNumerically("==", 0))
		Expect(axis.Max).To(BeNumerically("==", 50))
	})

	It("grows past a new maximum by one unit", func() {
		Expect(axis.Observe(73.5)).To(BeTrue())
		Expect(axis.Max).To(Equal(74.5))
	})

	It("grows past a new minimum by one unit", func() {
		Expect(axis.Observe(-3.2)).To(BeTrue())
		Expect(axis.Min).To(BeNumerically("~", -4.2, 1e-12))
	})

	It("never shrinks once grown", func() {
		axis.Observe(120)
		axis.Observe(-2)
		axis.Observe(10)
		Expect(axis.Max).To(BeNumerically("==", 121))
		Expect(axis.Min).To(BeNumerically("==", -3))
		Expect(axis.Span()).To(BeNumerically("==", 124))
	})

	It("orders reversed bounds", func() {
		a := chart.NewAxis(10, -10)
		Expect(a.Min).To(BeNumerically("==", -10))
		Expect(a.Max).To(BeNumerically("==", 10))
	})
})

var _ = Describe("IndexRange", func() {
	It("shows the full capacity until the window fills", func() {
		lo, hi := chart.IndexRange(3, 50)
		Expect(lo).To(Equal(1))
		Expect(hi).To(Equal(50))
	})

	It("rolls with the most recent capacity samples", func() {
		lo, hi := chart.IndexRange(120, 50)
		Expect(lo).To(Equal(71))
		Expect(hi).To(Equal(120))
	})
})

var _ = Describe("Plot", func() {
	It("places points by index and value", func() {
		samples := []window.Sample{{Index: 1, Value: 0}, {Index: 2, Value: 50}}

		lines := chart.Plot(samples, chart.NewAxis(0, 50), 1, 2, 12, 3)

		Expect(lines).To(HaveLen(3))
		Expect(lines[0]).To(Equal("   50.00 ┤ •"))
		Expect(lines[1]).To(Equal("   25.00 ┤  "))
		Expect(lines[2]).To(Equal("    0.00 ┤• "))
	})

	It("skips samples outside the index range", func() {
		samples := []window.Sample{{Index: 1, Value: 10}, {Index: 60, Value: 10}}

		lines := chart.Plot(samples, chart.NewAxis(0, 50), 11, 60, 30, 5)

		Expect(strings.Count(strings.Join(lines, "\n"), "•")).To(Equal(1))
	})

	It("returns blank lines when there is no room to draw", func() {
		lines := chart.Plot(nil, chart.NewAxis(0, 50), 1, 50, 4, 2)
		Expect(lines).To(Equal([]string{"", ""}))
	})
})
