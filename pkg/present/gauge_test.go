package present_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-riskboard/pkg/present"
)

func TestNewGauge_Buckets(t *testing.T) {
	cases := []struct {
		p    float64
		want present.Gauge
	}{
		{0, present.Gauge{Probability: 0, Percent: 0, Bucket: present.BucketLow, Color: "#22c55e"}},
		{0.19, present.Gauge{Probability: 0.19, Percent: 19, Bucket: present.BucketLow, Color: "#22c55e"}},
		{0.2, present.Gauge{Probability: 0.2, Percent: 20, Bucket: present.BucketModerate, Color: "#facc15"}},
		{0.342, present.Gauge{Probability: 0.342, Percent: 34, Bucket: present.BucketModerate, Color: "#facc15"}},
		{0.49, present.Gauge{Probability: 0.49, Percent: 49, Bucket: present.BucketModerate, Color: "#facc15"}},
		{0.5, present.Gauge{Probability: 0.5, Percent: 50, Bucket: present.BucketElevated, Color: "#f97316"}},
		{0.69, present.Gauge{Probability: 0.69, Percent: 69, Bucket: present.BucketElevated, Color: "#f97316"}},
		{0.7, present.Gauge{Probability: 0.7, Percent: 70, Bucket: present.BucketHigh, Color: "#ef4444"}},
		{1, present.Gauge{Probability: 1, Percent: 100, Bucket: present.BucketHigh, Color: "#ef4444"}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, present.NewGauge(tc.p)); diff != "" {
			t.Fatalf("p=%v mismatch (-want +got):\n%s", tc.p, diff)
		}
	}
}

func TestNewGauge_OutOfRange(t *testing.T) {
	high := present.NewGauge(1.3)
	if high.Bucket != present.BucketHigh || high.Percent != 130 || high.Fill() != 1 {
		t.Fatalf("unexpected gauge for 1.3: %+v fill=%v", high, high.Fill())
	}
	low := present.NewGauge(-0.1)
	if low.Bucket != present.BucketLow || low.Fill() != 0 {
		t.Fatalf("unexpected gauge for -0.1: %+v", low)
	}
}

func TestPercent_RoundsHalfUp(t *testing.T) {
	if got := present.Percent(0.125); got != 13 {
		t.Fatalf("0.125: got %d", got)
	}
	if got := present.Percent(0.874); got != 87 {
		t.Fatalf("0.874: got %d", got)
	}
}

func TestHistorySeries(t *testing.T) {
	got := present.HistorySeries([]float64{0.12, 0.87})
	want := []present.Point{
		{Index: 1, Percent: 12, Probability: 0.12},
		{Index: 2, Percent: 87, Probability: 0.87},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
	if len(present.HistorySeries(nil)) != 0 {
		t.Fatalf("empty history should yield no points")
	}
}
