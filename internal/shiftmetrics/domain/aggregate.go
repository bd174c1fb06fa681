package shiftmetrics

import (
	"sort"
	"strconv"
	"time"

	extraction "lineboard/internal/extraction/domain"
)

// shiftWindowHours is the full accounting window of one production day.
const shiftWindowHours = 24

// GroupKey selects the grouping dimensions for an aggregation. The shift
// date is always part of the key.
type GroupKey struct {
	ByMachine bool
	ByProduct bool
}

// DailyMetrics is one aggregation row for a grouping-key value.
type DailyMetrics struct {
	Date    time.Time              `json:"date"`
	Machine extraction.MachineType `json:"machine,omitempty"`
	Product string                 `json:"product,omitempty"`

	TotalTargetHour float64 `json:"total_target_hour"`
	TotalDuration   float64 `json:"total_duration"`
	TotalPackQty    float64 `json:"total_pack_qty"`

	LegalStoppageHours float64 `json:"legal_stoppage_hours"`
	IdleHours          float64 `json:"idle_hours"`
	DowntimeHours      float64 `json:"downtime_hours"`
	LossesHours        float64 `json:"losses_hours"`
	OEAdjustHours      float64 `json:"oe_adjust_hours"`

	GrossProductionHours float64 `json:"gross_production_hours"`
	NetProductionHours   float64 `json:"net_production_hours"`
	LineEfficiencyPct    float64 `json:"line_efficiency_pct"`
	OEPct                float64 `json:"oe_pct"`
}

type groupValue struct {
	date    time.Time
	machine extraction.MachineType
	product string
}

type buckets struct {
	legal    float64
	idle     float64
	downtime float64
	losses   float64
	oeAdjust float64
}

// Aggregate reduces the two record streams into one DailyMetrics row per
// distinct grouping-key value, applying the 24-hour shift accounting model.
//
// Without any downtime data the model degrades to efficiency versus actual
// run time: net production hours become the summed run duration and both
// percentages collapse onto the same ratio.
func Aggregate(production []extraction.ProductionRecord, downtime []extraction.DowntimeEvent, key GroupKey) []DailyMetrics {
	sums := make(map[groupValue]*DailyMetrics)
	order := make([]groupValue, 0)
	for _, rec := range production {
		gv := groupValue{date: day(rec.Date)}
		if key.ByMachine {
			gv.machine = rec.Machine
		}
		if key.ByProduct {
			gv.product = rec.Product
		}
		row, ok := sums[gv]
		if !ok {
			row = &DailyMetrics{Date: gv.date, Machine: gv.machine, Product: gv.product}
			sums[gv] = row
			order = append(order, gv)
		}
		row.TotalTargetHour += rec.TargetHour
		row.TotalDuration += rec.Duration
		row.TotalPackQty += rec.PackQty
	}

	if len(downtime) == 0 {
		for _, row := range sums {
			row.NetProductionHours = row.TotalDuration
			row.LineEfficiencyPct = ratioPct(row.TotalTargetHour, row.NetProductionHours)
			row.OEPct = row.LineEfficiencyPct
		}
		return sortedRows(sums, order)
	}

	downtimeSums := bucketDowntime(downtime, key)
	for gv, row := range sums {
		b := downtimeSums[downtimeKey(gv)]
		row.LegalStoppageHours = b.legal
		row.IdleHours = b.idle
		row.DowntimeHours = b.downtime
		row.LossesHours = b.losses
		row.OEAdjustHours = b.oeAdjust

		row.GrossProductionHours = shiftWindowHours - b.legal - b.idle
		// Net hours can go negative when reported downtime exceeds the day
		// window; the value is carried as-is and only the ratios are guarded.
		row.NetProductionHours = row.GrossProductionHours - b.downtime
		row.LineEfficiencyPct = ratioPct(row.TotalTargetHour, row.NetProductionHours)
		row.OEPct = ratioPct(row.TotalTargetHour, row.NetProductionHours+b.oeAdjust)
	}
	return sortedRows(sums, order)
}

// bucketDowntime sums event hours into the five cause buckets. Codes 24
// and 25 land in both the downtime and the OE-adjust bucket; the double
// count matches how the plant reports OE and must not be deduplicated.
func bucketDowntime(events []extraction.DowntimeEvent, key GroupKey) map[groupValue]buckets {
	sums := make(map[groupValue]buckets)
	for _, ev := range events {
		code, err := strconv.Atoi(ev.ErrorCode)
		if err != nil {
			continue
		}
		gv := groupValue{date: day(ev.Date)}
		if key.ByMachine {
			gv.machine = ev.Machine
		}

		hours := ev.DurationMinutes / 60
		b := sums[gv]
		switch {
		case code == 33:
			b.legal += hours
		case code == 32:
			b.idle += hours
		case code >= 21 && code <= 31:
			b.downtime += hours
		case code >= 1 && code <= 20:
			b.losses += hours
		}
		if code == 24 || code == 25 {
			b.oeAdjust += hours
		}
		sums[gv] = b
	}
	return sums
}

// downtimeKey drops the product dimension: downtime is reported per
// machine, so product-level rows share their machine's downtime buckets.
func downtimeKey(gv groupValue) groupValue {
	gv.product = ""
	return gv
}

func ratioPct(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator * 100
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sortedRows(sums map[groupValue]*DailyMetrics, order []groupValue) []DailyMetrics {
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if !a.date.Equal(b.date) {
			return a.date.Before(b.date)
		}
		if a.machine != b.machine {
			return a.machine < b.machine
		}
		return a.product < b.product
	})
	rows := make([]DailyMetrics, 0, len(order))
	for _, gv := range order {
		rows = append(rows, *sums[gv])
	}
	return rows
}
