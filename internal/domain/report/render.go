package report

import (
	"fmt"
	"sort"
	"time"

	"testhub/internal/domain/execution"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

func formatDate(t *time.Time) string {
	if t == nil {
		return "unset"
	}
	return t.Format(dateLayout)
}

func formatDateTime(t *time.Time) string {
	if t == nil {
		return "not executed"
	}
	return t.Format(dateTimeLayout)
}

func formatDuration(seconds *int) string {
	if seconds == nil {
		return "not recorded"
	}
	return fmt.Sprintf("%d seconds", *seconds)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func orUnrecorded(s string) string {
	if s == "" {
		return "unrecorded"
	}
	return s
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}

func sortedResults(results []execution.StepResult) []execution.StepResult {
	out := make([]execution.StepResult, len(results))
	copy(out, results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StepNumber < out[j].StepNumber
	})
	return out
}
