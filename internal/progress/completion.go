package progress

import (
	"math"
	"time"

	"github.com/at-ishikawa/learnpath/internal/catalog"
)

// TaskStatusCompleted is the status of a finished task item.
const TaskStatusCompleted = "completed"

// StepCompletion returns the percentage of the catalog's videos completed in step.
// Videos unknown to the catalog are ignored. It is 0 when the catalog lists no videos.
func StepCompletion(step *StepProgress, catalogVideos []catalog.Video) float64 {
	if len(catalogVideos) == 0 {
		return 0
	}
	return percent(completedVideos(step, catalogVideos), len(catalogVideos))
}

// CollectionCompletion returns the mean step completion over the catalog's steps.
// Steps without progress count as 0.
func CollectionCompletion(cp *CollectionProgress, steps []catalog.Step) float64 {
	return CollectionReport(cp, steps).Percent
}

type StepReport struct {
	StepID          string  `json:"step_id"`
	CompletedVideos int     `json:"completed_videos"`
	TotalVideos     int     `json:"total_videos"`
	Percent         float64 `json:"percent"`
}

type CompletionReport struct {
	CollectionID string       `json:"collection_id"`
	Steps        []StepReport `json:"steps"`
	Percent      float64      `json:"percent"`
}

// CollectionReport computes per-step and overall completion of a collection.
func CollectionReport(cp *CollectionProgress, steps []catalog.Step) CompletionReport {
	var report CompletionReport
	if cp != nil {
		report.CollectionID = cp.CollectionID
	}
	if len(steps) == 0 {
		return report
	}

	var sum float64
	for _, s := range steps {
		var sp *StepProgress
		if cp != nil {
			sp = cp.Step(s.ID)
		}
		sr := StepReport{
			StepID:          s.ID,
			CompletedVideos: completedVideos(sp, s.Videos),
			TotalVideos:     len(s.Videos),
		}
		sr.Percent = StepCompletion(sp, s.Videos)
		sum += sr.Percent
		report.Steps = append(report.Steps, sr)
	}
	report.Percent = clampPercent(sum / float64(len(steps)))
	return report
}

func completedVideos(step *StepProgress, catalogVideos []catalog.Video) int {
	if step == nil {
		return 0
	}
	var count int
	for _, v := range catalogVideos {
		if vp := step.Video(v.ID); vp != nil && vp.Completed {
			count++
		}
	}
	return count
}

// TaskItem is an externally tracked task with an optional deadline.
type TaskItem struct {
	Status   string    `json:"status"`
	Deadline time.Time `json:"deadline"`
}

type TaskMetrics struct {
	Total             int     `json:"total"`
	Completed         int     `json:"completed"`
	Overdue           int     `json:"overdue"`
	CompletionRate    float64 `json:"completion_rate"`
	OnTimeRate        float64 `json:"on_time_rate"`
	ProductivityScore int     `json:"productivity_score"`
}

// CalculateTaskMetrics aggregates items evaluated at now.
// An item is overdue when its deadline is before now and it is not completed.
func CalculateTaskMetrics(items []TaskItem, now time.Time) TaskMetrics {
	m := TaskMetrics{Total: len(items)}
	if m.Total == 0 {
		return m
	}

	for _, item := range items {
		if item.Status == TaskStatusCompleted {
			m.Completed++
			continue
		}
		if !item.Deadline.IsZero() && item.Deadline.Before(now) {
			m.Overdue++
		}
	}
	m.CompletionRate = percent(m.Completed, m.Total)
	m.OnTimeRate = percent(m.Total-m.Overdue, m.Total)
	m.ProductivityScore = int(math.Round(0.6*m.CompletionRate + 0.4*m.OnTimeRate))
	return m
}

func percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return clampPercent(float64(part) / float64(total) * 100)
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
