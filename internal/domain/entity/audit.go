package entity

import "time"

// ClusterEvaluationLabel classifies a cluster's health as computed by the audit routine.
type ClusterEvaluationLabel string

const (
	ClusterLabelCorrect     ClusterEvaluationLabel = "correct"
	ClusterLabelMixed       ClusterEvaluationLabel = "mixed"
	ClusterLabelDuplicate   ClusterEvaluationLabel = "duplicate"
	ClusterLabelSplitNeeded ClusterEvaluationLabel = "split_needed"
	ClusterLabelShouldMerge ClusterEvaluationLabel = "should_merge"
)

// ClusterEvaluation is a point-in-time snapshot of a cluster's cohesion/separation
// metrics and the label the audit routine derived from them. It is advisory: nothing
// reads a label back and mutates cluster membership from it.
type ClusterEvaluation struct {
	ID          int64
	ClusterID   int64
	MetricsJSON string
	Label       ClusterEvaluationLabel
	CreatedAt   time.Time
}

// ClusterFeedback is a free-form note attached to a cluster by the audit routine,
// kept separate from ClusterEvaluation's structured metrics so a human reading logs
// gets prose while a dashboard gets numbers.
type ClusterFeedback struct {
	ID           int64
	ClusterID    int64
	FeedbackText string
	CreatedAt    time.Time
}

// ClusterParams is one versioned snapshot of the clusterer's tunable parameters.
// The most recently saved row is the effective one.
type ClusterParams struct {
	ID                  int64
	SimilarityThreshold float64
	CreatedAt           time.Time
}
