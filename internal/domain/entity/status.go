package entity

import "time"

// SystemStatus is the singleton row tracking overall pipeline activity.
// Enforced at the storage layer by a check constraint on a fixed id.
type SystemStatus struct {
	LastProcessedArticle int64
	TotalArticles        int64
	TotalClusters        int64
	LastActivity         time.Time
	IsRunning            bool
}
