package entity

import "time"

// Cluster is a named group of articles judged to describe the same story.
// It is created only once cross-domain corroboration exists (see usecase/cluster)
// and is never deleted, though the audit sweep may leave it with zero members.
type Cluster struct {
	ID           int64
	Title        string
	Summary      string
	ArticleCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ArticleCluster is a membership row joining an article to a cluster.
type ArticleCluster struct {
	ArticleID       int64
	ClusterID       int64
	SimilarityScore float64
	AddedAt         time.Time
}
