// Package audit computes offline cluster-quality metrics and proposes
// clusterer parameter nudges. It never mutates cluster membership --
// every output is a row written for a human (or a future, separately
// specified component) to act on.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/AMStarks/beacon/internal/domain/entity"
	"github.com/AMStarks/beacon/internal/repository"
	"github.com/AMStarks/beacon/internal/usecase/cluster"
)

const (
	defaultClusterLimit = 50
	contentPreviewLen   = 1200

	cohesionCorrectMin   = 0.22
	separationCorrectMin = 0.65
	cohesionSplitMax     = 0.12
	separationMergeMax   = 0.40
	minSizeForCorrect    = 3
	minSizeForFlag       = 2

	thresholdStep     = 0.02
	thresholdClampMin = 0.16
	thresholdClampMax = 0.28
	defaultThreshold  = 0.22
	labelImbalance    = 5

	singletonCandidateLimit  = 100
	singletonMergeSimilarity = 0.22
)

// ClusterMetrics is the cohesion/separation/overlap snapshot for one
// cluster, grounded on `cluster_audit.py`'s ClusterMetrics dataclass.
type ClusterMetrics struct {
	ClusterID         int64   `json:"cluster_id"`
	Size              int     `json:"size"`
	CohesionMean      float64 `json:"cohesion_mean"`
	CohesionMedian    float64 `json:"cohesion_median"`
	SeparationMin     float64 `json:"separation_min"`
	TitleOverlapRate  float64 `json:"title_overlap_rate"`
	EntityOverlapRate float64 `json:"entity_overlap_rate"`
}

// SingletonCandidate pairs a singleton article with its best-scoring
// recent peer, surfaced for a human to review; nothing acts on it
// automatically.
type SingletonCandidate struct {
	ArticleID          int64
	CandidateArticleID int64
	Similarity         float64
}

// Summary is the result of one audit pass.
type Summary struct {
	Evaluations       []entity.ClusterEvaluation
	ProposedThreshold float64
	SplitCount        int
	MergeCount        int
}

// Auditor implements spec ss4.5's audit hook.
type Auditor struct {
	store repository.Store
}

func New(store repository.Store) *Auditor {
	return &Auditor{store: store}
}

// Run evaluates up to defaultClusterLimit recent clusters, persists a
// ClusterEvaluation row per cluster, writes a ClusterFeedback note for
// any flagged cluster, and proposes (and saves) a nudged similarity
// threshold. It never merges, splits, or reassigns cluster membership.
func (a *Auditor) Run(ctx context.Context) (Summary, error) {
	clusters, err := a.store.GetClusters(ctx, defaultClusterLimit)
	if err != nil {
		return Summary{}, fmt.Errorf("audit: get clusters: %w", err)
	}

	concatTexts := make([]string, len(clusters))
	for i, c := range clusters {
		concatTexts[i] = concatMembers(c.Articles)
	}

	var summary Summary
	for i, c := range clusters {
		metrics := a.computeMetrics(c, concatTexts, i)
		label := labelFromMetrics(metrics)

		payload, err := json.Marshal(metrics)
		if err != nil {
			return summary, fmt.Errorf("audit: marshal metrics: %w", err)
		}

		eval := entity.ClusterEvaluation{
			ClusterID:   metrics.ClusterID,
			MetricsJSON: string(payload),
			Label:       label,
		}
		if err := a.store.UpsertClusterEvaluation(ctx, eval); err != nil {
			return summary, fmt.Errorf("audit: upsert evaluation: %w", err)
		}
		summary.Evaluations = append(summary.Evaluations, eval)

		switch label {
		case entity.ClusterLabelSplitNeeded:
			summary.SplitCount++
			a.recordFeedback(ctx, metrics.ClusterID, fmt.Sprintf(
				"cohesion_mean %.2f below %.2f; cluster may need splitting", metrics.CohesionMean, cohesionSplitMax))
		case entity.ClusterLabelShouldMerge:
			summary.MergeCount++
			a.recordFeedback(ctx, metrics.ClusterID, fmt.Sprintf(
				"separation_min %.2f below %.2f; cluster may overlap a neighbor", metrics.SeparationMin, separationMergeMax))
		}

		slog.Debug("audit: evaluated cluster",
			slog.Int64("cluster_id", metrics.ClusterID), slog.String("label", string(label)),
			slog.Float64("cohesion_mean", metrics.CohesionMean), slog.Float64("separation_min", metrics.SeparationMin))
	}

	threshold, err := a.proposeThreshold(ctx, summary.SplitCount, summary.MergeCount)
	if err != nil {
		return summary, err
	}
	summary.ProposedThreshold = threshold

	slog.Info("audit: run complete",
		slog.Int("clusters_evaluated", len(clusters)),
		slog.Int("split_needed", summary.SplitCount), slog.Int("should_merge", summary.MergeCount),
		slog.Float64("proposed_threshold", threshold))
	return summary, nil
}

func (a *Auditor) recordFeedback(ctx context.Context, clusterID int64, text string) {
	if err := a.store.InsertClusterFeedback(ctx, entity.ClusterFeedback{ClusterID: clusterID, FeedbackText: text}); err != nil {
		slog.Warn("audit: failed to record feedback", slog.Int64("cluster_id", clusterID), slog.Any("error", err))
	}
}

func (a *Auditor) computeMetrics(c repository.ClusterWithArticles, concatTexts []string, idx int) ClusterMetrics {
	texts := make([]string, 0, len(c.Articles))
	titles := make([]string, 0, len(c.Articles))
	for _, art := range c.Articles {
		title := art.GeneratedTitle
		if title == "" {
			title = art.OriginalTitle
		}
		if len(title) > 200 {
			title = title[:200]
		}
		titles = append(titles, title)

		preview := art.Content
		if len(preview) > contentPreviewLen {
			preview = preview[:contentPreviewLen]
		}
		texts = append(texts, strings.TrimSpace(title+" "+art.Excerpt+" "+preview))
	}

	pairwise := pairwiseSimilarities(texts)
	cohesionMean, cohesionMedian := meanAndMedian(pairwise)

	bestCross := 0.0
	for j, other := range concatTexts {
		if j == idx || other == "" {
			continue
		}
		if sim := cluster.CombinedSimilarity(concatTexts[idx], other); sim > bestCross {
			bestCross = sim
		}
	}
	separationMin := 1.0 - bestCross

	entityRate, titleRate := titleAndEntityOverlap(titles)

	return ClusterMetrics{
		ClusterID:         c.Cluster.ID,
		Size:              len(c.Articles),
		CohesionMean:      cohesionMean,
		CohesionMedian:    cohesionMedian,
		SeparationMin:     separationMin,
		TitleOverlapRate:  titleRate,
		EntityOverlapRate: entityRate,
	}
}

func labelFromMetrics(m ClusterMetrics) entity.ClusterEvaluationLabel {
	if m.Size >= minSizeForCorrect && m.CohesionMean >= cohesionCorrectMin && m.SeparationMin >= separationCorrectMin {
		return entity.ClusterLabelCorrect
	}
	if m.Size >= minSizeForFlag && m.CohesionMean < cohesionSplitMax {
		return entity.ClusterLabelSplitNeeded
	}
	if m.Size >= minSizeForFlag && m.SeparationMin < separationMergeMax {
		return entity.ClusterLabelShouldMerge
	}
	return entity.ClusterLabelMixed
}

// proposeThreshold nudges the current similarity threshold +-thresholdStep
// toward fewer splits (more corroboration required) or fewer merges
// (less), clamped to [thresholdClampMin, thresholdClampMax]. It always
// saves the result, even when unchanged, so GetCurrentClusterParams
// reflects the audit's most recent pass.
func (a *Auditor) proposeThreshold(ctx context.Context, splitCount, mergeCount int) (float64, error) {
	current := defaultThreshold
	if params, err := a.store.GetCurrentClusterParams(ctx); err == nil && params != nil {
		current = params.SimilarityThreshold
	}

	threshold := current
	switch {
	case splitCount > mergeCount+labelImbalance:
		threshold = current + thresholdStep
	case mergeCount > splitCount+labelImbalance:
		threshold = current - thresholdStep
	}
	if threshold < thresholdClampMin {
		threshold = thresholdClampMin
	}
	if threshold > thresholdClampMax {
		threshold = thresholdClampMax
	}

	if err := a.store.SaveClusterParams(ctx, entity.ClusterParams{SimilarityThreshold: threshold}); err != nil {
		return 0, fmt.Errorf("audit: save cluster params: %w", err)
	}
	return threshold, nil
}

// SingletonMergeCandidates surfaces, for each recent singleton, its
// best-scoring peer among the last singletonCandidateLimit recent
// articles, when that score clears singletonMergeSimilarity. It is
// read-only: nothing here enqueues, clusters, or otherwise mutates state.
func (a *Auditor) SingletonMergeCandidates(ctx context.Context, limit int, windowHours int) ([]SingletonCandidate, error) {
	singles, err := a.store.GetSingletonArticles(ctx, limit, singletonWindowCutoff(windowHours))
	if err != nil {
		return nil, fmt.Errorf("audit: get singleton articles: %w", err)
	}
	recent, err := a.store.GetRecentArticles(ctx, singletonCandidateLimit, true)
	if err != nil {
		return nil, fmt.Errorf("audit: get recent articles: %w", err)
	}

	var out []SingletonCandidate
	for _, s := range singles {
		baseText := strings.TrimSpace(s.GeneratedTitle + " " + s.Excerpt + " " + previewOf(s.Content))
		var bestID int64
		bestSim := 0.0
		for _, r := range recent {
			if r.ID == s.ID {
				continue
			}
			candText := strings.TrimSpace(r.GeneratedTitle + " " + r.Excerpt + " " + previewOf(r.Content))
			if sim := cluster.CombinedSimilarity(baseText, candText); sim > bestSim {
				bestSim, bestID = sim, r.ID
			}
		}
		if bestID != 0 && bestSim >= singletonMergeSimilarity {
			out = append(out, SingletonCandidate{ArticleID: s.ID, CandidateArticleID: bestID, Similarity: bestSim})
		}
	}
	return out, nil
}

func singletonWindowCutoff(hours int) time.Time {
	if hours <= 0 {
		hours = 72
	}
	return time.Now().Add(-time.Duration(hours) * time.Hour)
}

func previewOf(content string) string {
	if len(content) > contentPreviewLen {
		return content[:contentPreviewLen]
	}
	return content
}

func pairwiseSimilarities(texts []string) []float64 {
	var sims []float64
	for i := 0; i < len(texts); i++ {
		for j := i + 1; j < len(texts); j++ {
			sims = append(sims, cluster.CombinedSimilarity(texts[i], texts[j]))
		}
	}
	return sims
}

func meanAndMedian(values []float64) (mean, median float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return mean, median
}

var (
	entitySequencePattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})\b`)
	nonWordPattern        = regexp.MustCompile(`[^A-Za-z0-9\s]`)
)

func titleEntities(s string) map[string]bool {
	set := make(map[string]bool)
	for _, m := range entitySequencePattern.FindAllString(s, -1) {
		set[m] = true
	}
	return set
}

func titleTokens(s string) map[string]bool {
	set := make(map[string]bool)
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(s), " ")
	for _, w := range strings.Fields(cleaned) {
		if len(w) >= 3 {
			set[w] = true
		}
	}
	return set
}

// titleAndEntityOverlap mirrors `_title_and_entity_overlap`: the fraction
// of title pairs within a cluster that share at least one capitalized
// entity-like sequence, and the fraction that share at least one
// significant token.
func titleAndEntityOverlap(titles []string) (entityRate, tokenRate float64) {
	n := len(titles)
	if n < 2 {
		return 0, 0
	}
	entitySets := make([]map[string]bool, n)
	tokenSets := make([]map[string]bool, n)
	for i, t := range titles {
		entitySets[i] = titleEntities(t)
		tokenSets[i] = titleTokens(t)
	}

	pairs, entHits, tokHits := 0, 0, 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs++
			if setsIntersect(entitySets[i], entitySets[j]) {
				entHits++
			}
			if setsIntersect(tokenSets[i], tokenSets[j]) {
				tokHits++
			}
		}
	}
	if pairs == 0 {
		return 0, 0
	}
	return float64(entHits) / float64(pairs), float64(tokHits) / float64(pairs)
}

func setsIntersect(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return true
		}
	}
	return false
}

func concatMembers(articles []entity.Article) string {
	if len(articles) == 0 {
		return ""
	}
	var b strings.Builder
	for i, a := range articles {
		if i > 0 {
			b.WriteByte(' ')
		}
		title := a.GeneratedTitle
		if title == "" {
			title = a.OriginalTitle
		}
		preview := a.Content
		if len(preview) > contentPreviewLen {
			preview = preview[:contentPreviewLen]
		}
		b.WriteString(title)
		b.WriteByte(' ')
		b.WriteString(a.Excerpt)
		b.WriteByte(' ')
		b.WriteString(preview)
	}
	return b.String()
}
