// Package cluster decides, for a newly-completed article, whether it
// corroborates an existing story cluster, founds a new one alongside
// cross-domain peers, or stays a singleton. It never deletes or merges
// clusters; that judgment is left to the audit routine, which is advisory
// only.
package cluster

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/AMStarks/beacon/internal/domain/entity"
	"github.com/AMStarks/beacon/internal/repository"
)

const (
	candidateLimit       = 150
	topCandidates        = 10
	maxFoundingPeers     = 3
	timeWindow           = 72 * time.Hour
	breakingThreshold    = 0.22
	policyThreshold      = 0.16
	thresholdClampMin    = 0.16
	thresholdClampMax    = 0.28
	titleSimThreshold    = 0.40
	tokenJaccardEntity   = 0.15
	tokenJaccardNoEntity = 0.10
	sigOverlapThreshold  = 0.08
	sameDomainTitleSim   = 0.30
	sameDomainJaccard    = 0.08
	geoOnlyTitleSimFloor = 0.30
	policyTopicBoost     = 0.03
)

// ArticleType is the coarse classification used to pick a weight vector and
// acceptance threshold (spec ss4.4 Step 2).
type ArticleType string

const (
	ArticleTypeBreaking ArticleType = "breaking"
	ArticleTypePolicy   ArticleType = "policy"
)

// weights is the per-signal contribution to the combined similarity score.
type weights struct {
	lexical  float64
	semantic float64
	location float64
	event    float64
}

var breakingWeights = weights{lexical: 0.6, semantic: 0.0, location: 0.3, event: 0.1}
var policyWeights = weights{lexical: 0.45, semantic: 0.0, location: 0.35, event: 0.20}

// SemanticScorer is the optional embedding-based similarity signal (spec
// ss4.4 Step 3: "semantic (optional): sentence-embedding cosine; disabled
// by default (weight 0)"). A Clusterer with no SemanticScorer configured,
// or one that errors, simply contributes 0 for this signal -- there is no
// separate gate keyed on it at any threshold.
type SemanticScorer interface {
	// Similarity returns the cosine similarity between the two articles'
	// stored embeddings. ok is false when either article has no embedding
	// on file, in which case the caller must treat the signal as absent.
	Similarity(ctx context.Context, articleIDA, articleIDB int64) (score float64, ok bool, err error)
}

// Clusterer implements spec ss4.4.
type Clusterer struct {
	store    repository.Store
	semantic SemanticScorer
}

// New creates a Clusterer. semantic may be nil, in which case the optional
// semantic signal always contributes 0.
func New(store repository.Store, semantic SemanticScorer) *Clusterer {
	return &Clusterer{store: store, semantic: semantic}
}

type scoredCandidate struct {
	article    entity.Article
	similarity float64
}

// Cluster decides membership for articleID given its combinedText
// (generated_title + excerpt + content_preview[:1500], see
// entity.Article.CombinedText). It returns the cluster_id the article was
// joined to or founded, or nil if it remains a singleton.
func (c *Clusterer) Cluster(ctx context.Context, articleID int64, combinedText string) (*int64, error) {
	base, err := c.store.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	candidates, err := c.store.GetRecentArticles(ctx, candidateLimit, true)
	if err != nil {
		return nil, err
	}

	combinedText = cleanForComparison(combinedText)
	articleType := inferArticleType(combinedText)
	w, threshold := c.weightsAndThreshold(ctx, articleType)

	slog.Debug("cluster: scoring candidates",
		slog.Int64("article_id", articleID),
		slog.String("type", string(articleType)),
		slog.Float64("threshold", threshold),
		slog.Int("candidate_count", len(candidates)))

	baseSig := storySignature(base.GeneratedTitle, base.Excerpt)
	baseDomain := strings.ToLower(base.SourceDomain)

	var accepted []scoredCandidate
	for _, cand := range candidates {
		if cand.ID == articleID {
			continue
		}
		candText := cleanForComparison(cand.CombinedText())

		similarity := c.similarity(ctx, base, cand, combinedText, candText, w)
		if articleType == ArticleTypePolicy {
			similarity += topicBoostPolicy(combinedText, candText)
		}

		g := evaluateGate(gateInput{
			baseTitle:    base.GeneratedTitle,
			baseExcerpt:  base.Excerpt,
			baseDomain:   baseDomain,
			baseSig:      baseSig,
			baseCreated:  base.CreatedAt,
			candTitle:    cand.GeneratedTitle,
			candExcerpt:  cand.Excerpt,
			candDomain:   strings.ToLower(cand.SourceDomain),
			candCreated:  cand.CreatedAt,
		})
		if !g.accept {
			continue
		}
		if similarity < threshold {
			continue
		}

		accepted = append(accepted, scoredCandidate{article: cand, similarity: similarity})
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].similarity > accepted[j].similarity })
	if len(accepted) > topCandidates {
		accepted = accepted[:topCandidates]
	}
	if len(accepted) == 0 {
		slog.Info("cluster: no similar articles, leaving as singleton", slog.Int64("article_id", articleID))
		return nil, nil
	}

	for _, sc := range accepted {
		existing, err := c.store.GetArticleClusters(ctx, sc.article.ID)
		if err != nil {
			return nil, err
		}
		if len(existing) == 0 {
			continue
		}
		clusterID := existing[0].ID
		if err := c.store.AddToCluster(ctx, articleID, clusterID, sc.similarity); err != nil {
			return nil, err
		}
		slog.Info("cluster: joined existing cluster",
			slog.Int64("article_id", articleID), slog.Int64("cluster_id", clusterID))
		return &clusterID, nil
	}

	var crossDomain []scoredCandidate
	for _, sc := range accepted {
		if dom := strings.ToLower(sc.article.SourceDomain); dom != "" && dom != baseDomain {
			crossDomain = append(crossDomain, sc)
		}
	}
	if len(crossDomain) == 0 {
		slog.Info("cluster: insufficient cross-domain corroboration, leaving as singleton",
			slog.Int64("article_id", articleID))
		return nil, nil
	}
	if len(crossDomain) > maxFoundingPeers {
		crossDomain = crossDomain[:maxFoundingPeers]
	}

	clusterID, err := c.foundCluster(ctx, articleID, *base, crossDomain)
	if err != nil {
		return nil, err
	}
	return &clusterID, nil
}

func (c *Clusterer) foundCluster(ctx context.Context, articleID int64, base entity.Article, peers []scoredCandidate) (int64, error) {
	texts := make([]string, 0, len(peers)+1)
	texts = append(texts, memberText(base))
	for _, p := range peers {
		texts = append(texts, memberText(p.article))
	}

	title := generateClusterTitle(texts)
	summary := generateClusterSummary(texts, base.GeneratedTitle)

	clusterID, err := c.store.CreateCluster(ctx, title, summary)
	if err != nil {
		return 0, err
	}
	if err := c.store.AddToCluster(ctx, articleID, clusterID, 1.0); err != nil {
		return 0, err
	}
	for _, p := range peers {
		if err := c.store.AddToCluster(ctx, p.article.ID, clusterID, p.similarity); err != nil {
			return 0, err
		}
	}

	slog.Info("cluster: founded new cluster",
		slog.Int64("article_id", articleID), slog.Int64("cluster_id", clusterID),
		slog.Int("peer_count", len(peers)), slog.String("title", title))
	return clusterID, nil
}

// weightsAndThreshold picks the weight vector and acceptance threshold for
// articleType, overriding the breaking threshold with the most recently
// saved clusterer parameter if one exists (audit ss4.5's parameter
// proposer nudges this value; the policy threshold is left untouched since
// it already sits at the clamp floor).
func (c *Clusterer) weightsAndThreshold(ctx context.Context, articleType ArticleType) (weights, float64) {
	if articleType == ArticleTypePolicy {
		return policyWeights, policyThreshold
	}

	threshold := breakingThreshold
	if params, err := c.store.GetCurrentClusterParams(ctx); err == nil && params != nil {
		threshold = clamp(params.SimilarityThreshold, thresholdClampMin, thresholdClampMax)
	}
	return breakingWeights, threshold
}

func (c *Clusterer) similarity(ctx context.Context, base *entity.Article, cand entity.Article, baseText, candText string, w weights) float64 {
	lexical := tfidfCosineSimilarity(baseText, candText)
	location := jaccardSimilarity(extractGeoEntities(baseText), extractGeoEntities(candText))
	event := jaccardSimilarity(extractEventEntities(baseText), extractEventEntities(candText))

	semantic := 0.0
	if w.semantic > 0 && c.semantic != nil {
		if score, ok, err := c.semantic.Similarity(ctx, base.ID, cand.ID); err == nil && ok {
			semantic = score
		}
	}

	return w.lexical*lexical + w.semantic*semantic + w.location*location + w.event*event
}

// CombinedSimilarity scores two arbitrary texts with the same lexical +
// location + event combination the breaking-article weight vector uses,
// with semantic left out entirely. It has no notion of a single base
// article or candidate pool, so it is exported for callers outside this
// package that need a single pairwise similarity number -- the audit
// routine's cohesion/separation metrics (spec ss4.5), grounded on
// `cluster_audit.py`'s reuse of `calculate_similarity` with its default
// weights.
func CombinedSimilarity(a, b string) float64 {
	a = cleanForComparison(a)
	b = cleanForComparison(b)
	lexical := tfidfCosineSimilarity(a, b)
	location := jaccardSimilarity(extractGeoEntities(a), extractGeoEntities(b))
	event := jaccardSimilarity(extractEventEntities(a), extractEventEntities(b))
	return breakingWeights.lexical*lexical + breakingWeights.location*location + breakingWeights.event*event
}

func memberText(a entity.Article) string {
	preview := a.Content
	if len(preview) > 1000 {
		preview = preview[:1000]
	}
	title := a.GeneratedTitle
	if title == "" {
		title = a.OriginalTitle
	}
	return strings.TrimSpace(title + " " + a.Excerpt + " " + preview)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
