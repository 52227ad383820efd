package scouting

import (
	"math"
	"sort"

	"github.com/scoutlab/squadscope/internal/domain/player"
)

// RankedCandidate pairs a candidate with its similarity to the squad's
// statistical profile, rescaled to [0,1].
type RankedCandidate struct {
	Profile    player.Profile
	Similarity float64
}

// RankResult carries ranked candidates for one target bucket. OffTarget is
// set when no candidate matched the bucket and the ranking fell back to the
// whole pool.
type RankResult struct {
	TargetBucket string
	OffTarget    bool
	Candidates   []RankedCandidate
}

// Rank scores candidates against the squad's mean statistical profile using
// cosine similarity over standardized feature vectors. Candidates are
// filtered to the target bucket first; an empty match falls back to the
// entire pool with OffTarget set. Results are ordered by similarity
// descending, ties broken by candidate id ascending, truncated to topK.
func Rank(squad []player.Profile, pool []player.Profile, targetBucket string, topK int) RankResult {
	result := RankResult{TargetBucket: targetBucket}
	if len(pool) == 0 || topK <= 0 {
		return result
	}

	candidates := filterByBucket(pool, targetBucket)
	if len(candidates) == 0 {
		candidates = pool
		result.OffTarget = true
	}

	// Standardization is fit jointly over squad and candidates so the two
	// groups share one scale per feature.
	rows := make([][]float64, 0, len(squad)+len(candidates))
	for _, p := range squad {
		rows = append(rows, p.SimilarityVector())
	}
	for _, p := range candidates {
		rows = append(rows, p.SimilarityVector())
	}
	standardize(rows)

	centroid := meanVector(rows[:len(squad)], featureCount)

	ranked := make([]RankedCandidate, 0, len(candidates))
	for i, p := range candidates {
		cos := cosineSimilarity(rows[len(squad)+i], centroid)
		ranked = append(ranked, RankedCandidate{
			Profile:    p,
			Similarity: (cos + 1) / 2,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Similarity != ranked[j].Similarity {
			return ranked[i].Similarity > ranked[j].Similarity
		}
		return ranked[i].Profile.ID < ranked[j].Profile.ID
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	result.Candidates = ranked

	return result
}

const featureCount = 6

func filterByBucket(pool []player.Profile, bucket string) []player.Profile {
	out := make([]player.Profile, 0, len(pool))
	for _, p := range pool {
		if player.BucketContains(bucket, p.Age) {
			out = append(out, p)
		}
	}

	return out
}

// standardize rescales each feature column to zero mean and unit variance
// in place. A zero-variance column becomes all zeros rather than dividing
// by zero.
func standardize(rows [][]float64) {
	if len(rows) == 0 {
		return
	}

	n := float64(len(rows))
	for col := 0; col < featureCount; col++ {
		mean := 0.0
		for _, row := range rows {
			mean += row[col]
		}
		mean /= n

		variance := 0.0
		for _, row := range rows {
			diff := row[col] - mean
			variance += diff * diff
		}
		variance /= n

		if variance == 0 {
			for _, row := range rows {
				row[col] = 0
			}
			continue
		}

		std := math.Sqrt(variance)
		for _, row := range rows {
			row[col] = (row[col] - mean) / std
		}
	}
}

func meanVector(rows [][]float64, width int) []float64 {
	out := make([]float64, width)
	if len(rows) == 0 {
		return out
	}

	for _, row := range rows {
		for col := 0; col < width; col++ {
			out[col] += row[col]
		}
	}
	for col := 0; col < width; col++ {
		out[col] /= float64(len(rows))
	}

	return out
}

func cosineSimilarity(a, b []float64) float64 {
	dot := 0.0
	normA := 0.0
	normB := 0.0
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if cos > 1 {
		return 1
	}
	if cos < -1 {
		return -1
	}

	return cos
}
