package router

// aggregate holds the per-strategy_hash rollup used by the selection
// rule: highest mean score, ties broken by higher success count, then
// lower mean latency, then lower mean cost.
type aggregate struct {
	hash         string
	totalScore   float64
	totalLatency float64
	totalTokens  float64
	successCount int
	n            int
}

func (a *aggregate) meanScore() float64   { return a.totalScore / float64(a.n) }
func (a *aggregate) meanLatency() float64 { return a.totalLatency / float64(a.n) }
func (a *aggregate) meanTokens() float64  { return a.totalTokens / float64(a.n) }

// rowScore computes one row's composite score:
// exactMatchProlog and exactMatchAnswer each worth 1, prologStructureMatch
// worth 0.5 toward a success score; latency score 1000/(latency_ms+1);
// cost score 1000/(token_count+1); composite = 100*success + 10*latency + 1*cost.
func rowScore(row PerformanceRow) (score float64, success float64, tokenCount float64) {
	if row.Metrics["exactMatchProlog"] == true {
		success += 1
	}
	if row.Metrics["exactMatchAnswer"] == true {
		success += 1
	}
	if row.Metrics["prologStructureMatch"] == true {
		success += 0.5
	}

	latencyScore := 1000.0 / (float64(row.LatencyMS) + 1)

	if tc, ok := row.Cost["token_count"]; ok {
		tokenCount = toFloat(tc)
	}
	costScore := 1000.0 / (tokenCount + 1)

	score = 100*success + 10*latencyScore + 1*costScore
	return score, success, tokenCount
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

// selectBest aggregates rows by strategy hash and applies the
// tie-break rule, returning the winning hash or "" if rows is empty.
func selectBest(rows []PerformanceRow) string {
	if len(rows) == 0 {
		return ""
	}

	byHash := make(map[string]*aggregate)
	var order []string
	for _, row := range rows {
		agg, ok := byHash[row.StrategyHash]
		if !ok {
			agg = &aggregate{hash: row.StrategyHash}
			byHash[row.StrategyHash] = agg
			order = append(order, row.StrategyHash)
		}
		score, success, tokens := rowScore(row)
		agg.totalScore += score
		agg.totalLatency += float64(row.LatencyMS)
		agg.totalTokens += tokens
		if success > 0 {
			agg.successCount++
		}
		agg.n++
	}

	var best *aggregate
	for _, hash := range order {
		agg := byHash[hash]
		if best == nil || better(agg, best) {
			best = agg
		}
	}
	return best.hash
}

// better reports whether a ranks ahead of b under the tie-break chain.
func better(a, b *aggregate) bool {
	if a.meanScore() != b.meanScore() {
		return a.meanScore() > b.meanScore()
	}
	if a.successCount != b.successCount {
		return a.successCount > b.successCount
	}
	if a.meanLatency() != b.meanLatency() {
		return a.meanLatency() < b.meanLatency()
	}
	return a.meanTokens() < b.meanTokens()
}
