package service

// AggregateScores computes the overall rubric score for a decision: the
// arithmetic mean of content, rigor and resource (plus innovation when the
// reviewer supplied it) rounded half up to the nearest integer. Returns
// nil unless all three required scores are present.
func AggregateScores(content, rigor, resource, innovation *int) *int {
	if content == nil || rigor == nil || resource == nil {
		return nil
	}

	sum := *content + *rigor + *resource
	n := 3
	if innovation != nil {
		sum += *innovation
		n++
	}

	// integer round-half-up of sum/n
	overall := (sum*2 + n) / (n * 2)
	return &overall
}

// ScoreInBounds checks a single rubric score against the configured
// inclusive range. Nil scores are always acceptable; optional fields are
// simply omitted from the aggregate.
func ScoreInBounds(score *int, min, max int) bool {
	if score == nil {
		return true
	}
	return *score >= min && *score <= max
}
