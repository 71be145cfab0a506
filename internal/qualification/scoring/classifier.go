package scoring

// Segment is the temperature band a scored lead falls into.
type Segment string

const (
	// SegmentHigh routes to the closer configured for hot leads.
	SegmentHigh Segment = "high"
	// SegmentLow routes to the closer configured for cold leads.
	SegmentLow Segment = "low"
)

// Classify maps a total score against the configured threshold.
// The lower bound of the high segment is inclusive: a score exactly at the
// threshold classifies as high.
func Classify(total, threshold int) Segment {
	if total >= threshold {
		return SegmentHigh
	}
	return SegmentLow
}
