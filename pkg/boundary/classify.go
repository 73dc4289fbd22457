package boundary

import "sort"

// Room labels produced by the default classifier.
const (
	LabelLiving   = "living"
	LabelBedroom  = "bedroom"
	LabelBathroom = "bathroom"
	LabelCloset   = "closet"
)

// Classifier labels detected boundaries by area. It is a rough
// heuristic, not a geometric fact; all thresholds are exported so
// callers can override them, and labels set by carry-over are not
// disturbed unless Relabel is set.
type Classifier struct {
	// BedroomMin/BedroomMax bound the area of secondary rooms, and
	// BedroomRank is how many of the largest rooms after the primary
	// are considered for the label.
	BedroomMin  float64
	BedroomMax  float64
	BedroomRank int
	// BathroomMax and ClosetMax are the small-room thresholds; the
	// closet test wins when both apply.
	BathroomMax float64
	ClosetMax   float64
	// Relabel overwrites labels already present on a boundary.
	Relabel bool
}

// DefaultClassifier returns the stock area heuristic.
func DefaultClassifier() Classifier {
	return Classifier{
		BedroomMin:  100,
		BedroomMax:  300,
		BedroomRank: 3,
		BathroomMax: 50,
		ClosetMax:   30,
	}
}

// Classify labels the boundaries in place: the largest becomes the
// primary living space, large rooms among the next few become
// bedrooms, and small rooms become bathrooms or closets.
func (c Classifier) Classify(boundaries []DetectedBoundary) {
	if len(boundaries) == 0 {
		return
	}
	order := make([]int, len(boundaries))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return boundaries[order[i]].Area > boundaries[order[j]].Area
	})

	for rank, idx := range order {
		b := &boundaries[idx]
		if b.Label != "" && !c.Relabel {
			continue
		}
		switch {
		case rank == 0:
			b.Label = LabelLiving
		case rank <= c.BedroomRank && b.Area >= c.BedroomMin && b.Area < c.BedroomMax:
			b.Label = LabelBedroom
		case b.Area < c.ClosetMax:
			b.Label = LabelCloset
		case b.Area < c.BathroomMax:
			b.Label = LabelBathroom
		}
	}
}

// CarryLabels transfers the label and name of each previous boundary
// to the new boundary whose centroid falls inside it. New boundaries
// matching no previous one are left unlabeled.
func CarryLabels(previous, next []DetectedBoundary) {
	for i := range next {
		c := next[i].Centroid()
		for _, old := range previous {
			if old.ContainsPoint(c) {
				next[i].Label = old.Label
				next[i].Name = old.Name
				break
			}
		}
	}
}
