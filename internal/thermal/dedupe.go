package thermal

// Deduplicate drops every box whose own area is at least ratio inside some
// other surviving box.
//
// The rule is strictly pairwise and order dependent: box i is compared with
// every other box j that has not been dropped yet, and the first j that
// contains it drops it. A dropped box is never used to drop another. Input
// order is preserved in the output.
func Deduplicate(boxes []Box, ratio float64) []Box {
	keep := make([]bool, len(boxes))
	for i := range keep {
		keep[i] = true
	}

	for i := range boxes {
		if !keep[i] {
			continue
		}
		area := boxes[i].Area()
		if area <= 0 {
			continue
		}
		for j := range boxes {
			if i == j || !keep[j] {
				continue
			}
			if float64(boxes[i].Intersection(boxes[j]))/float64(area) >= ratio {
				keep[i] = false
				break
			}
		}
	}

	kept := make([]Box, 0, len(boxes))
	for i, b := range boxes {
		if keep[i] {
			kept = append(kept, b)
		}
	}
	return kept
}
