package thermal

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ironsheep/thermal-inspect-mcp/internal/params"
)

// Box is an axis-aligned bounding box in candidate pixel coordinates.
//
// JSON encodes a Box as the four-element array [x, y, w, h], the layout
// reporting layers and feedback payloads both use.
type Box struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Area returns Width × Height.
func (b Box) Area() int {
	return b.Width * b.Height
}

// Intersection returns the area shared by b and o.
func (b Box) Intersection(o Box) int {
	x0, y0 := max(b.X, o.X), max(b.Y, o.Y)
	x1, y1 := min(b.X+b.Width, o.X+o.Width), min(b.Y+b.Height, o.Y+o.Height)
	return max(0, x1-x0) * max(0, y1-y0)
}

// MarshalJSON encodes the box as [x, y, w, h].
func (b Box) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]int{b.X, b.Y, b.Width, b.Height})
}

// UnmarshalJSON decodes a [x, y, w, h] array.
func (b *Box) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 4 {
		return fmt.Errorf("box must have 4 elements, got %d", len(v))
	}
	*b = Box{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	return nil
}

// Region is one connected component of a mask.
type Region struct {
	Box
	// Pixels is the number of mask pixels in the component.
	Pixels int
}

// ExtractRegions labels 4-connected components of mask and returns those
// with at least minPixels pixels, in row-major seed order.
//
// Components below the floor are discarded, never merged. Each mask pixel is
// claimed by exactly one component.
func ExtractRegions(mask *Mask, minPixels int) []Region {
	w, h := mask.Width, mask.Height
	visited := make([]bool, w*h)
	queue := make([]int, 0, 64)
	regions := make([]Region, 0)

	for seed := range mask.Bits {
		if !mask.Bits[seed] || visited[seed] {
			continue
		}
		visited[seed] = true
		queue = append(queue[:0], seed)
		minX, minY := seed%w, seed/w
		maxX, maxY := minX, minY
		count := 0

		for head := 0; head < len(queue); head++ {
			i := queue[head]
			x, y := i%w, i/w
			count++
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)

			if x+1 < w {
				queue = visit(mask, visited, queue, i+1)
			}
			if x > 0 {
				queue = visit(mask, visited, queue, i-1)
			}
			if y+1 < h {
				queue = visit(mask, visited, queue, i+w)
			}
			if y > 0 {
				queue = visit(mask, visited, queue, i-w)
			}
		}

		if count >= minPixels {
			regions = append(regions, Region{
				Box:    Box{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1},
				Pixels: count,
			})
		}
	}
	return regions
}

func visit(mask *Mask, visited []bool, queue []int, i int) []int {
	if mask.Bits[i] && !visited[i] {
		visited[i] = true
		queue = append(queue, i)
	}
	return queue
}

// MinRegionPixels is the area floor for a mask with validTotal participating
// pixels: max(minPixels, floor(ratio × validTotal)), never below 1 and never
// above params.MaxCount.
func MinRegionPixels(t params.Thresholds, validTotal int) int {
	byRatio := math.Floor(math.Min(float64(validTotal)*t.MinAreaRatio, params.MaxCount))
	floor := max(t.MinAreaPixels, 1)
	if byRatio > float64(floor) {
		floor = int(byRatio)
	}
	return min(floor, params.MaxCount)
}
