// Package spatial finds the nearest served station to a point.
//
// Distances are measured in longitude/latitude space as if it were a plane
// and converted with a flat 111 km per degree, which is only good to roughly
// the 1km resolution of the population grid.
//
// The tree is kept flat as []node with int child positions (-1 for none) so a
// built index is one allocation and queries read it without locking.
package spatial

import (
	"errors"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/travigo/railaccess/pkg/ctdf"
)

const KilometresPerDegree = 111.0

var ErrEmptyIndex = errors.New("spatial index has no served stations")

type Match struct {
	// Index is the position of the station in the index, see Index.Station.
	Index   int
	Station *ctdf.Station

	Degrees    float64
	DistanceKm float64
}

type node struct {
	station int
	axis    int
	left    int
	right   int
}

// Index is a static 2d-tree. It is safe for concurrent queries once built.
type Index struct {
	stations []*ctdf.Station
	points   []orb.Point

	nodes []node
	root  int
}

// NewIndex builds an index over the served stations (AvgDailyStops > 0), in
// the order given. Stations without scheduled stops are never indexed.
func NewIndex(stations []*ctdf.Station) (*Index, error) {
	index := &Index{root: -1}

	for _, station := range stations {
		if station == nil || !station.Served() || station.Location == nil {
			continue
		}
		index.stations = append(index.stations, station)
		index.points = append(index.points, station.Location.Point())
	}

	if len(index.stations) == 0 {
		return nil, ErrEmptyIndex
	}

	order := make([]int, len(index.stations))
	for i := range order {
		order[i] = i
	}
	index.nodes = make([]node, 0, len(order))
	index.root = index.build(order, 0)

	return index, nil
}

func (i *Index) build(order []int, depth int) int {
	if len(order) == 0 {
		return -1
	}

	axis := depth % 2
	sort.Slice(order, func(a, b int) bool {
		pa, pb := i.points[order[a]][axis], i.points[order[b]][axis]
		if pa == pb {
			return order[a] < order[b]
		}
		return pa < pb
	})

	median := len(order) / 2
	position := len(i.nodes)
	i.nodes = append(i.nodes, node{station: order[median], axis: axis})

	left := i.build(order[:median], depth+1)
	right := i.build(order[median+1:], depth+1)
	i.nodes[position].left = left
	i.nodes[position].right = right

	return position
}

func (i *Index) Len() int {
	return len(i.stations)
}

func (i *Index) Station(index int) *ctdf.Station {
	return i.stations[index]
}

// Nearest returns the closest station to point. Exact distance ties resolve
// to the station that came first when the index was built.
func (i *Index) Nearest(point orb.Point) Match {
	best := -1
	bestDistance := math.Inf(1)

	var search func(position int)
	search = func(position int) {
		if position < 0 {
			return
		}
		n := i.nodes[position]

		distance := planar.DistanceSquared(point, i.points[n.station])
		if distance < bestDistance || (distance == bestDistance && n.station < best) {
			best = n.station
			bestDistance = distance
		}

		diff := point[n.axis] - i.points[n.station][n.axis]
		near, far := n.left, n.right
		if diff > 0 {
			near, far = n.right, n.left
		}

		search(near)
		if diff*diff <= bestDistance {
			search(far)
		}
	}
	search(i.root)

	degrees := math.Sqrt(bestDistance)

	return Match{
		Index:      best,
		Station:    i.stations[best],
		Degrees:    degrees,
		DistanceKm: degrees * KilometresPerDegree,
	}
}
