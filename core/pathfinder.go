package core

import (
	"container/heap"

	"github.com/signalsfoundry/transit-planner/model"
)

// UnreachableDistance is the sentinel returned when no path exists.
const UnreachableDistance = 9999

// PathResult is the outcome of a shortest-path query: the ordered station
// sequence (start first) and its weighted length. Tubes weigh 1, long-range
// links 0, so a path using a long-range hop is shorter than its edge count.
type PathResult struct {
	Path     []int
	Distance int
}

// Reachable reports whether the query found any path.
func (r PathResult) Reachable() bool {
	return r.Distance < UnreachableDistance
}

// ShortestPathToType finds the cheapest path from start to the nearest
// station whose type equals target.
func (n *Network) ShortestPathToType(start int, target model.StationType) PathResult {
	return n.shortestPath(start, func(st *model.Station) bool {
		return st.Type == target
	})
}

// ShortestPathTo finds the cheapest path from start to a specific station.
func (n *Network) ShortestPathTo(start, goal int) PathResult {
	return n.shortestPath(start, func(st *model.Station) bool {
		return st.ID == goal
	})
}

// shortestPath is a min-heap Dijkstra relaxation over the current adjacency.
// All weights are non-negative, so the first goal station popped with a
// finalised distance ends the search.
func (n *Network) shortestPath(start int, isGoal func(*model.Station) bool) PathResult {
	startStation := n.Station(start)
	if startStation == nil {
		return PathResult{Distance: UnreachableDistance}
	}
	if isGoal(startStation) {
		return PathResult{Path: []int{start}, Distance: 0}
	}

	dist := map[int]int{start: 0}
	prev := make(map[int]int)

	pq := &stationQueue{{id: start, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if d, ok := dist[item.id]; ok && item.dist > d {
			continue
		}
		if st := n.Station(item.id); st != nil && isGoal(st) {
			return PathResult{Path: reconstruct(prev, start, item.id), Distance: item.dist}
		}
		for _, nb := range n.Neighbors(item.id) {
			nd := item.dist + nb.Weight
			if d, ok := dist[nb.To]; !ok || nd < d {
				dist[nb.To] = nd
				prev[nb.To] = item.id
				heap.Push(pq, pqItem{id: nb.To, dist: nd})
			}
		}
	}
	return PathResult{Distance: UnreachableDistance}
}

func reconstruct(prev map[int]int, start, goal int) []int {
	path := []int{goal}
	for cur := goal; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// EdgeTraffic estimates per-link passenger load by walking every landing-pad
// demand group's shortest path to its requested type and crediting the group
// size to each traversed edge. Unreachable groups contribute nothing.
func (n *Network) EdgeTraffic() map[model.PairKey]int {
	traffic := make(map[model.PairKey]int)
	for _, id := range n.StationIDs() {
		st := n.Station(id)
		if st == nil || !st.IsLandingPad() {
			continue
		}
		for t, count := range st.Waiting {
			if count <= 0 {
				continue
			}
			res := n.ShortestPathToType(id, t)
			if !res.Reachable() {
				continue
			}
			for i := 0; i+1 < len(res.Path); i++ {
				traffic[model.NewPairKey(res.Path[i], res.Path[i+1])] += count
			}
		}
	}
	return traffic
}

// pqItem pairs a station with its tentative distance in the frontier.
type pqItem struct {
	id   int
	dist int
}

type stationQueue []pqItem

func (q stationQueue) Len() int            { return len(q) }
func (q stationQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q stationQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *stationQueue) Push(x interface{}) { *q = append(*q, x.(pqItem)) }
func (q *stationQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
