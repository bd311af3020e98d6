package kdtree

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"kuanb/kdindex/geom"
)

func randomPoint(rnd *rand.Rand, grid float64) geom.Point {
	// Snapping to a coarse grid produces coordinate ties and duplicates.
	return geom.Point{
		X: math.Round(rnd.Float64()*grid) / grid,
		Y: math.Round(rnd.Float64()*grid) / grid,
	}
}

// checkInvariants verifies axis alternation, partition order and the count.
func checkInvariants[V any](t *testing.T, tr *Tree[V]) {
	t.Helper()
	if tr.root != nil && tr.root.orient != Vertical {
		t.Fatalf("root orientation = %v, expect vertical", tr.root.orient)
	}
	count := 0
	var recurse func(n *node[V], region geom.Rect)
	recurse = func(n *node[V], region geom.Rect) {
		if n == nil {
			return
		}
		count++
		if !region.Contains(n.p) {
			t.Fatalf("point %v outside its region %v", n.p, region)
		}
		for _, c := range []*node[V]{n.low, n.high} {
			if c != nil && c.orient == n.orient {
				t.Fatalf("child %v has the same orientation as parent %v", c.p, n.p)
			}
		}
		low, high := n.split(region)
		if n.low != nil {
			if split, key := n.key(n.low.p); key >= split {
				t.Fatalf("low child %v of %v not strictly below split", n.low.p, n.p)
			}
		}
		if n.high != nil {
			if split, key := n.key(n.high.p); key < split {
				t.Fatalf("high child %v of %v below split", n.high.p, n.p)
			}
		}
		recurse(n.low, low)
		recurse(n.high, high)
	}
	recurse(tr.root, tr.bounds)
	if count != tr.Len() {
		t.Fatalf("node count == %d, Len() == %d", count, tr.Len())
	}
}

func TestRandomInsertInvariants(t *testing.T) {
	for _, grid := range []float64{4, 10, 1000} {
		for population := 0; population < 200; population += 37 {
			name := fmt.Sprintf("grid_%v_pop_%d", grid, population)
			t.Run(name, func(t *testing.T) {
				rnd := rand.New(rand.NewSource(0))
				tr := New[int]()
				distinct := make(map[geom.Point]int)
				for i := 0; i < population; i++ {
					p := randomPoint(rnd, grid)
					if err := tr.Insert(p, i); err != nil {
						t.Fatal(err)
					}
					distinct[p] = i
					checkInvariants(t, tr)
				}
				if tr.Len() != len(distinct) {
					t.Fatalf("Len() == %d, expect %d", tr.Len(), len(distinct))
				}
				for p, want := range distinct {
					got, err := tr.Get(p)
					if err != nil {
						t.Fatalf("Get(%v): %v", p, err)
					}
					if got != want {
						t.Fatalf("Get(%v) == %d, expect %d", p, got, want)
					}
				}
			})
		}
	}
}

func TestTiesGoHigh(t *testing.T) {
	tr := New[string]()
	tr.Insert(geom.Point{X: 0.5, Y: 0.5}, "root")
	tr.Insert(geom.Point{X: 0.5, Y: 0.2}, "same x")
	tr.Insert(geom.Point{X: 0.4, Y: 0.9}, "less x")

	if tr.root.high == nil || tr.root.high.p != (geom.Point{X: 0.5, Y: 0.2}) {
		t.Fatalf("point tied on x was not placed in the high subtree")
	}
	if tr.root.high.orient != Horizontal {
		t.Fatalf("child orientation = %v, expect horizontal", tr.root.high.orient)
	}
	if tr.root.low == nil || tr.root.low.p != (geom.Point{X: 0.4, Y: 0.9}) {
		t.Fatalf("point with smaller x was not placed in the low subtree")
	}
	if !tr.Contains(geom.Point{X: 0.5, Y: 0.2}) {
		t.Fatalf("tied point not found")
	}
}

func TestOverwrite(t *testing.T) {
	tr := New[string]()
	p := geom.Point{X: 0.3, Y: 0.7}
	tr.Insert(p, "a")
	tr.Insert(geom.Point{X: 0.1, Y: 0.1}, "b")
	if tr.Len() != 2 {
		t.Fatalf("Len() == %d, expect 2", tr.Len())
	}
	tr.Insert(p, "c")
	if tr.Len() != 2 {
		t.Fatalf("Len() == %d after overwrite, expect 2", tr.Len())
	}
	if v, err := tr.Get(p); err != nil || v != "c" {
		t.Fatalf("Get == %q, %v, expect \"c\", nil", v, err)
	}
}

func TestEmpty(t *testing.T) {
	tr := New[int]()
	if !tr.IsEmpty() || tr.Len() != 0 {
		t.Fatalf("new tree not empty")
	}
	if _, ok := tr.Nearest(geom.Point{X: 0.5, Y: 0.5}); ok {
		t.Fatalf("Nearest on empty tree found a point")
	}
	points, err := tr.Range(geom.Rect{MinX: -10, MinY: -10, MaxX: 10, MaxY: 10})
	if err != nil || len(points) != 0 {
		t.Fatalf("Range on empty tree == %v, %v", points, err)
	}
	if tr.Contains(geom.Point{}) {
		t.Fatalf("empty tree contains origin")
	}
	if _, err := tr.Get(geom.Point{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty tree err = %v, expect ErrNotFound", err)
	}
}

func TestInvalidArguments(t *testing.T) {
	nan := math.NaN()
	tr := New[int]()
	tr.Insert(geom.Point{X: 0.2, Y: 0.2}, 1)

	if err := tr.Insert(geom.Point{X: nan, Y: 0}, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Insert NaN err = %v", err)
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() == %d after rejected insert, expect 1", tr.Len())
	}
	if _, err := tr.Get(geom.Point{X: 0, Y: nan}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Get NaN err = %v", err)
	}
	if tr.Contains(geom.Point{X: nan, Y: nan}) {
		t.Fatalf("Contains NaN == true")
	}
	if _, ok := tr.Nearest(geom.Point{X: nan, Y: 0}); ok {
		t.Fatalf("Nearest NaN found a point")
	}
	if _, err := tr.Range(geom.Rect{MinX: 1, MinY: 0, MaxX: 0, MaxY: 1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Range inverted rect err = %v", err)
	}
	if _, err := NewBounded[int](geom.Rect{MinX: 0, MinY: nan, MaxX: 1, MaxY: 1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("NewBounded NaN err = %v", err)
	}
	if _, err := NewBounded[int](geom.Rect{MinX: math.Inf(-1), MinY: 0, MaxX: 1, MaxY: 1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("NewBounded -Inf err = %v", err)
	}
}

func TestInfiniteRejected(t *testing.T) {
	tr := New[int]()
	tr.Insert(geom.Point{X: 0.5, Y: 0.5}, 1)

	for _, p := range []geom.Point{
		{X: math.Inf(1), Y: 0},
		{X: 0, Y: math.Inf(-1)},
	} {
		if err := tr.Insert(p, 2); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("Insert(%v) err = %v", p, err)
		}
		if tr.Contains(p) {
			t.Fatalf("Contains(%v) == true", p)
		}
		if _, ok := tr.Nearest(p); ok {
			t.Fatalf("Nearest(%v) found a point", p)
		}
	}
	if tr.Len() != 1 {
		t.Fatalf("Len() == %d, expect 1", tr.Len())
	}
	if tr.Bounds() != geom.UnitSquare {
		t.Fatalf("Bounds() == %v after rejected inserts", tr.Bounds())
	}
	if _, err := json.Marshal(tr.GeoJSON()); err != nil {
		t.Fatalf("GeoJSON does not marshal: %v", err)
	}
}

func TestNearestVisitsFarSide(t *testing.T) {
	// The query routes into the empty low side of the root; the answer is
	// only reachable through the high side.
	tr := New[int]()
	tr.Insert(geom.Point{X: 0.5, Y: 0.9}, 0)
	tr.Insert(geom.Point{X: 0.51, Y: 0.5}, 1)

	got, ok := tr.Nearest(geom.Point{X: 0.45, Y: 0.5})
	if !ok || got != (geom.Point{X: 0.51, Y: 0.5}) {
		t.Fatalf("Nearest == %v, %t, expect (0.51, 0.5)", got, ok)
	}
}

func TestNearestExactMatch(t *testing.T) {
	tr := New[int]()
	rnd := rand.New(rand.NewSource(1))
	var points []geom.Point
	for i := 0; i < 100; i++ {
		p := randomPoint(rnd, 1000)
		tr.Insert(p, i)
		points = append(points, p)
	}
	for _, p := range points {
		got, ok := tr.Nearest(p)
		if !ok || got != p {
			t.Fatalf("Nearest(%v) == %v, expect the point itself", p, got)
		}
	}
}

func TestBoundsExtend(t *testing.T) {
	tr := New[int]()
	tr.Insert(geom.Point{X: 2, Y: -1}, 0)
	want := geom.Rect{MinX: 0, MinY: -1, MaxX: 2, MaxY: 1}
	if tr.Bounds() != want {
		t.Fatalf("Bounds() == %v, expect %v", tr.Bounds(), want)
	}
	checkInvariants(t, tr)
}

func TestRangeFuncStops(t *testing.T) {
	tr := New[int]()
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 50; i++ {
		tr.Insert(randomPoint(rnd, 1000), i)
	}
	calls := 0
	tr.RangeFunc(geom.UnitSquare, func(geom.Point, int) bool {
		calls++
		return calls < 3
	})
	if calls != 3 {
		t.Fatalf("fn called %d times, expect 3", calls)
	}
}

func TestWalk(t *testing.T) {
	tr := New[int]()
	tr.Insert(geom.Point{X: 0.5, Y: 0.5}, 0)
	tr.Insert(geom.Point{X: 0.25, Y: 0.75}, 1)
	tr.Insert(geom.Point{X: 0.25, Y: 0.25}, 2)

	var infos []NodeInfo
	tr.Walk(func(info NodeInfo) bool {
		infos = append(infos, info)
		return true
	})
	if len(infos) != 3 {
		t.Fatalf("walked %d nodes, expect 3", len(infos))
	}
	root := infos[0]
	if root.SplitFrom != (geom.Point{X: 0.5, Y: 0}) || root.SplitTo != (geom.Point{X: 0.5, Y: 1}) {
		t.Fatalf("root split line %v-%v", root.SplitFrom, root.SplitTo)
	}
	child := infos[1]
	wantRegion := geom.Rect{MinX: 0, MinY: 0, MaxX: 0.5, MaxY: 1}
	if child.Depth != 1 || child.Orientation != Horizontal || child.Region != wantRegion {
		t.Fatalf("child info %+v", child)
	}
	if child.SplitFrom != (geom.Point{X: 0, Y: 0.75}) || child.SplitTo != (geom.Point{X: 0.5, Y: 0.75}) {
		t.Fatalf("child split line %v-%v", child.SplitFrom, child.SplitTo)
	}
	grandchild := infos[2]
	if grandchild.Depth != 2 || grandchild.Orientation != Vertical {
		t.Fatalf("grandchild info %+v", grandchild)
	}

	fc := tr.GeoJSON()
	if len(fc.Features) != 1+2*3 {
		t.Fatalf("GeoJSON has %d features, expect %d", len(fc.Features), 1+2*3)
	}
	if fc.Features[1].Properties["stroke"] != "#FF0000" {
		t.Fatalf("root line stroke = %v", fc.Features[1].Properties["stroke"])
	}
}

func BenchmarkInsert(b *testing.B) {
	rnd := rand.New(rand.NewSource(0))
	tr := New[int]()
	for i := 0; i < b.N; i++ {
		tr.Insert(geom.Point{X: rnd.Float64(), Y: rnd.Float64()}, i)
	}
}

func BenchmarkNearest(b *testing.B) {
	rnd := rand.New(rand.NewSource(0))
	tr := New[int]()
	for i := 0; i < 100000; i++ {
		tr.Insert(geom.Point{X: rnd.Float64(), Y: rnd.Float64()}, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Nearest(geom.Point{X: rnd.Float64(), Y: rnd.Float64()})
	}
}
