package cluster

import (
	"testing"

	"github.com/pixelczar/tangle-map/pkg/random"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := NewField(1200, 900, 50, 4).Generate(random.New(42), 4)
	b := NewField(1200, 900, 50, 4).Generate(random.New(42), 4)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("cluster %d differs: %+v != %+v", i, a[i], b[i])
		}
	}
}

func TestGenerate_FieldRanges(t *testing.T) {
	f := NewField(1200, 900, 50, 6)
	for _, c := range f.Generate(random.New(7), 6) {
		if c.X < 50 || c.X > 1150 || c.Y < 50 || c.Y > 850 {
			t.Errorf("cluster %d outside padded canvas: (%v, %v)", c.ID, c.X, c.Y)
		}
		if c.Radius < 80 || c.Radius >= 200 {
			t.Errorf("cluster %d radius out of range: %v", c.ID, c.Radius)
		}
		if c.Intensity < 0.6 || c.Intensity >= 1.0 {
			t.Errorf("cluster %d intensity out of range: %v", c.ID, c.Intensity)
		}
		if c.Type < 0 || c.Type > 2 {
			t.Errorf("cluster %d type out of range: %d", c.ID, c.Type)
		}
	}
}

func TestGenerate_CountClamped(t *testing.T) {
	f := NewField(800, 600, 40, 3)
	if got := len(f.Generate(random.New(1), 99)); got != MaxCount {
		t.Errorf("count 99 generated %d clusters, want %d", got, MaxCount)
	}
	if got := len(f.Generate(random.New(1), 0)); got != MinCount {
		t.Errorf("count 0 generated %d clusters, want %d", got, MinCount)
	}
}

func TestGet_LazyThenStable(t *testing.T) {
	f := NewField(800, 600, 40, 3)
	rnd := random.New(42)

	first := f.Get(rnd)
	if len(first) != 3 {
		t.Fatalf("lazy Get generated %d clusters, want 3", len(first))
	}

	// A second Get must return the same set without consuming draws.
	probe := random.New(42)
	for i := 0; i < 3*6; i++ {
		probe.Next() // mirror the draws Generate consumed
	}
	want := probe.Next()

	second := f.Get(rnd)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Get regenerated cluster %d", i)
		}
	}
	if got := rnd.Next(); got != want {
		t.Errorf("second Get consumed draws: next = %v, want %v", got, want)
	}
}

func TestSpatialQueries(t *testing.T) {
	f := NewField(1000, 1000, 0, 2)
	f.clusters = []Cluster{
		{ID: 0, X: 100, Y: 100, Radius: 50},
		{ID: 1, X: 800, Y: 800, Radius: 150},
	}

	if c, ok := f.Closest(120, 120); !ok || c.ID != 0 {
		t.Errorf("Closest(120,120) = %+v, %v", c, ok)
	}
	if got := f.Containing(810, 810); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("Containing(810,810) = %+v", got)
	}
	if got := f.Containing(500, 500); got != nil {
		t.Errorf("Containing(500,500) = %+v, want none", got)
	}
	if got := f.Within(0, 0, 200); len(got) != 1 || got[0].ID != 0 {
		t.Errorf("Within(0,0,200) = %+v", got)
	}
}

func TestClosest_Empty(t *testing.T) {
	f := NewField(100, 100, 0, 1)
	if _, ok := f.Closest(0, 0); ok {
		t.Error("Closest on empty field reported a cluster")
	}
}

func TestAddRemove_Renumber(t *testing.T) {
	f := NewField(1000, 1000, 0, 2)
	rnd := random.New(9)
	f.Generate(rnd, 2)

	added := f.Add(rnd, 500, 500)
	if added.ID != 2 {
		t.Errorf("added cluster id = %d, want 2", added.ID)
	}

	if !f.Remove(0) {
		t.Fatal("Remove(0) reported no removal")
	}
	if f.Remove(99) {
		t.Error("Remove(99) reported a removal")
	}
	for i, c := range f.clusters {
		if c.ID != i {
			t.Errorf("cluster %d has id %d after renumber", i, c.ID)
		}
	}
}
