package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pixelczar/tangle-map/pkg/canvas"
	"github.com/pixelczar/tangle-map/pkg/cluster"
	"github.com/pixelczar/tangle-map/pkg/layers"
	"github.com/pixelczar/tangle-map/pkg/random"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(bytes.NewBuffer(nil), log.Options{})
}

func newTestPipeline(seed int64) (*Pipeline, layers.Params) {
	rnd := random.New(seed)
	field := cluster.NewField(800, 600, 40, 3)
	p := New(rnd, field, testLogger(), layers.All()...)
	params := layers.Params{Width: 800, Height: 600, Padding: 40, ClusterCount: 3}
	return p, params
}

func storeJSON(t *testing.T, store map[string]any) []byte {
	t.Helper()
	data, err := json.Marshal(store)
	if err != nil {
		t.Fatalf("marshal store: %v", err)
	}
	return data
}

func TestGenerateAllDeterministic(t *testing.T) {
	p1, params := newTestPipeline(1234)
	p2, _ := newTestPipeline(1234)

	s1 := p1.GenerateAll(context.Background(), params)
	s2 := p2.GenerateAll(context.Background(), params)

	if !bytes.Equal(storeJSON(t, s1), storeJSON(t, s2)) {
		t.Error("same seed and params should produce identical stores")
	}
}

func TestGenerateAllSeedSensitivity(t *testing.T) {
	p1, params := newTestPipeline(1234)
	p2, _ := newTestPipeline(5678)

	s1 := p1.GenerateAll(context.Background(), params)
	s2 := p2.GenerateAll(context.Background(), params)

	if bytes.Equal(storeJSON(t, s1), storeJSON(t, s2)) {
		t.Error("different seeds should produce different stores")
	}
}

func TestGenerateAllCoversEveryLayer(t *testing.T) {
	p, params := newTestPipeline(99)
	store := p.GenerateAll(context.Background(), params)

	for _, name := range []string{
		layers.NameGrid, layers.NamePlots, layers.NameBoundaries,
		layers.NamePaths, layers.NameInfrastructure, layers.NameFlow,
		layers.NameParticles,
	} {
		if _, ok := store[name]; !ok {
			t.Errorf("store missing layer %s", name)
		}
	}
}

func TestDisabledLayersStillGenerate(t *testing.T) {
	p1, params := newTestPipeline(42)
	p2, _ := newTestPipeline(42)
	p2.SetEnabled(layers.NameGrid, false)
	p2.SetEnabled(layers.NameFlow, false)

	s1 := p1.GenerateAll(context.Background(), params)
	s2 := p2.GenerateAll(context.Background(), params)

	if !bytes.Equal(storeJSON(t, s1), storeJSON(t, s2)) {
		t.Error("enabled flags must not influence generation")
	}
}

func TestRenderAllReusesStore(t *testing.T) {
	p, params := newTestPipeline(7)
	ctx := context.Background()

	cv1 := canvas.NewSVG(800, 600)
	p.RenderAll(ctx, cv1, params, false) // triggers generation
	first, err := cv1.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// A second pass without regenerate must reuse the store verbatim and
	// leave the stream untouched, yielding an identical artifact.
	cv2 := canvas.NewSVG(800, 600)
	p.RenderAll(ctx, cv2, params, false)
	second, err := cv2.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("render without regenerate should reproduce the same artifact")
	}
}

func TestRenderAllRegenerateAdvancesStream(t *testing.T) {
	p, params := newTestPipeline(7)
	ctx := context.Background()

	cv1 := canvas.NewSVG(800, 600)
	p.RenderAll(ctx, cv1, params, false)
	first, _ := cv1.Encode()

	cv2 := canvas.NewSVG(800, 600)
	p.RenderAll(ctx, cv2, params, true)
	second, _ := cv2.Encode()

	// Clusters persist in the field, but the stream has moved on, so the
	// regenerated layers differ.
	if bytes.Equal(first, second) {
		t.Error("regenerate should consume draws and change the composition")
	}
}

func TestDisabledLayerSkippedInRender(t *testing.T) {
	p1, params := newTestPipeline(11)
	p2, _ := newTestPipeline(11)
	p2.SetEnabled(layers.NameParticles, false)
	ctx := context.Background()

	cv1 := canvas.NewSVG(800, 600)
	p1.RenderAll(ctx, cv1, params, false)
	full, _ := cv1.Encode()

	cv2 := canvas.NewSVG(800, 600)
	p2.RenderAll(ctx, cv2, params, false)
	partial, _ := cv2.Encode()

	if bytes.Equal(full, partial) {
		t.Error("disabling a layer should change the rendered output")
	}
	if len(partial) >= len(full) {
		t.Error("disabling the particles layer should shrink the artifact")
	}
}

func TestFadedLayerStillPaints(t *testing.T) {
	// Opacity is a style attribute, not a skip: a faded layer still emits
	// its elements, unlike a disabled one.
	faded, params := newTestPipeline(11)
	faded.SetOpacity(layers.NameParticles, 0.3)
	cv1 := canvas.NewSVG(800, 600)
	faded.RenderAll(context.Background(), cv1, params, false)
	fadedOut, _ := cv1.Encode()

	disabled, _ := newTestPipeline(11)
	disabled.SetEnabled(layers.NameParticles, false)
	cv2 := canvas.NewSVG(800, 600)
	disabled.RenderAll(context.Background(), cv2, params, false)
	disabledOut, _ := cv2.Encode()

	if len(fadedOut) <= len(disabledOut) {
		t.Error("faded layer should still emit its elements")
	}
	if !bytes.Contains(fadedOut, []byte(`opacity="0.20"`)) {
		t.Error("expected faded opacity attribute in output")
	}
}

func TestLayersMetadataWithoutGeneration(t *testing.T) {
	p, _ := newTestPipeline(5)

	infos := p.Layers()
	if len(infos) != 7 {
		t.Fatalf("expected 7 layers, got %d", len(infos))
	}
	if p.Generated() {
		t.Error("Layers should not trigger generation")
	}
	if infos[0].Name != layers.NameGrid {
		t.Errorf("expected grid first in generation order, got %s", infos[0].Name)
	}
	for _, info := range infos {
		if !info.Enabled || info.Opacity != 1 {
			t.Errorf("layer %s should start enabled at full opacity", info.Name)
		}
	}
}

func TestSetOpacityClamps(t *testing.T) {
	p, _ := newTestPipeline(5)
	p.SetOpacity(layers.NameGrid, 1.7)
	p.SetOpacity(layers.NameFlow, -0.2)

	states := p.States()
	if got := states[layers.NameGrid].Opacity; got != 1 {
		t.Errorf("opacity should clamp to 1, got %g", got)
	}
	if got := states[layers.NameFlow].Opacity; got != 0 {
		t.Errorf("opacity should clamp to 0, got %g", got)
	}
}

func TestPaintSequenceDefaultsToZIndex(t *testing.T) {
	p, _ := newTestPipeline(5)

	seq := p.paintSequence()
	for i := 1; i < len(seq); i++ {
		if seq[i-1].ZIndex() > seq[i].ZIndex() {
			t.Fatalf("paint order not ascending by z-index: %s (z=%d) before %s (z=%d)",
				seq[i-1].Name(), seq[i-1].ZIndex(), seq[i].Name(), seq[i].ZIndex())
		}
	}
}

func TestSetPaintOrderOverride(t *testing.T) {
	p, _ := newTestPipeline(5)
	p.SetPaintOrder([]string{layers.NameParticles, layers.NameGrid, "bogus"})

	seq := p.paintSequence()
	if seq[0].Name() != layers.NameParticles || seq[1].Name() != layers.NameGrid {
		t.Errorf("explicit order should lead the sequence, got %s, %s", seq[0].Name(), seq[1].Name())
	}
	if len(seq) != 7 {
		t.Errorf("unknown names should be dropped, remaining layers appended; got %d entries", len(seq))
	}

	p.SetPaintOrder(nil)
	if p.PaintOrder() != nil {
		t.Error("nil should restore the derived order")
	}
}

func TestValidateCleanRegistry(t *testing.T) {
	p, _ := newTestPipeline(5)
	if warnings := p.Validate(); len(warnings) != 0 {
		t.Errorf("standard registry should validate cleanly, got %v", warnings)
	}
}

func TestValidatePaintOrderConflict(t *testing.T) {
	p, _ := newTestPipeline(5)
	// particles (z=70) before grid (z=10) contradicts z-index
	p.SetPaintOrder([]string{layers.NameParticles, layers.NameGrid})

	warnings := p.Validate()
	found := false
	for _, w := range warnings {
		if w.Code == WarnPaintOrderConflict {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s warning, got %v", WarnPaintOrderConflict, warnings)
	}
}

type dupZLayer struct {
	layers.Generator
	name string
}

func (d dupZLayer) Name() string { return d.name }
func (d dupZLayer) ZIndex() int  { return 10 }

func TestValidateDuplicateZIndex(t *testing.T) {
	gens := layers.All()
	gens = append(gens, dupZLayer{Generator: gens[0], name: "shadow"})
	p := New(random.New(1), cluster.NewField(800, 600, 40, 3), testLogger(), gens...)

	warnings := p.Validate()
	found := false
	for _, w := range warnings {
		if w.Code == WarnDuplicateZIndex {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s warning, got %v", WarnDuplicateZIndex, warnings)
	}
}
