// Package composition defines the serializable snapshot of one generated
// composition: the inputs that produced it, the cluster set, the per-layer
// visibility, and every layer's geometry payload.
//
// Snapshots are the unit of exchange between the pipeline, the cache, the
// gallery, and the HTTP server. They serialize to JSON; the layer payloads
// are kept as raw messages so a snapshot can round-trip without the reader
// knowing every payload shape.
package composition

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pixelczar/tangle-map/pkg/cluster"
	"github.com/pixelczar/tangle-map/pkg/layers"
)

// Snapshot is one generated composition.
type Snapshot struct {
	Seed         int64   `json:"seed" bson:"seed"`
	Width        float64 `json:"width" bson:"width"`
	Height       float64 `json:"height" bson:"height"`
	Padding      float64 `json:"padding" bson:"padding"`
	ClusterCount int     `json:"cluster_count" bson:"cluster_count"`

	Clusters []cluster.Cluster `json:"clusters" bson:"clusters"`

	// States and PaintOrder are render-time settings carried alongside the
	// data so a snapshot can be redrawn exactly as it was saved.
	States     map[string]layers.State `json:"states,omitempty" bson:"states,omitempty"`
	PaintOrder []string                `json:"paint_order,omitempty" bson:"paint_order,omitempty"`

	// Data maps layer name to its serialized geometry payload.
	Data map[string]json.RawMessage `json:"data" bson:"data"`

	GeneratedAt time.Time `json:"generated_at,omitempty" bson:"generated_at,omitempty"`
}

// EncodeData serializes a pipeline data store into snapshot form.
func EncodeData(store map[string]any) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(store))
	for name, payload := range store {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode layer %s: %w", name, err)
		}
		out[name] = raw
	}
	return out, nil
}

// DecodeData reconstructs a typed pipeline data store from snapshot form.
// Payloads for unknown layer names are kept as raw messages so snapshots
// written by newer builds still round-trip.
func DecodeData(data map[string]json.RawMessage) (map[string]any, error) {
	out := make(map[string]any, len(data))
	for name, raw := range data {
		payload := payloadFor(name)
		if payload == nil {
			out[name] = raw
			continue
		}
		if err := json.Unmarshal(raw, payload); err != nil {
			return nil, fmt.Errorf("decode layer %s: %w", name, err)
		}
		out[name] = payload
	}
	return out, nil
}

func payloadFor(name string) any {
	switch name {
	case layers.NameGrid:
		return &layers.GridData{}
	case layers.NamePlots:
		return &layers.PlotsData{}
	case layers.NameBoundaries:
		return &layers.BoundariesData{}
	case layers.NamePaths:
		return &layers.PathsData{}
	case layers.NameInfrastructure:
		return &layers.InfraData{}
	case layers.NameFlow:
		return &layers.FlowData{}
	case layers.NameParticles:
		return &layers.ParticlesData{}
	}
	return nil
}

// Marshal serializes a snapshot to JSON.
func Marshal(s *Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal deserializes a snapshot from JSON.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// ContentBytes returns the deterministic portion of the snapshot, with the
// generation timestamp and the render-time settings stripped, serialized
// for content addressing. Two snapshots generated from the same inputs
// hash identically no matter how they were displayed or when.
func ContentBytes(s *Snapshot) ([]byte, error) {
	clone := *s
	clone.GeneratedAt = time.Time{}
	clone.States = nil
	clone.PaintOrder = nil
	return json.Marshal(&clone)
}
