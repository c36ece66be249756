package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountersMonotonicPerType(t *testing.T) {
	s := NewModelState()

	assert.Equal(t, "Wall1", s.IncrementAndGetID(CounterWall, "Wall"))
	assert.Equal(t, "Wall2", s.IncrementAndGetID(CounterWall, "Wall"))
	// Independent counters do not interfere.
	assert.Equal(t, "Window1", s.IncrementAndGetID(CounterWindow, "Window"))
	assert.Equal(t, "Wall3", s.IncrementAndGetID(CounterWall, "Wall"))
	assert.Equal(t, 3, s.CounterValue(CounterWall))
}

func TestSystemIDRegistryFirstWins(t *testing.T) {
	s := NewModelState()

	s.RegisterSystemID(RoleAirDistribution, "HVACDistribution1")
	s.RegisterSystemID(RoleAirDistribution, "HVACDistribution2")

	id, ok := s.SystemID(RoleAirDistribution)
	assert.True(t, ok)
	assert.Equal(t, "HVACDistribution1", id)

	_, ok = s.SystemID(RoleHydronicDistribution)
	assert.False(t, ok)
}

func TestWarningsAccumulate(t *testing.T) {
	s := NewModelState()
	s.AddWarning("wall %q has non-positive thermal resistance", "North")
	s.AddWarning("source declares %d bathrooms; defaulting to 1", 0)

	warnings := s.Warnings()
	assert.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].Message, "North")
	assert.Contains(t, warnings[1].Message, "bathrooms")
}

func TestBuildingDetails(t *testing.T) {
	s := NewModelState()
	s.SetBuildingDetails(map[string]any{"facility_type": "single-family detached"})
	s.SetBuildingDetails(map[string]any{"bedrooms": 3.0})

	assert.Equal(t, "single-family detached", s.BuildingString("facility_type", ""))
	assert.Equal(t, 3.0, s.BuildingFloat("bedrooms", 0))
	assert.Equal(t, 1.0, s.BuildingFloat("bathrooms", 1.0))
}

func TestFoundationAndWallAccumulators(t *testing.T) {
	s := NewModelState()
	s.AddFoundationDetail(FoundationDetail{Type: "basement", TotalArea: 800})
	s.AddFoundationDetail(FoundationDetail{Type: "slab", TotalArea: 200})
	s.AddWallSegment(WallSegment{ID: "Wall1", Area: 300})

	details := s.FoundationDetails()
	assert.Len(t, details, 2)
	assert.Equal(t, "basement", details[0].Type)
	assert.Len(t, s.WallSegments(), 1)
}

func TestFlueRecording(t *testing.T) {
	s := NewModelState()
	assert.False(t, s.HasFlue())
	s.RecordFlueDiameter(0)
	assert.False(t, s.HasFlue())
	s.RecordFlueDiameter(127)
	assert.True(t, s.HasFlue())
}
