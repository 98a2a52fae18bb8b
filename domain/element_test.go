package domain

import (
	"board-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMerge_Later_Layers_Win_And_Unknown_Keys_Survive(t *testing.T) {
	req := require.New(t)
	stored := Element{"element_id": "e1", "room": "r1", "player": "alice", "x": 1.0, "legacy": true}
	pending := Element{"element_id": "e1", "x": 2.0, "styles": map[string]any{"color": "red"}}

	merged := Merge(stored, pending)

	req.Equal(Element{
		"element_id": "e1",
		"room":       "r1",
		"player":     "alice",
		"x":          2.0,
		"legacy":     true,
		"styles":     map[string]any{"color": "red"},
	}, merged)
	// Inputs are left untouched
	req.Equal(1.0, stored["x"])
}

func TestElement_Player(t *testing.T) {
	req := require.New(t)

	player, ok := Element{"player": "bob"}.Player()
	req.True(ok)
	req.Equal("bob", player)

	_, ok = Element{"element_id": "e1"}.Player()
	req.False(ok)

	_, ok = Element{"player": ""}.Player()
	req.False(ok)
}

func TestValidateElement(t *testing.T) {
	tests := []struct {
		name      string
		element   Element
		wantField string
	}{
		{
			name:    "minimal element with unknown fields",
			element: Element{"element_id": "e1", "room": "r1", "shape": "dice", "value": 6.0},
		},
		{
			name: "full element",
			element: Element{
				"element_id":  "e1",
				"room":        "r1",
				"player":      "alice",
				"type":        "card",
				"coordinates": []any{1.0, 2.0},
				"styles":      map[string]any{"z": 3.0},
			},
		},
		{
			name:      "missing element_id",
			element:   Element{"room": "r1"},
			wantField: "element_id",
		},
		{
			name:      "missing room",
			element:   Element{"element_id": "e1"},
			wantField: "room",
		},
		{
			name:      "coordinates must be integers",
			element:   Element{"element_id": "e1", "room": "r1", "coordinates": []any{1.5, 2.0}},
			wantField: "coordinates",
		},
		{
			name:      "styles must be a mapping",
			element:   Element{"element_id": "e1", "room": "r1", "styles": "red"},
			wantField: "styles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			got, err := ValidateElement(tt.element)
			if tt.wantField == "" {
				req.NoError(err)
				req.Equal(tt.element, got)
				return
			}
			var verrs errors.ValidationErrors
			req.True(errors.As(err, &verrs))
			req.ErrorIs(err, errors.ErrValidation)
			req.Contains(verrs, tt.wantField)
		})
	}
}

func TestParseFrame(t *testing.T) {
	req := require.New(t)

	// Given a well-formed frame
	msg, err := ParseFrame([]byte(`{"event":"upsert-element","data":{"x":1}}`))
	req.NoError(err)
	req.Equal("upsert-element", msg.Event)
	req.Equal(map[string]any{"x": 1.0}, msg.Data)

	// Given a frame without data
	msg, err = ParseFrame([]byte(`{"event":"get-statistics"}`))
	req.NoError(err)
	req.Nil(msg.Data)

	// Given a frame without event
	_, err = ParseFrame([]byte(`{"data":{}}`))
	var verrs errors.ValidationErrors
	req.True(errors.As(err, &verrs))
	req.Equal([]string{"Missing data for required field."}, verrs["event"])

	// Given data that is not an object
	_, err = ParseFrame([]byte(`{"event":"x","data":[1]}`))
	req.True(errors.As(err, &verrs))
	req.Contains(verrs, "data")

	// Given garbage
	_, err = ParseFrame([]byte(`not json`))
	req.ErrorIs(err, errors.ErrValidation)
}
