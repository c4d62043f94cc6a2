package particle

import (
	"reflect"
	"testing"
)

func TestMovementPriority(t *testing.T) {
	tests := []struct {
		name string
		mat  Material
		want MovementPriority
	}{
		{
			name: "wall has no movement",
			mat:  Material{Kind: Wall},
			want: nil,
		},
		{
			name: "solid only falls straight down",
			mat:  Material{Kind: Solid},
			want: MovementPriority{
				{{0, -1}},
			},
		},
		{
			name: "movable solid falls then slides diagonally",
			mat:  Material{Kind: MovableSolid},
			want: MovementPriority{
				{{0, -1}},
				{{-1, -1}, {1, -1}},
			},
		},
		{
			name: "liquid with zero fluidity spreads one cell",
			mat:  NewLiquid(0),
			want: MovementPriority{
				{{0, -1}},
				{{-1, -1}, {1, -1}},
				{{1, 0}, {-1, 0}},
			},
		},
		{
			name: "liquid fluidity extends lateral reach",
			mat:  NewLiquid(2),
			want: MovementPriority{
				{{0, -1}},
				{{-1, -1}, {1, -1}},
				{{1, 0}, {-1, 0}},
				{{2, 0}, {-2, 0}},
				{{3, 0}, {-3, 0}},
			},
		},
		{
			name: "gas rises then spreads",
			mat:  NewGas(1),
			want: MovementPriority{
				{{0, 1}, {1, 1}, {-1, 1}},
				{{2, 0}, {-2, 0}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.mat.MovementPriority()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MovementPriority() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFluidityClamp(t *testing.T) {
	if got := NewLiquid(99).Fluidity; got != MaxFluidity {
		t.Errorf("NewLiquid(99).Fluidity = %d, want %d", got, MaxFluidity)
	}
	if got := NewGas(-3).Fluidity; got != 0 {
		t.Errorf("NewGas(-3).Fluidity = %d, want 0", got)
	}
}

func TestMaterialKindString(t *testing.T) {
	kinds := map[MaterialKind]string{
		Wall:         "wall",
		Solid:        "solid",
		MovableSolid: "movable_solid",
		Liquid:       "liquid",
		Gas:          "gas",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
