package area

import (
	"strings"
	"testing"
)

func TestLayerTiles(t *testing.T) {
	l := NewLayer("base", 4, 3)
	big := &Tile{ID: "rock", Width: 2, Height: 2}
	l.Fill(big)
	if l.TileAt(0, 0) != big || l.TileAt(2, 2) != big {
		t.Error("fill should place tiles at step corners")
	}
	if l.TileAt(1, 0) != nil {
		t.Error("covered cells hold no reference")
	}
	if l.TileAt(-1, 0) != nil || l.TileAt(4, 0) != nil {
		t.Error("out of range should be nil")
	}
	l.SetTile(9, 9, big)
}

func TestAreaValidate(t *testing.T) {
	tests := []struct {
		name string
		area Area
		want string
	}{
		{"size", Area{ID: "a"}, "must be positive"},
		{"layer", Area{ID: "a", Width: 2, Height: 2, Layers: []*Layer{NewLayer("l", 3, 2)}}, "layer l"},
		{"entity layer", Area{ID: "a", Width: 2, Height: 2, Layers: []*Layer{NewLayer("l", 2, 2)}, EntityLayerIndex: 1}, "entity layer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.area.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestObjectSizePoints(t *testing.T) {
	pts := NewObjectSize("2", 2, "").Points(3, 4)
	if len(pts) != 4 || pts[0].X != 3 || pts[3].X != 4 || pts[3].Y != 5 {
		t.Errorf("points = %v", pts)
	}
}

func TestChangeListenerList(t *testing.T) {
	var l ChangeListenerList[int]
	var got []string
	l.Add("a", func(v int) { got = append(got, "a") })
	l.Add("b", func(v int) { got = append(got, "b") })
	l.Add("a", func(v int) { got = append(got, "a2") })
	l.Notify(1)
	if strings.Join(got, ",") != "a2,b" {
		t.Errorf("notified = %v", got)
	}
	l.Remove("a")
	l.Remove("missing")
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
}
