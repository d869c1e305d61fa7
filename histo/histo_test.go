package histo

import (
	"encoding/json"
	"testing"
)

func TestAddAndNormalize(t *testing.T) {
	d := NewData([]float64{0, 1, 2, 3}, nil)
	d.AddData(0.5, 1.5, 1.7, 2.2, 5.0) //the last one is off range
	h := d.View()
	if h[0] != 1 || h[1] != 2 || h[2] != 1 {
		t.Error("wrong tallies:", h)
	}
	d.Normalize()
	if !d.Normalized() {
		t.Error("not flagged normalized")
	}
	//the off-range point still counts towards the total
	if s := d.Sum(); s > 1 {
		t.Error("normalized sum above one:", s)
	}
	d.UnNormalize()
	if d.View()[1] != 2 {
		t.Error("un-normalization did not restore tallies:", d.View())
	}
}

func TestFromCounts(t *testing.T) {
	d := FromCounts([]uint64{7, 3, 0, 1})
	h := d.View()
	if h[0] != 7 || h[3] != 1 {
		t.Error("wrong bins:", h)
	}
	div := d.CopyDividers()
	//bin i spans [i+0.5, i+1.5): size 1 lands in bin 0
	if div[0] != 0.5 || div[1] != 1.5 {
		t.Error("wrong dividers:", div)
	}
	d.AddData(2) //one more two-particle cluster
	if d.View()[1] != 4 {
		t.Error("AddData on counts failed:", d.View())
	}
}

func TestRawData(t *testing.T) {
	d := NewData([]float64{0, 1, 2}, []float64{0.1, 0.2, 1.5, 7.0, -3.0})
	h := d.View()
	if h[0] != 2 || h[1] != 1 {
		t.Error("wrong histogram from raw data:", h)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := NewData([]float64{0, 1, 2}, []float64{0.5, 1.5, 1.6})
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	var back Data
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Sum() != d.Sum() {
		t.Error("round trip lost data:", back.Sum(), d.Sum())
	}
	bd := back.View()
	for i, v := range d.View() {
		if bd[i] != v {
			t.Error("round trip bin mismatch:", bd, d.View())
		}
	}
}
