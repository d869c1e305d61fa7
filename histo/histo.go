//Package histo provides a small histogram type used to report cluster-size
//statistics of vmmc runs. Adapted from goChem's histogram facilities.
package histo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is a histogram: dividers delimit the bins, histo holds the per-bin
//tallies (or frequencies once normalized).
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

//NewData returns a new histogram from the given dividers and raw data.
//rawdata can be nil, in which case an empty histogram is created.
func NewData(dividers, rawdata []float64) *Data {
	d := new(Data)
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	return d
}

//FromCounts builds a histogram of cluster sizes from per-size tallies,
//where counts[i] is the number of events with size i+1. Bin i spans
//[i+0.5, i+1.5), so each size gets its own bin centred on the integer.
func FromCounts(counts []uint64) *Data {
	d := new(Data)
	d.dividers = make([]float64, len(counts)+1)
	d.histo = make([]float64, len(counts))
	for i := range d.dividers {
		d.dividers[i] = float64(i) + 0.5
	}
	for i, v := range counts {
		d.histo[i] = float64(v)
		d.total += int(v)
	}
	return d
}

//AddData adds the given data point(s) to the histogram. Values off the
//divider range are omitted.
func (d *Data) AddData(point ...float64) {
	norma := d.normalized
	if norma {
		d.UnNormalize()
	}
	for _, v := range point {
		for j := 0; j < len(d.dividers)-1; j++ {
			if d.dividers[j] <= v && v < d.dividers[j+1] {
				d.histo[j]++
				break
			}
		}
	}
	d.total += len(point)
	if norma {
		d.Normalize()
	}
}

//Normalized returns true if the histogram is normalized.
func (d *Data) Normalized() bool { return d.normalized }

//Normalize normalizes the histogram.
func (d *Data) Normalize() { d.normaunnorma(true) }

//UnNormalize un-normalizes the histogram.
func (d *Data) UnNormalize() { d.normaunnorma(false) }

func (d *Data) normaunnorma(normalize bool) {
	if d.total <= 0 {
		return
	}
	n := float64(d.total)
	d.normalized = false
	if normalize {
		n = 1 / float64(d.total)
		d.normalized = true
	}
	floats.Scale(n, d.histo)
}

//Sum returns the sum of the bin contents.
func (d *Data) Sum() float64 { return floats.Sum(d.histo) }

//View returns the bin contents. The slice is owned by the histogram.
func (d *Data) View() []float64 { return d.histo }

//CopyDividers copies the dividers of the histogram into dest if given and
//large enough, allocating otherwise.
func (d *Data) CopyDividers(dest ...[]float64) []float64 {
	var out []float64
	if len(dest) > 0 && len(dest[0]) >= len(d.dividers) {
		out = dest[0][:len(d.dividers)]
	} else {
		out = make([]float64, len(d.dividers))
	}
	return floats.ScaleTo(out, 1, d.dividers)
}

//ReHisto rebuilds the histogram from the dividers and raw data given.
//Values off the divider range are removed before binning, as stat.Histogram
//panics on them.
func (d *Data) ReHisto(dividers, rawdata []float64) {
	if rawdata != nil {
		sort.Float64s(rawdata)
		maxi := sort.SearchFloat64s(rawdata, dividers[len(dividers)-1])
		mini := sort.SearchFloat64s(rawdata, dividers[0])
		if maxi < len(rawdata) {
			rawdata = rawdata[:maxi]
		}
		if mini != 0 {
			rawdata = rawdata[mini:]
		}
	}
	d.total = len(rawdata)
	d.histo = stat.Histogram(nil, dividers, rawdata, nil)
}

//String prints a -hopefully- pretty representation of the histogram.
func (d *Data) String() string {
	ret := fmt.Sprintf("Normalized: %v, TotalData: %d\n", d.normalized, d.total)
	labels := make([]string, 0, len(d.dividers)-1)
	values := make([]string, 0, len(d.dividers)-1)
	for i, v := range d.histo {
		labels = append(labels, fmt.Sprintf("%4.2f-%4.2f", d.dividers[i], d.dividers[i+1]))
		values = append(values, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(labels, " "), strings.Join(values, " "))
}

func (d *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		Normalized: d.normalized,
		Total:      d.total,
		Dividers:   d.dividers,
		Histo:      d.histo,
	})
}

func (d *Data) UnmarshalJSON(b []byte) error {
	var a struct {
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	d.normalized = a.Normalized
	d.total = a.Total
	d.dividers = a.Dividers
	d.histo = a.Histo
	return nil
}
