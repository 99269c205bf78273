package render

import (
	"fmt"
	"sort"

	"github.com/willbeason/mandelbrot/pkg/plot"
)

// Regions are well known windows of the set.
var Regions = map[string]plot.Window{
	"full": {MinX: -2, MaxX: 1, MinY: -1.25, MaxY: 1.25},

	// Dense filaments and repeating curls.
	"seahorse-valley": {MinX: -0.8, MaxX: -0.7, MinY: 0.05, MaxY: 0.15},

	// Large bulb with trunk-like tendrils.
	"elephant-valley": {MinX: 0.25, MaxX: 0.35, MinY: -0.05, MaxY: 0.05},

	// Small copy of the set with tight spiral arms.
	"spiral-minibrot": {MinX: -0.7435, MaxX: -0.7420, MinY: 0.1310, MaxY: 0.1325},

	"triple-spiral": {MinX: -0.7480, MaxX: -0.7450, MinY: 0.0950, MaxY: 0.0980},

	"valley-of-the-dragon": {MinX: -0.7400, MaxX: -0.7350, MinY: 0.1800, MaxY: 0.1850},
}

// Region looks up a named window.
func Region(name string) (plot.Window, error) {
	w, ok := Regions[name]
	if !ok {
		return plot.Window{}, fmt.Errorf("%w: unknown region %q, known regions are %v", ErrInvalidConfig, name, RegionNames())
	}
	return w, nil
}

func RegionNames() []string {
	names := make([]string, 0, len(Regions))
	for name := range Regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
