package model

// Region is one entry of the extract catalog
type Region struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Parent string            `json:"parent,omitempty"`
	URLs   map[string]string `json:"urls"`
}

// HasShapefile reports whether the catalog lists a shapefile bundle for the region.
func (r *Region) HasShapefile() bool {
	_, ok := r.URLs["shp"]
	return ok
}
