package model

// TableCounts summarizes how a PBF extract would be routed by the tag filter.
type TableCounts struct {
	Nodes     int64 `json:"nodes"`
	Ways      int64 `json:"ways"`
	Relations int64 `json:"relations"`
	Dropped   int64 `json:"dropped"` // no tags left after deny-list stripping
	Buildings int64 `json:"buildings"`
	Roads     int64 `json:"roads"`
	POIs      int64 `json:"pois"`
}
