package tagfilter

import (
	"strings"

	"github.com/paulmach/osm"
)

// Table is the destination table of an object
type Table string

const (
	TableNone      Table = ""
	TableBuildings Table = "buildings"
	TableRoads     Table = "roads"
	TablePOIs      Table = "pois"
)

// Record is what the flex style inserts for one object
type Record struct {
	Table Table
	Name  string
	Class string
	Type  string
	Tags  osm.Tags
}

func denied(key string) bool {
	for _, d := range DenyKeys {
		if prefix, ok := strings.CutSuffix(d, "*"); ok {
			if strings.HasPrefix(key, prefix) {
				return true
			}
		} else if key == d {
			return true
		}
	}
	return false
}

// Clean returns tags without denied keys. The input is not modified.
func Clean(tags osm.Tags) osm.Tags {
	cleaned := make(osm.Tags, 0, len(tags))
	for _, tag := range tags {
		if !denied(tag.Key) {
			cleaned = append(cleaned, tag)
		}
	}
	return cleaned
}

// HasAreaTags reports whether tags describe a polygonal feature
func HasAreaTags(tags osm.Tags) bool {
	switch tags.Find("area") {
	case "yes":
		return true
	case "no":
		return false
	}
	for _, key := range AreaKeys {
		if tags.HasTag(key) {
			return true
		}
	}
	return false
}

func isClosed(w *osm.Way) bool {
	n := len(w.Nodes)
	return n > 2 && w.Nodes[0].ID == w.Nodes[n-1].ID
}

// RouteWay applies the way rules of the flex style
func RouteWay(w *osm.Way) Record {
	tags := Clean(w.Tags)
	if len(tags) == 0 {
		return Record{}
	}

	if isClosed(w) && HasAreaTags(tags) && tags.HasTag("building") {
		subtype := tags.Find("building")
		if subtype == "yes" {
			subtype = ""
		}
		class := tags.Find("type")
		if class == "" {
			class = "building"
		}
		return Record{Table: TableBuildings, Name: tags.Find("name"), Class: class, Type: subtype, Tags: tags}
	}

	if tags.HasTag("highway") {
		return Record{Table: TableRoads, Name: tags.Find("name"), Class: tags.Find("highway"), Tags: tags}
	}

	return Record{Tags: tags}
}

// RouteNode applies the node rules. Class and Type stay empty.
func RouteNode(n *osm.Node) Record {
	tags := Clean(n.Tags)
	if len(tags) == 0 {
		return Record{}
	}

	if tags.HasTag("name") || tags.HasTag("shop") {
		return Record{Table: TablePOIs, Name: tags.Find("name"), Tags: tags}
	}

	return Record{Tags: tags}
}
