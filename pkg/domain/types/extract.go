package types

// ExtractSuffix is the file name suffix of a downloadable extract, appended to
// "{country}-latest".
type ExtractSuffix string

const (
	// SuffixShapefile is the zipped shapefile bundle published per country.
	SuffixShapefile ExtractSuffix = "-free.shp.zip"
	// SuffixPBF is the raw OSM protobuf extract.
	SuffixPBF ExtractSuffix = ".osm.pbf"
)

// DefaultSuffixes is the preference order used when PBF is not forced.
var DefaultSuffixes = [2]ExtractSuffix{SuffixShapefile, SuffixPBF}

func (s ExtractSuffix) String() string { return string(s) }

const (
	// DownloadChunkSize is the buffer size used while streaming an extract.
	DownloadChunkSize = 8 * 1024

	// MaxResolveAttempts caps probes and overwrite prompts of one download.
	MaxResolveAttempts = 5
)
