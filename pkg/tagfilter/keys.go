package tagfilter

// DenyKeys are stripped from every object before routing. Entries ending in
// '*' match every key with that prefix. Most come from mapper bookkeeping or
// from bulk imports.
var DenyKeys = []string{
	// mapper keys
	"attribution",
	"comment",
	"created_by",
	"fixme",
	"note",
	"note:*",
	"odbl",
	"odbl:note",
	"source",
	"source:*",
	"source_ref",

	// imports
	"CLC:*",
	"geobase:*",
	"canvec:*",
	"osak:*",
	"kms:*",
	"ngbe:*",
	"it:fvg:*",
	"KSJ2:*",
	"yh:*",
	"LINZ2OSM:*",
	"linz2osm:*",
	"LINZ:*",
	"ref:linz:*",
	"WroclawGIS:*",
	"naptan:*",
	"tiger:*",
	"gnis:*",
	"NHD:*",
	"nhd:*",
	"mvdgis:*",
	"project:eurosha_2012",
	"ref:UrbIS",
	"accuracy:meters",
	"sub_sea:type",
	"waterway:type",
	"statscan:rbuid",
	"ref:ruian:addr",
	"ref:ruian",
	"building:ruian:type",
	"dibavod:id",
	"uir_adr:ADRESA_KOD",
	"gst:feat_id",
	"maaamet:ETAK",
	"ref:FR:FANTOIR",
	"3dshapes:ggmodelk",
	"AND_nosr_r",
	"OPPDATERIN",
	"addr:city:simc",
	"addr:street:sym_ul",
	"building:usage:pl",
	"building:use:pl",
	"teryt:simc",
	"raba:id",
	"dcgis:gis_id",
	"nycdoitt:bin",
	"chicago:building_id",
	"lojic:bgnum",
	"massgis:way_id",
	"lacounty:*",
	"at_bev:addr_date",

	// misc
	"import",
	"import_uuid",
	"OBJTYPE",
	"SK53_bulk:load",
	"mml:class",
}

// AreaKeys mark a closed way as a polygon unless area=no is set
var AreaKeys = []string{
	"aeroway",
	"amenity",
	"building",
	"harbour",
	"historic",
	"landuse",
	"leisure",
	"man_made",
	"military",
	"natural",
	"office",
	"place",
	"power",
	"public_transport",
	"shop",
	"sport",
	"tourism",
	"water",
	"waterway",
	"wetland",
	"abandoned:aeroway",
	"abandoned:amenity",
	"abandoned:building",
	"abandoned:landuse",
	"abandoned:power",
	"area:highway",
	"building:part",
}
