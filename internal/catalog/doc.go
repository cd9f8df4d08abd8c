// Package catalog walks an engine project directory and builds the asset and
// script catalogs a host displays. Asset files are classified by their binary
// header; scripts are only listed. Every scan rebuilds both lists from
// scratch. This package is internal; external hosts should use pkg/core.
package catalog
