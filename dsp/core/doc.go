// Package core holds small numeric and buffer helpers shared by the mesh,
// curve and raster packages.
package core
