// Package hexgrid is the logical board: a dense array of hex cells carrying
// height, terrain and occupancy. Columns are staggered ("brick" layout); odd
// columns sit half a cell up, see package layout.
package hexgrid
