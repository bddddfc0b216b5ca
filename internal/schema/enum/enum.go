// Package enum defines the byte-mapped wire enums.
//
// Every enum reserves Unknown for byte values outside its mapped set.
// Unknown is data, not an error: records carrying an unmapped byte decode
// normally with the field set to Unknown.
package enum

//go:generate go run marketwire/libs/tool/enumgen -dir .
