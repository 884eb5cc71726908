/*
Package faftex loads Supreme Commander / FAF unit textures by logical
identity (root location, unit name, texture kind) and decodes them into
normalized BGR/BGRA rasters.

The root may be a plain gamedata directory or a units.scd container (zip).
Archive entries are staged into a private temporary directory that is
removed on every exit path of a load call. Decoding runs through an ordered
chain of backends: JPEG-specialized, general raster, texconv-assisted DDS,
native DDS/EDDS (BCn + LZ4 chunk-stream), and a generic fallback. A backend
that does not claim the file's extension yields ErrNotApplicable and the
chain moves on; a backend that claims it but cannot parse the bytes fails
and the chain still moves on, keeping the last error for the caller.
*/
package faftex
