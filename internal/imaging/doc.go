// Package imaging loads and prepares the images the thermal detector works on.
//
// It sits between file paths handed to the MCP server and the in-memory
// images the thermal and calibration packages consume:
//
//   - ImageCache decodes PNG, JPEG, GIF, BMP, TIFF and WebP files and keeps
//     them in memory keyed by path.
//   - MatchSize resamples a baseline to the candidate's dimensions so a pair
//     captured at different resolutions can still be compared.
//   - LoadMask turns an image into a thermal validity mask.
//   - BoxPreview crops one detection box and encodes it as PNG.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Boxes are
// (x, y, width, height) as elsewhere in the module.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The other functions are
// stateless and never modify their input images.
//
// # Performance Considerations
//
// For repeated comparisons against the same baseline, keep one ImageCache
// for the lifetime of the process. Thermal frames are small, but a long
// session over many files should call Evict or Clear to bound memory.
//
// # Testing
//
// Tests here use the standard testing package with table-driven cases and
// temp-file images, like the rest of the I/O facing packages. The numeric
// packages (thermal, params, calibration, config) use testify instead.
package imaging
