// Package imaging is the image-source collaborator for the blob detection
// engine: it loads and decodes image files, converts them to the normalized
// grayscale grids the engine consumes, and crops regions of interest before
// detection.
//
// The detection core in internal/blob never touches files, codecs, or color;
// everything format-shaped lives here. A thread-safe ImageCache avoids
// redundant disk reads and caches the derived float grid alongside the
// decoded image, since grid conversion is the more expensive of the two for
// large frames.
//
// Coordinates are 0-based with (0,0) at the top-left corner; region bounds
// use an inclusive top-left and exclusive bottom-right corner.
package imaging
