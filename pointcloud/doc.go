// Package pointcloud provides the point storage consumed by the sacfit
// model types.
//
// Clouds store coordinates in struct-of-arrays layout so that scoring
// kernels can stream the X/Y/Z planes independently. A cloud is built once
// and treated as read-only by everything in this module; concurrent readers
// are safe as long as no one keeps appending.
package pointcloud
