// Package hashing provides the path normalizer, XXH64 primitive, and
// content-addressed asset identifier scheme shared by every component
// that needs to turn a virtual path into a stable 128-bit key.
package hashing
