// Package file loads run settings from a TOML file. Settings are read
// once at startup and passed explicitly; nothing in the engine reads
// configuration ambiently.
package file
