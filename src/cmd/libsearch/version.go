package main

// Version is set via -ldflags at build time (see the teacher's own build
// scripts for the pattern); it defaults to "dev" for local builds.
var Version = "dev"
