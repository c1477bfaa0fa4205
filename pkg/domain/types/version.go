package types

// Version is replaced at build time via -ldflags "-X".
var Version = "dev"
