package internal

// Version is the current release of the reserve service executables.
const Version = "0.1.0"
