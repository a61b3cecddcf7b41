package internal

// Version is the current voxtrain release version.
const Version = "0.3.0"
