package model

// Version of the codemap tool.
const Version = "0.2.0"
