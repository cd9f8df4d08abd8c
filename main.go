package main

import "github.com/octave-engine/octconnect/cmd/octconnect"

func main() { octconnect.Execute() }
