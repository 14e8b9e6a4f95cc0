package filemanager

import "github.com/rs/zerolog"

func Name(func(string) (string, bool), zerolog.Logger) string { return "Finder" }
