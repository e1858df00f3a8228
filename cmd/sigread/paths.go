package main

import "tools.zach/dev/sigread/internal/paths"

// DataPaths aliases [paths.DataDir] into the main package.
type DataPaths = paths.DataDir
