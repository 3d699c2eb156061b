package paths

import (
	"flag"
	"strings"
)

// SetupFilePathFlag registers a string flag on the command line flag set
// holding the path to fileName. See SetupFilePathFlagSet.
func SetupFilePathFlag(fileName, flagName string, flagPtr *string) {
	SetupFilePathFlagSet(flag.CommandLine, fileName, flagName, flagPtr)
}

// SetupFilePathFlagSet registers a string flag on fs holding the path to
// fileName. It defaults to what Find returns, which is empty if the file is
// nowhere to be found. The usage text lists where Find looks.
func SetupFilePathFlagSet(fs *flag.FlagSet, fileName, flagName string, flagPtr *string) {
	dirs := append([]string{"$" + EnvDataDir}, getDefaultPathDirs()...)
	fs.StringVar(flagPtr, flagName, Find(fileName), "path to "+fileName+"; looked for in "+strings.Join(dirs, ", "))
}
