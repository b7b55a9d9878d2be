package backend

import (
	"flag"
	"strconv"
)

var (
	VolumeCLIArg int = -1

	FlagPlay    = flag.Bool("play", false, "unpause or begin playback")
	FlagPause   = flag.Bool("pause", false, "pause playback")
	FlagStop    = flag.Bool("stop", false, "stop playback")
	FlagVersion = flag.Bool("version", false, "print app version and exit")
	FlagHelp    = flag.Bool("help", false, "print command line options and exit")
)

func init() {
	flag.Func("volume", "sets the playback volume (0-100)", func(s string) error {
		v, err := strconv.Atoi(s)
		VolumeCLIArg = v
		return err
	})
}

// MediaCLIArg returns the media file or URL given as the first positional argument, if any.
func MediaCLIArg() string {
	return flag.Arg(0)
}

func HaveCommandLineOptions() bool {
	visitedAny := false
	flag.Visit(func(*flag.Flag) {
		visitedAny = true
	})
	return visitedAny || flag.NArg() > 0
}
