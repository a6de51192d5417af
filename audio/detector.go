package audio

import (
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

// player is one command-line sink probed by DetectBackend
type player struct {
	typ  BackendType
	name string
	bin  string
	args func(rate string) []string
}

// Probed in order; ffplay last as it is the heaviest to start
var players = []player{
	{BackendPulse, "pacat", "pacat", func(r string) []string {
		return []string{"--raw", "--format=s16le", "--rate=" + r, "--channels=2", "--latency-msec=50", "--playback"}
	}},
	{BackendPipeWire, "pw-cat", "pw-cat", func(r string) []string {
		return []string{"--playback", "--format=s16", "--rate=" + r, "--channels=2", "--latency=50ms", "-"}
	}},
	{BackendALSA, "aplay", "aplay", func(r string) []string {
		return []string{"-t", "raw", "-f", "S16_LE", "-r", r, "-c", "2", "-q"}
	}},
	{BackendSoX, "sox", "play", func(r string) []string {
		return []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", r, "-", "-d", "-q"}
	}},
	{BackendFFplay, "ffplay", "ffplay", func(r string) []string {
		return []string{"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", r,
			"-probesize", "32", "-analyzeduration", "0", "-i", "pipe:0", "-loglevel", "quiet"}
	}},
}

// Swapped by tests
var (
	lookPath = exec.LookPath
	ossPath  = "/dev/dsp"
	goos     = runtime.GOOS
)

// DetectBackend finds the first available sink able to play s16le stereo at rate Hz.
// FreeBSD falls back to writing the OSS device directly.
func DetectBackend(rate int) (*BackendConfig, error) {
	r := strconv.Itoa(rate)
	for _, p := range players {
		path, err := lookPath(p.bin)
		if err != nil {
			continue
		}
		return &BackendConfig{Type: p.typ, Name: p.name, Path: path, Args: p.args(r)}, nil
	}

	if goos == "freebsd" {
		if _, err := os.Stat(ossPath); err == nil {
			return &BackendConfig{Type: BackendOSS, Name: "oss", Path: ossPath}, nil
		}
	}
	return nil, ErrNoAudioBackend
}
