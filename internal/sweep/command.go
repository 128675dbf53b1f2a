// internal/sweep/command.go
package sweep

import (
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/pingcap/errors"
)

// Wrapper describes how the benchmark is launched inside the container:
//
//	<Binary> exec [Flags...] <Image> <Benchmark> <subcommand> [args...]
type Wrapper struct {
	Binary    string
	Flags     []string
	Image     string
	Benchmark string
}

// NewWrapper builds a Wrapper, splitting flags the way a shell would so that
// quoted bind paths survive (e.g. `--nv --bind "/my data:/data"`).
func NewWrapper(binary, image, flags, benchmark string) (Wrapper, error) {
	w := Wrapper{Binary: binary, Image: image, Benchmark: benchmark}
	if strings.TrimSpace(binary) == "" {
		return w, errors.New("apptainer binary is empty")
	}
	if strings.TrimSpace(image) == "" {
		return w, errors.New("apptainer image is empty")
	}
	if strings.TrimSpace(benchmark) == "" {
		return w, errors.New("benchmark binary is empty")
	}
	if strings.TrimSpace(flags) != "" {
		parsed, err := shellwords.Parse(flags)
		if err != nil {
			return w, errors.Annotatef(err, "could not parse apptainer flags %q", flags)
		}
		w.Flags = parsed
	}
	return w, nil
}

// Command returns the full argv for one benchmark invocation.
func (w Wrapper) Command(subcommand string, args ...string) []string {
	argv := make([]string, 0, 5+len(w.Flags)+len(args))
	argv = append(argv, w.Binary, "exec")
	argv = append(argv, w.Flags...)
	argv = append(argv, w.Image, w.Benchmark, subcommand)
	return append(argv, args...)
}
