package audio

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/iburimskiy/audio-planes/internal/scene"
	"github.com/iburimskiy/audio-planes/internal/spectrum"
	"github.com/iburimskiy/audio-planes/internal/visualizer"
)

// FileScheme marks an audio path that is already a local file, bypassing
// the asset root.
const FileScheme = "file://"

// Acquirer opens a target's track on the shared output.
type Acquirer struct {
	Root   string
	Output *Output
	Logger *log.Logger
}

func NewAcquirer(root string, out *Output) *Acquirer {
	return &Acquirer{
		Root:   root,
		Output: out,
		Logger: log.New(os.Stderr, "audio: ", log.LstdFlags),
	}
}

// Resolve maps a target's audio path onto the filesystem.
func (a *Acquirer) Resolve(file string) string {
	if p, ok := strings.CutPrefix(file, FileScheme); ok {
		return p
	}
	return filepath.Join(a.Root, filepath.FromSlash(file))
}

func (a *Acquirer) Acquire(t *scene.Target) (*visualizer.Handle, error) {
	path := a.Resolve(t.AudioFile)
	tr, err := OpenTrack(path, a.Output.Locker())
	if err != nil {
		return nil, fmt.Errorf("open track %s: %w", t.ID, err)
	}
	if err := a.Output.Attach(tr); err != nil {
		_ = tr.Close()
		return nil, fmt.Errorf("attach track %s: %w", t.ID, err)
	}
	f := tr.Format()
	a.Logger.Printf("loaded %s (%d Hz, %d ch)", path, f.SampleRate, f.NumChannels)
	return &visualizer.Handle{
		Source:   tr,
		Analyzer: spectrum.NewAnalyzer(tr.Tap()),
		Graph:    a.Output,
	}, nil
}
