package job

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/benjaminschreck/go-docmgr/pkg/docmgr"
)

// Job describes one document build: an optional input document, the steps
// applied to it in order, and where the result is written
type Job struct {
	// Input is the document to start from; empty starts from a blank document
	Input string `yaml:"input" toml:"input"`
	// Output is where the finished document is saved
	Output string `yaml:"output" toml:"output"`
	Steps  []Step `yaml:"steps" toml:"steps"`

	// dir resolves relative paths; it is the directory of the job file
	dir  string
	path string
}

// Load reads a YAML or TOML job file, picking the format from its extension
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, docmgr.NewDocumentError("job load", path, err)
	}
	job, err := Parse(data, docmgr.DetectFormat(path))
	if err != nil {
		return nil, docmgr.WithContext(err, "job load", map[string]interface{}{"job": path})
	}
	job.path = path
	job.dir = filepath.Dir(path)
	return job, nil
}

// Parse decodes and validates job content. Relative paths resolve against
// the working directory.
func Parse(data []byte, format docmgr.Format) (*Job, error) {
	var job Job
	if err := docmgr.Unmarshal(data, format, &job); err != nil {
		return nil, err
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// Validate checks that an output is named and that every step is well formed
func (j *Job) Validate() error {
	verr := &docmgr.ValidationError{}
	if j.Output == "" {
		verr.Add("output", "output path is required")
	}
	if len(j.Steps) == 0 {
		verr.Add("steps", "job has no steps")
	}
	for i, step := range j.Steps {
		if err := step.validate(); err != nil {
			verr.Add(fmt.Sprintf("steps[%d]", i), "%v", err)
		}
	}
	return verr.Err()
}

// Path returns the file the job was loaded from
func (j *Job) Path() string {
	return j.path
}

// resolve turns a path from the job file into one usable from the working directory
func (j *Job) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || j.dir == "" {
		return path
	}
	return filepath.Join(j.dir, path)
}
