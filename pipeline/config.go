package pipeline

import "path/filepath"

// Task is one (input, output) directory pair. Listing the same InputDir more
// than once fans it out into several output directories.
type Task struct {
	InputDir  string
	OutputDir string
}

func (t Task) String() string {
	return t.InputDir + " → " + t.OutputDir
}

// DefaultTasks is the built-in task table.
func DefaultTasks() []Task {
	return []Task{
		{InputDir: "src/assets/images", OutputDir: "public/images"},
		{InputDir: "src/assets/images", OutputDir: "dist/images"},
		{InputDir: "src/assets/icons", OutputDir: "public/icons"},
		{InputDir: "src/assets/icons", OutputDir: "dist/icons"},
	}
}

// ResolveTasks anchors relative task directories at base.
func ResolveTasks(base string, tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = Task{InputDir: anchor(base, t.InputDir), OutputDir: anchor(base, t.OutputDir)}
	}
	return out
}

func anchor(base, dir string) string {
	if base == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}
