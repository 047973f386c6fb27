package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/modelview/pkg/stl"
	"github.com/philipparndt/modelview/pkg/watcher"
)

// loadModel loads an STL model from disk
func loadModel(filePath string) (*stl.Model, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != ".stl" {
		return nil, fmt.Errorf("unsupported file type: %s (expected .stl)", ext)
	}
	model, err := stl.Parse(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse STL file: %w", err)
	}
	return model, nil
}

// setModel swaps in a freshly parsed model: rebuild the scene tree, keep
// the visibility of solids the user toggled off, re-upload GPU meshes
func (app *App) setModel(model *stl.Model) {
	hidden := make(map[string]bool)
	if app.Model.root != nil {
		for _, c := range app.Model.root.Children() {
			if !c.Visible {
				hidden[c.Name] = true
			}
		}
	}

	app.unloadMeshes()
	if app.Model.root != nil {
		for _, c := range app.Model.root.Children() {
			app.Model.root.Remove(c)
		}
	}

	app.Model.model = model
	app.Model.root = model.Node()
	for _, c := range app.Model.root.Children() {
		if hidden[c.Name] {
			c.Visible = false
		}
	}
	app.uploadMeshes()
	app.pruneSelection()

	fmt.Printf("Loaded %s: %d solid(s), %d triangles\n",
		model.Name, len(model.Solids), model.TriangleCount())
}

// setupFileWatcher watches the source file for changes
func (app *App) setupFileWatcher() error {
	// 500ms debounce so a slow exporter triggers a single reload
	fw, err := watcher.NewFileWatcher(500 * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	callback := func(changedFile string) {
		fmt.Printf("\nFile changed: %s\n", changedFile)
		app.FileWatch.needsReload = true
	}

	if err := fw.Watch(app.FileWatch.sourceFile, callback); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch file: %w", err)
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw
	fmt.Printf("Watching file for changes: %s\n", app.FileWatch.sourceFile)
	return nil
}

// reloadModel parses the changed file in the background. GPU upload has to
// happen on the main thread, so the parsed model is handed over through
// FileWatch.loadedModel.
func (app *App) reloadModel() {
	if app.FileWatch.isLoading {
		return
	}
	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	fmt.Println("Reloading model...")

	go func() {
		model, err := loadModel(app.FileWatch.sourceFile)
		if err != nil {
			fmt.Printf("Error reloading model: %v\n", err)
			app.FileWatch.isLoading = false
			return
		}
		app.FileWatch.loadedModel = model
	}()
}

// applyLoadedModel swaps in a background-loaded model on the main thread.
// The camera is left exactly where the user put it.
func (app *App) applyLoadedModel() {
	if app.FileWatch.loadedModel == nil {
		return
	}
	model := app.FileWatch.loadedModel
	app.FileWatch.loadedModel = nil

	app.setModel(model)

	elapsed := time.Since(app.FileWatch.loadingStartTime)
	fmt.Printf("Model reloaded successfully in %.2fs!\n", elapsed.Seconds())
	app.FileWatch.isLoading = false
}
