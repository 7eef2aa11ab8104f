package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jaunkst/vox-loader/vox"
)

// VoxCollection holds the decoded models of a directory scan, keyed by file
// name relative to the scanned root.
type VoxCollection struct {
	models map[string]*vox.Model
}

type decodedFile struct {
	name  string
	model *vox.Model
}

// OpenVoxDir decodes every .vox (and .vox.gz) file directly under root.
// Files are independent, so each one is decoded on its own goroutine; a file
// that fails to decode is reported and skipped rather than failing the scan.
func OpenVoxDir(root string) (*VoxCollection, error) {
	rootDirectory, err := os.Open(root)
	if err != nil {
		return nil, err
	}
	defer rootDirectory.Close()

	files, err := rootDirectory.Readdir(0)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, possibleVoxFile := range files {
		if isVoxName(possibleVoxFile.Name()) {
			fmt.Println("discovered ", possibleVoxFile.Name())
			candidates = append(candidates, possibleVoxFile.Name())
		}
	}

	var wg sync.WaitGroup
	wg.Add(len(candidates))
	resultChan := make(chan decodedFile, len(candidates))
	for _, name := range candidates {
		go func(name string, res chan decodedFile, wg *sync.WaitGroup) {
			defer wg.Done()
			model, err := OpenVoxFile(filepath.Join(root, name))
			if err != nil {
				fmt.Println("Unable to read model: " + err.Error())
				return
			}
			res <- decodedFile{name: name, model: model}
		}(name, resultChan, &wg)
	}

	wg.Wait()
	close(resultChan)

	allModels := make(map[string]*vox.Model)
	for decoded := range resultChan {
		allModels[decoded.name] = decoded.model
	}
	fmt.Printf("Decoded %d models under %s\n", len(allModels), root)
	return &VoxCollection{models: allModels}, nil
}

func isVoxName(name string) bool {
	return strings.HasSuffix(name, ".vox") || strings.HasSuffix(name, ".vox.gz")
}

// Names returns the decoded file names in sorted order.
func (c *VoxCollection) Names() []string {
	var names []string
	for name := range c.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Model returns the decoded model for a file name from the scan, or nil.
func (c *VoxCollection) Model(name string) *vox.Model {
	return c.models[name]
}

// TotalVoxels sums the voxel counts of every decoded model.
func (c *VoxCollection) TotalVoxels() int {
	total := 0
	for _, model := range c.models {
		total += model.VoxelCount()
	}
	return total
}
