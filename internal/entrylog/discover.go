package entrylog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// EntryFile identifies one log file found below a logging root.
type EntryFile struct {
	Node  string `json:"node"`
	Entry string `json:"entry"`
	Path  string `json:"path"`
}

// Discover lists every <node>/<entry>.csv file directly below root, sorted by
// node and then entry. Hidden directories and files are ignored.
func Discover(root string) ([]EntryFile, error) {
	nodes, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read logging root %s: %w", root, err)
	}

	var files []EntryFile
	for _, node := range nodes {
		if !node.IsDir() || strings.HasPrefix(node.Name(), ".") {
			continue
		}
		nodeDir := filepath.Join(root, node.Name())
		entries, err := os.ReadDir(nodeDir)
		if err != nil {
			return nil, fmt.Errorf("read node directory %s: %w", nodeDir, err)
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), Extension) {
				continue
			}
			files = append(files, EntryFile{
				Node:  node.Name(),
				Entry: strings.TrimSuffix(name, filepath.Ext(name)),
				Path:  filepath.Join(nodeDir, name),
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Node != files[j].Node {
			return files[i].Node < files[j].Node
		}
		return files[i].Entry < files[j].Entry
	})
	return files, nil
}
