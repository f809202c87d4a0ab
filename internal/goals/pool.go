// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package goals

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyPool is returned by Draw when no goals are loaded.
	ErrEmptyPool = errors.New("goal pool is empty")

	// ErrNoPoolFile is returned by Reload for a pool built without a path.
	ErrNoPoolFile = errors.New("goal pool has no backing file")
)

// =============================================================================
// POOL
// =============================================================================

// Pool is a set of unique goals that boards are randomized from. It is safe
// for concurrent use, though the worker is its only caller in practice.
type Pool struct {
	mu       sync.RWMutex
	path     string
	goals    []string
	loadedAt time.Time
}

// NewPool returns an in-memory pool holding goals after de-duplication.
func NewPool(goals []string) *Pool {
	return &Pool{goals: normalize(goals), loadedAt: time.Now()}
}

// Load reads a pool from path. ".yaml"/".yml" files hold a YAML list of
// strings (or a mapping with a "goals" list); anything else holds one goal
// per line with "#" comments.
func Load(path string) (*Pool, error) {
	p := &Pool{path: path}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the backing file. On error the previous goals are kept.
func (p *Pool) Reload() error {
	if p.path == "" {
		return ErrNoPoolFile
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("read goal pool: %w", err)
	}
	goals, err := Parse(data, filepath.Ext(p.path))
	if err != nil {
		return fmt.Errorf("parse goal pool %s: %w", p.path, err)
	}

	p.mu.Lock()
	p.goals = goals
	p.loadedAt = time.Now()
	p.mu.Unlock()
	return nil
}

// Path returns the backing file, or "" for in-memory pools.
func (p *Pool) Path() string {
	return p.path
}

// Len returns the number of goals.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.goals)
}

// Goals returns a copy of the goals in file order.
func (p *Pool) Goals() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.goals...)
}

// LoadedAt returns when the goals were last (re)loaded.
func (p *Pool) LoadedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loadedAt
}

// Draw picks up to n distinct goals in random order. When the pool holds
// fewer than n goals all of them are returned. A nil rng uses the global
// source.
func (p *Pool) Draw(n int, rng *rand.Rand) ([]string, error) {
	p.mu.RLock()
	goals := append([]string(nil), p.goals...)
	p.mu.RUnlock()

	if len(goals) == 0 {
		return nil, ErrEmptyPool
	}
	if n <= 0 {
		return []string{}, nil
	}

	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(goals), func(i, j int) { goals[i], goals[j] = goals[j], goals[i] })

	if n < len(goals) {
		goals = goals[:n]
	}
	return goals, nil
}

// =============================================================================
// PARSING
// =============================================================================

// Parse decodes pool data by file extension.
func Parse(data []byte, ext string) ([]string, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseLines(data)
	}
}

type poolDocument struct {
	Goals []string `yaml:"goals"`
}

func parseYAML(data []byte) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return []string{}, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := root.Decode(&list); err != nil {
			return nil, err
		}
		return normalize(list), nil
	case yaml.MappingNode:
		var doc poolDocument
		if err := root.Decode(&doc); err != nil {
			return nil, err
		}
		return normalize(doc.Goals), nil
	default:
		return nil, fmt.Errorf("line %d: expected a list of goals", root.Line)
	}
}

func parseLines(data []byte) ([]string, error) {
	var goals []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		goals = append(goals, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return normalize(goals), nil
}

// normalize trims goals, drops empty ones and keeps the first of duplicates.
func normalize(goals []string) []string {
	seen := make(map[string]struct{}, len(goals))
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}
