// Package catalog loads practice problem sets from YAML files.
//
// Every problem is run through the classifier when loaded so that the set's
// declared operation and the detected one agree.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/homework-assistant/internal/classifier"
	"github.com/terra-clan/homework-assistant/internal/hints"
	"github.com/terra-clan/homework-assistant/internal/models"
)

var (
	ErrSetNotFound     = errors.New("problem set not found")
	ErrProblemNotFound = errors.New("problem not found")
)

// setFile is the on-disk layout of a problem set
type setFile struct {
	Name        string        `yaml:"name"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Grade       int           `yaml:"grade"`
	Operation   string        `yaml:"operation"`
	Problems    []problemFile `yaml:"problems"`
}

type problemFile struct {
	Code       string `yaml:"code"`
	Text       string `yaml:"text"`
	Difficulty string `yaml:"difficulty"`
}

// Loader manages loading and lookup of problem sets
type Loader struct {
	mu   sync.RWMutex
	sets map[string]*models.ProblemSet
}

// NewLoader creates an empty catalog
func NewLoader() *Loader {
	return &Loader{
		sets: make(map[string]*models.ProblemSet),
	}
}

// LoadFromDir loads every YAML problem set in dir.
// Files that fail to load are logged and skipped.
func (l *Loader) LoadFromDir(dir string) error {
	slog.Info("loading problem sets from directory", "dir", dir)

	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("catalog directory: %w", err)
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}

	loaded := 0
	for _, file := range files {
		if err := l.LoadFromFile(file); err != nil {
			slog.Warn("failed to load problem set", "file", file, "error", err)
			continue
		}
		loaded++
	}

	slog.Info("problem sets loaded", "count", loaded, "total_files", len(files))
	return nil
}

// LoadFromFile loads a single problem set.
// Problems whose detected operation differs from the set's are dropped.
func (l *Loader) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var sf setFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if sf.Name == "" {
		return fmt.Errorf("set name is required")
	}
	op := models.Operation(strings.ToLower(sf.Operation))
	if !op.IsKnown() {
		return fmt.Errorf("set %s: unsupported operation %q", sf.Name, sf.Operation)
	}

	set := &models.ProblemSet{
		Name:        sf.Name,
		Title:       sf.Title,
		Description: sf.Description,
		Grade:       sf.Grade,
		Operation:   op,
	}

	seen := make(map[string]bool, len(sf.Problems))
	for _, pf := range sf.Problems {
		if pf.Code == "" || seen[pf.Code] {
			slog.Warn("skipping problem with missing or duplicate code", "set", sf.Name, "code", pf.Code)
			continue
		}

		problem, err := validateProblem(sf.Name, op, pf)
		if err != nil {
			slog.Warn("skipping invalid problem", "set", sf.Name, "code", pf.Code, "error", err)
			continue
		}

		seen[pf.Code] = true
		set.Problems = append(set.Problems, problem)
	}

	if len(set.Problems) == 0 {
		return fmt.Errorf("set %s has no valid problems", sf.Name)
	}
	set.ProblemsCount = len(set.Problems)

	l.mu.Lock()
	l.sets[set.Name] = set
	l.mu.Unlock()

	slog.Info("problem set loaded", "name", set.Name, "operation", set.Operation, "problems", set.ProblemsCount)
	return nil
}

// validateProblem classifies a problem with the widest operand bound and
// fills in its difficulty when the file leaves it out
func validateProblem(setName string, op models.Operation, pf problemFile) (models.CatalogProblem, error) {
	detected, operands := classifier.Classify(pf.Text, models.RoleTeacher)
	if detected != op {
		return models.CatalogProblem{}, fmt.Errorf("detected %s, want %s", detected, op)
	}

	bundle := hints.Compose(detected, operands, models.RoleTeacher)
	if bundle.HasError() {
		return models.CatalogProblem{}, fmt.Errorf("problem yields %s", bundle.Error)
	}

	difficulty := models.Difficulty(strings.ToLower(pf.Difficulty))
	if difficulty == "" {
		difficulty = bundle.Difficulty
	}

	return models.CatalogProblem{
		ID:         setName + "/" + pf.Code,
		Code:       pf.Code,
		Text:       pf.Text,
		Difficulty: difficulty,
		SetName:    setName,
	}, nil
}

// ListSets returns all sets sorted by grade then name, without their problems
func (l *Loader) ListSets() []*models.ProblemSet {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*models.ProblemSet, 0, len(l.sets))
	for _, s := range l.sets {
		summary := *s
		summary.Problems = nil
		result = append(result, &summary)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Grade != result[j].Grade {
			return result[i].Grade < result[j].Grade
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// GetSet returns a set with its problems
func (l *Loader) GetSet(name string) (*models.ProblemSet, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, ok := l.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSetNotFound, name)
	}
	return s, nil
}

// GetProblem returns one problem of a set
func (l *Loader) GetProblem(setName, code string) (*models.CatalogProblem, error) {
	s, err := l.GetSet(setName)
	if err != nil {
		return nil, err
	}

	for i := range s.Problems {
		if s.Problems[i].Code == code {
			p := s.Problems[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrProblemNotFound, setName, code)
}
