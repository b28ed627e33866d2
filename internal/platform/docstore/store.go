// Package docstore keeps the employee record, timesheets and paystubs as three
// JSON documents in one directory.
package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	employeesFile  = "employees.json"
	timesheetsFile = "timesheets.json"
	paystubsFile   = "paystubs.json"

	employeeKey = "Employee"
	keyPrefix   = "Employee_"
)

// document is one JSON object file. Values stay encoded so callers never share
// maps or slices with the cache.
type document struct {
	path   string
	values map[string]json.RawMessage
}

type Store struct {
	mu         sync.Mutex
	dir        string
	employees  *document
	timesheets *document
	paystubs   *document
}

// Open creates dir if needed and loads the three documents. Missing files are
// treated as empty.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{dir: dir}
	var err error
	if s.employees, err = load(filepath.Join(dir, employeesFile)); err != nil {
		return nil, err
	}
	if s.timesheets, err = load(filepath.Join(dir, timesheetsFile)); err != nil {
		return nil, err
	}
	if s.paystubs, err = load(filepath.Join(dir, paystubsFile)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func load(path string) (*document, error) {
	doc := &document{path: path, values: map[string]json.RawMessage{}}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc.values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if doc.values == nil {
		doc.values = map[string]json.RawMessage{}
	}
	return doc, nil
}

func (d *document) get(key string, dst any) (bool, error) {
	raw, ok := d.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s[%s]: %w", filepath.Base(d.path), key, err)
	}
	return true, nil
}

// put stores value under key and rewrites the file. The cache is only
// updated once the write succeeded.
func (d *document) put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	next := make(map[string]json.RawMessage, len(d.values)+1)
	for k, v := range d.values {
		next[k] = v
	}
	next[key] = raw
	if err := writeAtomic(d.path, next); err != nil {
		return err
	}
	d.values = next
	return nil
}

func (d *document) remove(key string) (bool, error) {
	if _, ok := d.values[key]; !ok {
		return false, nil
	}
	next := make(map[string]json.RawMessage, len(d.values))
	for k, v := range d.values {
		if k != key {
			next[k] = v
		}
	}
	if err := writeAtomic(d.path, next); err != nil {
		return false, err
	}
	d.values = next
	return true, nil
}

func writeAtomic(path string, values map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func weekKey(weekEnd string) string {
	return keyPrefix + weekEnd
}
