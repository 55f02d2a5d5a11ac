package session

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// sessionFile is the YAML representation of a session.
type sessionFile struct {
	Window    windowEntry     `yaml:"window"`
	Functions []functionEntry `yaml:"functions"`
}

type windowEntry struct {
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	YMin float64 `yaml:"ymin"`
	YMax float64 `yaml:"ymax"`
}

type functionEntry struct {
	ID     string `yaml:"id,omitempty"`
	Source string `yaml:"source"`
	Color  string `yaml:"color,omitempty"`
}

// Save writes the functions and the window of a session as YAML.
func (s *Session) Save(w io.Writer) error {
	s.mu.Lock()
	f := sessionFile{Window: windowEntry{
		XMin: s.vp.XMin, XMax: s.vp.XMax, YMin: s.vp.YMin, YMax: s.vp.YMax,
	}}
	for _, gf := range s.functions {
		f.Functions = append(f.Functions, functionEntry{
			ID:     gf.ID.String(),
			Source: gf.Source(),
			Color:  ColorHex(gf.Color),
		})
	}
	s.mu.Unlock()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return enc.Close()
}

// Load replaces the functions and the window of a session by the contents
// of a YAML session file. On error, the session is left unchanged.
func (s *Session) Load(r io.Reader) error {
	var f sessionFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return fmt.Errorf("decode session: %w", err)
	}
	functions := make([]*GraphFunction, 0, len(f.Functions))
	for i, entry := range f.Functions {
		c := Palette[i%len(Palette)]
		if entry.Color != "" {
			var err error
			if c, err = ParseColor(entry.Color); err != nil {
				return fmt.Errorf("function #%d: %w", i+1, err)
			}
		}
		gf := NewFunction(entry.Source, c)
		if entry.ID != "" {
			id, err := uuid.Parse(entry.ID)
			if err != nil {
				return fmt.Errorf("function #%d: illegal id: %w", i+1, err)
			}
			gf.ID = id
		}
		functions = append(functions, gf)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.functions = functions
	s.created = len(functions)
	if f.Window.XMax != f.Window.XMin && f.Window.YMax != f.Window.YMin {
		s.vp.SetWindow(f.Window.XMin, f.Window.XMax, f.Window.YMin, f.Window.YMax)
	}
	tracer().Infof("loaded session with %d functions", len(functions))
	return nil
}

// SaveFile writes a session to a YAML file.
func (s *Session) SaveFile(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err = s.Save(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// LoadFile reads a session from a YAML file.
func (s *Session) LoadFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	defer in.Close()
	return s.Load(in)
}
