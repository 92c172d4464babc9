// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/katalvlaran/statevar/topology"
)

// Format selects an output file type.
type Format string

// Supported formats.
const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
)

// ParseFormats reads a comma-separated list such as "png,html"; "all"
// selects every format and "" or "none" selects nothing.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, f := range strings.Split(strings.ToLower(s), ",") {
		f = strings.TrimSpace(f)
		var add []Format
		switch f {
		case "", "none":
			continue
		case "all":
			add = []Format{FormatPNG, FormatSVG, FormatHTML}
		case string(FormatPNG), string(FormatSVG), string(FormatHTML):
			add = []Format{Format(f)}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
		for _, a := range add {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out, nil
}

// Job describes one WriteAll call.
type Job struct {
	Dir     string
	Base    string
	Title   string
	Formats []Format
	Series  []Series
	Graph   *topology.Graph
	Now     time.Time
}

// WriteAll writes every requested format into Dir and returns the created
// paths. Names follow "<base>_<group>_<20060102_150405>.<ext>"; HTML gets a
// single page without the group part.
func WriteAll(job Job) ([]string, error) {
	if len(job.Series) == 0 {
		return nil, ErrNoData
	}
	if job.Base == "" {
		job.Base = "circuit"
	}
	if job.Now.IsZero() {
		job.Now = time.Now()
	}
	if err := os.MkdirAll(job.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	stamp := job.Now.Format("20060102_150405")
	order, groups := Grouped(job.Series)

	var paths []string
	for _, f := range job.Formats {
		switch f {
		case FormatPNG, FormatSVG:
			for _, name := range order {
				path := filepath.Join(job.Dir, fmt.Sprintf("%s_%s_%s.%s", job.Base, name, stamp, f))
				err := writeFile(path, func(file *os.File) error {
					if f == FormatPNG {
						return PNG(file, job.Title, groups[name])
					}
					return SVG(file, job.Title, groups[name])
				})
				if err != nil {
					return paths, err
				}
				paths = append(paths, path)
			}
		case FormatHTML:
			path := filepath.Join(job.Dir, fmt.Sprintf("%s_%s.html", job.Base, stamp))
			err := writeFile(path, func(file *os.File) error {
				return HTML(file, job.Title, job.Series, job.Graph)
			})
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		default:
			return paths, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
	}
	return paths, nil
}

func writeFile(path string, fn func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := fn(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
